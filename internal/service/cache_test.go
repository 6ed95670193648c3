package service

import (
	"testing"
	"time"

	"github.com/bigkaa/golibrary/internal/domain/model"
)

func cachedNote(id int64) *model.Note {
	return &model.Note{
		ID:          id,
		DisplayName: "Cached",
		Group:       "Books",
		FileName:    "1_Cached.txt",
		FilePath:    "/uploads/1_Cached.txt",
		Type:        model.TypeDocument,
	}
}

// TestCache_GetSet проверяет базовый цикл set/get.
func TestCache_GetSet(t *testing.T) {
	c := NewCacheService(4, time.Minute)

	if _, ok := c.Get(1); ok {
		t.Error("пустой кэш вернул запись")
	}

	c.Set(1, cachedNote(1))

	got, ok := c.Get(1)
	if !ok {
		t.Fatal("запись не найдена после Set")
	}
	if got.ID != 1 {
		t.Errorf("id = %d, ожидался 1", got.ID)
	}
}

// TestCache_Delete проверяет инвалидацию записи.
func TestCache_Delete(t *testing.T) {
	c := NewCacheService(4, time.Minute)

	c.Set(1, cachedNote(1))
	c.Delete(1)

	if _, ok := c.Get(1); ok {
		t.Error("запись найдена после Delete")
	}
}

// TestCache_TTL проверяет автоматическое истечение записи.
func TestCache_TTL(t *testing.T) {
	c := NewCacheService(4, 20*time.Millisecond)

	c.Set(1, cachedNote(1))
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get(1); ok {
		t.Error("запись не истекла по TTL")
	}
}

// TestCache_Eviction проверяет вытеснение по размеру.
func TestCache_Eviction(t *testing.T) {
	c := NewCacheService(2, time.Minute)

	c.Set(1, cachedNote(1))
	c.Set(2, cachedNote(2))
	c.Set(3, cachedNote(3))

	if _, ok := c.Get(1); ok {
		t.Error("старейшая запись не вытеснена при переполнении")
	}
	if _, ok := c.Get(3); !ok {
		t.Error("новейшая запись отсутствует")
	}
}

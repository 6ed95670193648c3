package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bigkaa/golibrary/internal/domain/model"
	"github.com/bigkaa/golibrary/internal/storage/catalog"
)

// seedCatalog наполняет каталог записями для тестов поиска.
func seedCatalog(t *testing.T, cat *catalog.Store) {
	t.Helper()

	notes := []model.Note{
		{ID: 1, DisplayName: "Alpha Report", Group: "Work",
			FileName: "1_Alpha_Report.pdf", FilePath: "/uploads/1_Alpha_Report.pdf", Type: model.TypeDocument},
		{ID: 2, DisplayName: "Beta", Group: "Personal",
			FileName: "2_Beta.txt", FilePath: "/uploads/2_Beta.txt", Type: model.TypeDocument},
	}
	for _, n := range notes {
		if err := cat.AppendNote(n, n.Group); err != nil {
			t.Fatalf("ошибка наполнения каталога: %v", err)
		}
	}
}

// TestList_NoFilter проверяет листинг без фильтра.
func TestList_NoFilter(t *testing.T) {
	cat, _ := testEnv(t)
	seedCatalog(t, cat)
	svc := NewQueryService(cat, nil, testLogger())

	for _, term := range []string{"", "   "} {
		c, err := svc.List(term)
		if err != nil {
			t.Fatalf("ошибка листинга: %v", err)
		}
		if len(c.Notes) != 2 {
			t.Errorf("List(%q): записей = %d, ожидалось 2", term, len(c.Notes))
		}
	}
}

// TestList_Search проверяет регистронезависимый поиск по displayName и group.
func TestList_Search(t *testing.T) {
	cat, _ := testEnv(t)
	seedCatalog(t, cat)
	svc := NewQueryService(cat, nil, testLogger())

	tests := []struct {
		term    string
		wantIDs []int64
	}{
		{"rep", []int64{1}},       // подстрока displayName
		{"PERSONAL", []int64{2}},  // группа, другой регистр
		{"alpha", []int64{1}},     // displayName, нижний регистр
		{"e", []int64{1, 2}},      // совпадение в обеих записях
		{"nothing", []int64{}},    // нет совпадений — пустой список, не ошибка
	}

	for _, tt := range tests {
		c, err := svc.List(tt.term)
		if err != nil {
			t.Fatalf("List(%q): %v", tt.term, err)
		}

		if len(c.Notes) != len(tt.wantIDs) {
			t.Errorf("List(%q): записей = %d, ожидалось %d", tt.term, len(c.Notes), len(tt.wantIDs))
			continue
		}
		for i, id := range tt.wantIDs {
			if c.Notes[i].ID != id {
				t.Errorf("List(%q): notes[%d].ID = %d, ожидалось %d", tt.term, i, c.Notes[i].ID, id)
			}
		}

		// Группы всегда возвращаются нефильтрованными
		if len(c.Groups) != len(catalog.DefaultGroups)+2 {
			t.Errorf("List(%q): групп = %d, ожидалось %d", tt.term, len(c.Groups), len(catalog.DefaultGroups)+2)
		}
	}
}

// TestGetNote проверяет получение записи по ID с кэшированием.
func TestGetNote(t *testing.T) {
	cat, _ := testEnv(t)
	seedCatalog(t, cat)
	cache := NewCacheService(16, time.Minute)
	svc := NewQueryService(cat, cache, testLogger())

	note, err := svc.GetNote(1)
	if err != nil {
		t.Fatalf("ошибка получения записи: %v", err)
	}
	if note.DisplayName != "Alpha Report" {
		t.Errorf("displayName = %q, ожидалось Alpha Report", note.DisplayName)
	}

	// Запись должна попасть в кэш
	if _, ok := cache.Get(1); !ok {
		t.Error("запись не закэширована после чтения")
	}
}

// TestGetNote_NotFound проверяет ошибку для несуществующего id.
func TestGetNote_NotFound(t *testing.T) {
	cat, _ := testEnv(t)
	svc := NewQueryService(cat, nil, testLogger())

	_, err := svc.GetNote(12345)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидался ErrNotFound, получено %v", err)
	}
}

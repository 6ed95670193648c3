package filestore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNew_CreatesDirectory проверяет создание директории загрузок.
func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	fs, err := New(dir)
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	if fs.DataDir() != dir {
		t.Errorf("ожидался путь %s, получен %s", dir, fs.DataDir())
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("директория не создана: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("путь не является директорией")
	}
}

// TestSave проверяет запись файла под заданным именем.
func TestSave(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	content := []byte("Hello, World! Тестовые данные для проверки.")

	size, err := fs.Save(bytes.NewReader(content), "1712345678_note.txt")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	if size != int64(len(content)) {
		t.Errorf("размер: ожидалось %d, получено %d", len(content), size)
	}

	data, err := os.ReadFile(filepath.Join(fs.DataDir(), "1712345678_note.txt"))
	if err != nil {
		t.Fatalf("файл не найден на диске: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("содержимое файла не совпадает с записанным")
	}

	// Временный файл не должен остаться
	if _, err := os.Stat(filepath.Join(fs.DataDir(), "1712345678_note.txt.tmp")); !os.IsNotExist(err) {
		t.Error("временный файл не удалён после rename")
	}
}

// TestSave_Overwrite проверяет молчаливую перезапись при коллизии имён.
func TestSave_Overwrite(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	if _, err := fs.Save(bytes.NewReader([]byte("первый")), "n.txt"); err != nil {
		t.Fatalf("ошибка первой записи: %v", err)
	}
	if _, err := fs.Save(bytes.NewReader([]byte("второй")), "n.txt"); err != nil {
		t.Fatalf("ошибка второй записи: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(fs.DataDir(), "n.txt"))
	if err != nil {
		t.Fatalf("ошибка чтения: %v", err)
	}
	if string(data) != "второй" {
		t.Errorf("содержимое = %q, ожидалась перезапись вторым файлом", data)
	}
}

// TestOpen проверяет открытие файла для отдачи клиенту.
func TestOpen(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	content := []byte("данные")
	if _, err := fs.Save(bytes.NewReader(content), "doc.pdf"); err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	f, size, err := fs.Open("doc.pdf")
	if err != nil {
		t.Fatalf("ошибка открытия: %v", err)
	}
	defer f.Close()

	if size != int64(len(content)) {
		t.Errorf("размер = %d, ожидалось %d", size, len(content))
	}
}

// TestOpen_NotFound проверяет типизированную ошибку отсутствующего файла.
func TestOpen_NotFound(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	_, _, err = fs.Open("missing.txt")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("ожидался ErrFileNotFound, получено %v", err)
	}
}

// TestDelete проверяет удаление файла.
func TestDelete(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	if _, err := fs.Save(bytes.NewReader([]byte("x")), "del.txt"); err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	if err := fs.Delete("del.txt"); err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if fs.Exists("del.txt") {
		t.Error("файл существует после удаления")
	}
}

// TestDelete_Idempotent проверяет, что удаление отсутствующего файла — не ошибка.
func TestDelete_Idempotent(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	if err := fs.Delete("never-existed.txt"); err != nil {
		t.Errorf("удаление отсутствующего файла должно быть no-op, получено %v", err)
	}
}

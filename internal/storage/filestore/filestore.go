// Пакет filestore — операции с физическими файлами каталога на диске.
// Обеспечивает streaming-запись, чтение для отдачи клиенту и удаление
// в плоской директории загрузок.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrFileNotFound — файл отсутствует в директории загрузок.
var ErrFileNotFound = errors.New("файл не найден")

// FileStore — управление физическими файлами в директории загрузок.
type FileStore struct {
	// dataDir — корневая директория хранения файлов (LIB_DATA_DIR)
	dataDir string
}

// New создаёт новый FileStore. Проверяет и создаёт директорию,
// если она не существует. Проверка выполняется один раз при старте,
// не на каждый вызов Save.
func New(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию данных %s: %w", dataDir, err)
	}

	return &FileStore{dataDir: dataDir}, nil
}

// Save записывает данные из reader на диск под именем storedName.
// Имя должно быть заранее подготовлено через StorageName — Save не
// выполняет санитизацию. Повторная запись под тем же именем молча
// перезаписывает предыдущий файл.
//
// Паттерн: temp файл → запись → fsync → atomic rename.
// При ошибке temp файл удаляется.
func (fs *FileStore) Save(reader io.Reader, storedName string) (int64, error) {
	fullPath := filepath.Join(fs.dataDir, storedName)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("ошибка записи данных: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return size, nil
}

// Open открывает файл для чтения и возвращает его вместе с размером.
// Вызывающий код обязан закрыть файл. Возвращает ErrFileNotFound,
// если файл отсутствует.
func (fs *FileStore) Open(storedName string) (*os.File, int64, error) {
	fullPath := filepath.Join(fs.dataDir, storedName)

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrFileNotFound, storedName)
		}
		return nil, 0, fmt.Errorf("ошибка открытия файла %s: %w", storedName, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("ошибка получения информации о файле %s: %w", storedName, err)
	}

	return f, info.Size(), nil
}

// Delete удаляет файл с диска.
// Возвращает nil, если файл уже не существует (идемпотентное удаление).
func (fs *FileStore) Delete(storedName string) error {
	fullPath := filepath.Join(fs.dataDir, storedName)

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления файла %s: %w", storedName, err)
	}
	return nil
}

// Exists проверяет существование файла на диске.
func (fs *FileStore) Exists(storedName string) bool {
	fullPath := filepath.Join(fs.dataDir, storedName)
	_, err := os.Stat(fullPath)
	return err == nil
}

// DataDir возвращает путь к директории данных.
func (fs *FileStore) DataDir() string {
	return fs.dataDir
}

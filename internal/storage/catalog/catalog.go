// Пакет catalog — чтение и запись документа каталога (database.json).
// Документ является единственным источником истины для метаданных:
// каждая мутация выполняет полный цикл чтение-изменение-запись под
// единым мьютексом (single-writer). Все операции записи выполняются
// атомарно: temp → fsync → rename.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bigkaa/golibrary/internal/domain/model"
)

// Ошибки хранилища каталога.
var (
	// ErrCorrupt — содержимое database.json не является валидным JSON
	// или не соответствует ожидаемой структуре.
	ErrCorrupt = errors.New("документ каталога повреждён")
	// ErrNoteNotFound — запись с указанным ID отсутствует в каталоге.
	ErrNoteNotFound = errors.New("запись не найдена")
)

// DefaultGroups — начальный набор групп нового каталога.
var DefaultGroups = []string{"Books", "Articles", "Notes"}

// Store — хранилище документа каталога.
// Мьютекс сериализует все циклы чтение-изменение-запись, закрывая
// аномалию lost-update при конкурентных мутациях.
type Store struct {
	mu     sync.Mutex
	path   string
	lastID int64
	logger *slog.Logger
}

// New создаёт хранилище каталога. path — путь к database.json.
// Файл не создаётся до первого чтения или записи.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "catalog")),
	}
}

// Path возвращает путь к документу каталога.
func (s *Store) Path() string {
	return s.path
}

// Read возвращает текущий каталог. Если документ отсутствует,
// инициализирует его пустым списком записей и группами по умолчанию,
// сохраняет инициализацию на диск и возвращает её.
// Возвращает ErrCorrupt, если документ существует, но не парсится.
func (s *Store) Read() (*model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Write сериализует и сохраняет весь каталог, перезаписывая
// предыдущее содержимое.
func (s *Store) Write(c *model.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(c)
}

// AppendNote добавляет запись в конец каталога одной перезаписью
// документа. Если newGroup непустая и отсутствует в groups, она
// добавляется в рамках той же перезаписи (без дублей).
func (s *Store) AppendNote(n model.Note, newGroup string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.readLocked()
	if err != nil {
		return err
	}

	if newGroup != "" && !c.HasGroup(newGroup) {
		c.Groups = append(c.Groups, newGroup)
	}
	c.Notes = append(c.Notes, n)

	return s.writeLocked(c)
}

// RemoveNote удаляет запись по ID и возвращает её.
// Возвращает ErrNoteNotFound, если запись отсутствует; каталог
// при этом не перезаписывается.
func (s *Store) RemoveNote(id int64) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.readLocked()
	if err != nil {
		return nil, err
	}

	for i := range c.Notes {
		if c.Notes[i].ID == id {
			removed := c.Notes[i]
			c.Notes = append(c.Notes[:i], c.Notes[i+1:]...)
			if err := s.writeLocked(c); err != nil {
				return nil, err
			}
			return &removed, nil
		}
	}

	return nil, ErrNoteNotFound
}

// AddGroup добавляет группу, если она ещё не присутствует (add-if-absent).
// Повторное добавление существующей группы — no-op без перезаписи.
func (s *Store) AddGroup(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.readLocked()
	if err != nil {
		return err
	}
	if c.HasGroup(name) {
		return nil
	}
	c.Groups = append(c.Groups, name)

	return s.writeLocked(c)
}

// NextID выдаёт уникальный монотонно возрастающий идентификатор.
// Значение — Unix-миллисекунды на момент выдачи; при выдаче в пределах
// одной миллисекунды берётся lastID+1, что закрывает окно коллизии
// timestamp-идентификаторов и сохраняет численный масштаб ID.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// readLocked читает документ с диска. Вызывается под мьютексом.
func (s *Store) readLocked() (*model.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.initLocked()
		}
		return nil, fmt.Errorf("ошибка чтения каталога %s: %w", s.path, err)
	}

	var c model.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}

	// Нормализуем nil-слайсы, чтобы API всегда отдавал [] вместо null
	if c.Notes == nil {
		c.Notes = []model.Note{}
	}
	if c.Groups == nil {
		c.Groups = []string{}
	}

	return &c, nil
}

// initLocked создаёт новый каталог с группами по умолчанию
// и сохраняет его на диск. Вызывается под мьютексом.
func (s *Store) initLocked() (*model.Catalog, error) {
	c := &model.Catalog{
		Notes:  []model.Note{},
		Groups: append([]string{}, DefaultGroups...),
	}
	if err := s.writeLocked(c); err != nil {
		return nil, err
	}

	s.logger.Info("Каталог инициализирован",
		slog.String("path", s.path),
		slog.Int("groups", len(c.Groups)),
	)

	return c, nil
}

// writeLocked атомарно записывает каталог на диск.
// Паттерн: JSON → temp файл → fsync → atomic rename.
// Вызывается под мьютексом.
func (s *Store) writeLocked(c *model.Catalog) error {
	// Pretty-printed для читаемости человеком
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации каталога: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}

	tmpPath := s.path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка записи: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return nil
}

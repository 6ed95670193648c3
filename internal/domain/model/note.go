// Пакет model — доменные модели Library.
// Note — единая структура метаданных записи каталога, используется
// как in-memory представление и как формат database.json на диске.
package model

// NoteType — тип содержимого записи, выводится из расширения файла.
type NoteType string

const (
	// TypeImage — изображение (png, jpg, jpeg, gif)
	TypeImage NoteType = "image"
	// TypeDocument — документ (все остальные допустимые расширения)
	TypeDocument NoteType = "document"
)

// Note — метаданные одной загруженной записи каталога.
// Запись неизменяема после создания: операции обновления отсутствуют,
// жизненный цикл — создание при загрузке и удаление вместе с файлом.
// Имена JSON-полей совпадают с форматом database.json (camelCase).
type Note struct {
	// ID — уникальный идентификатор записи. Целое число масштаба
	// Unix-миллисекунд, выдаётся монотонным аллокатором каталога.
	ID int64 `json:"id"`

	// DisplayName — отображаемое имя, заданное пользователем
	DisplayName string `json:"displayName"`

	// Group — метка группы записи
	Group string `json:"group"`

	// FileName — имя файла на диске (относительно LIB_DATA_DIR).
	// Формат: {unix-секунды}_{sanitized displayName}.{ext}
	FileName string `json:"fileName"`

	// FilePath — публичный относительный путь (/uploads/{fileName})
	FilePath string `json:"filePath"`

	// Type — тип содержимого (image или document)
	Type NoteType `json:"type"`
}

// Catalog — корневой документ каталога. Соответствует содержимому
// database.json: упорядоченный список записей плюс список групп
// с семантикой множества (add-if-absent).
type Catalog struct {
	Notes  []Note   `json:"notes"`
	Groups []string `json:"groups"`
}

// HasGroup проверяет наличие группы в каталоге.
func (c *Catalog) HasGroup(name string) bool {
	for _, g := range c.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// FindNote возвращает запись по ID или nil, если запись отсутствует.
func (c *Catalog) FindNote(id int64) *Note {
	for i := range c.Notes {
		if c.Notes[i].ID == id {
			return &c.Notes[i]
		}
	}
	return nil
}

// TypeForExtension возвращает тип записи для расширения файла
// (без точки, в нижнем регистре).
func TypeForExtension(ext string) NoteType {
	switch ext {
	case "png", "jpg", "jpeg", "gif":
		return TypeImage
	default:
		return TypeDocument
	}
}

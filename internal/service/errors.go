// Пакет service — бизнес-логика Library: загрузка, удаление,
// листинг и поиск записей каталога.
// errors.go — типизированные ошибки сервисного слоя.
package service

import "errors"

// Ошибки сервисного слоя. Граница HTTP отображает их в статус-коды:
// ErrValidation и ErrUnsupportedType → 400, ErrNotFound → 404,
// ErrFileTooLarge → 413, всё остальное (I/O, повреждённый каталог) → 500.
var (
	// ErrValidation — отсутствуют или некорректны обязательные поля запроса.
	ErrValidation = errors.New("некорректные входные данные")
	// ErrUnsupportedType — расширение файла вне допустимого набора.
	ErrUnsupportedType = errors.New("недопустимый тип файла")
	// ErrNotFound — запись или файл не найдены.
	ErrNotFound = errors.New("запись не найдена")
	// ErrFileTooLarge — размер файла превышает лимит LIB_MAX_FILE_SIZE.
	ErrFileTooLarge = errors.New("файл слишком большой")
)

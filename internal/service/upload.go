// upload.go — сервис загрузки записей каталога.
package service

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/bigkaa/golibrary/internal/api/middleware"
	"github.com/bigkaa/golibrary/internal/domain/model"
	"github.com/bigkaa/golibrary/internal/storage/catalog"
	"github.com/bigkaa/golibrary/internal/storage/filestore"
)

// allowedExtensions — допустимые расширения загружаемых файлов.
var allowedExtensions = map[string]bool{
	"txt":  true,
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"md":   true,
	"docx": true,
}

// UploadParams — параметры загрузки записи.
type UploadParams struct {
	// Reader — поток данных файла
	Reader io.Reader
	// OriginalFilename — оригинальное имя файла (источник расширения)
	OriginalFilename string
	// Size — размер файла (из Content-Length multipart part)
	Size int64
	// DisplayName — отображаемое имя записи
	DisplayName string
	// Group — существующая группа записи
	Group string
	// NewGroup — новая группа; при непустом значении имеет приоритет
	// над Group и добавляется в каталог, если отсутствует
	NewGroup string
}

// UploadService — сервис загрузки записей каталога.
type UploadService struct {
	catalog     *catalog.Store
	files       *filestore.FileStore
	maxFileSize int64
	logger      *slog.Logger
}

// NewUploadService создаёт сервис загрузки.
func NewUploadService(
	cat *catalog.Store,
	files *filestore.FileStore,
	maxFileSize int64,
	logger *slog.Logger,
) *UploadService {
	return &UploadService{
		catalog:     cat,
		files:       files,
		maxFileSize: maxFileSize,
		logger:      logger.With(slog.String("component", "upload_service")),
	}
}

// Upload выполняет полный workflow загрузки.
//
// Поток:
//  1. Валидация полей
//  2. Проверка расширения
//  3. Генерация имени хранения
//  4. Запись файла на диск
//  5. Формирование записи и одна перезапись каталога
//
// Порядок отказов: при ошибке записи файла каталог не изменяется.
// При ошибке записи каталога после успешной записи файла на диске
// остаётся файл-сирота — он не удаляется автоматически, только
// логируется (обнаруживается фоновой сверкой).
func (s *UploadService) Upload(params UploadParams) (*model.Note, error) {
	// 1. Валидация
	if params.Reader == nil {
		return nil, fmt.Errorf("%w: поле 'file' обязательно", ErrValidation)
	}
	if strings.TrimSpace(params.DisplayName) == "" {
		return nil, fmt.Errorf("%w: поле 'displayName' обязательно", ErrValidation)
	}
	if params.OriginalFilename == "" {
		return nil, fmt.Errorf("%w: пустое имя файла", ErrValidation)
	}
	if s.maxFileSize > 0 && params.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d байт превышает максимум %d байт",
			ErrFileTooLarge, params.Size, s.maxFileSize)
	}

	// Эффективная группа: newGroup имеет приоритет, существующая
	// группа принимается как есть, без сверки со списком групп
	group := params.Group
	newGroup := strings.TrimSpace(params.NewGroup)
	if newGroup != "" {
		group = newGroup
	}
	if strings.TrimSpace(group) == "" {
		return nil, fmt.Errorf("%w: поле 'group' обязательно", ErrValidation)
	}

	// 2. Расширение — подстрока после последней точки, в нижнем регистре
	ext := extension(params.OriginalFilename)
	if ext == "" || !allowedExtensions[ext] {
		middleware.OperationsTotal.WithLabelValues("upload", "rejected").Inc()
		return nil, fmt.Errorf("%w: расширение %q вне допустимого набора", ErrUnsupportedType, ext)
	}

	// 3. Имя хранения: {unix-секунды}_{sanitized displayName}.{ext}
	storedName := filestore.StorageName(params.DisplayName, ext, time.Now())

	// 4. Запись файла на диск
	size, err := s.files.Save(params.Reader, storedName)
	if err != nil {
		middleware.OperationsTotal.WithLabelValues("upload", "error").Inc()
		return nil, fmt.Errorf("ошибка сохранения файла: %w", err)
	}

	// 5. Запись каталога
	note := model.Note{
		ID:          s.catalog.NextID(),
		DisplayName: params.DisplayName,
		Group:       group,
		FileName:    storedName,
		FilePath:    "/uploads/" + storedName,
		Type:        model.TypeForExtension(ext),
	}

	if err := s.catalog.AppendNote(note, newGroup); err != nil {
		// Файл уже на диске, записи в каталоге нет — файл-сирота
		middleware.OperationsTotal.WithLabelValues("upload", "error").Inc()
		s.logger.Error("Каталог не обновлён, файл остался сиротой",
			slog.String("file_name", storedName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("ошибка записи каталога: %w", err)
	}

	middleware.OperationsTotal.WithLabelValues("upload", "success").Inc()
	s.logger.Info("Запись загружена",
		slog.Int64("id", note.ID),
		slog.String("display_name", note.DisplayName),
		slog.String("group", note.Group),
		slog.String("file_name", note.FileName),
		slog.String("type", string(note.Type)),
		slog.Int64("size", size),
	)

	return &note, nil
}

// extension возвращает расширение имени файла: подстроку после
// последней точки в нижнем регистре, либо пустую строку, если
// точки нет или расширение пустое.
func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// delete.go — сервис удаления записей каталога.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/golibrary/internal/api/middleware"
	"github.com/bigkaa/golibrary/internal/domain/model"
	"github.com/bigkaa/golibrary/internal/storage/catalog"
	"github.com/bigkaa/golibrary/internal/storage/filestore"
)

// DeleteService — сервис удаления записей каталога.
type DeleteService struct {
	catalog *catalog.Store
	files   *filestore.FileStore
	cache   *CacheService
	logger  *slog.Logger
}

// NewDeleteService создаёт сервис удаления.
// cache может быть nil — тогда инвалидация пропускается.
func NewDeleteService(
	cat *catalog.Store,
	files *filestore.FileStore,
	cache *CacheService,
	logger *slog.Logger,
) *DeleteService {
	return &DeleteService{
		catalog: cat,
		files:   files,
		cache:   cache,
		logger:  logger.With(slog.String("component", "delete_service")),
	}
}

// Delete удаляет запись каталога и её файл.
//
// Поток:
//  1. Поиск записи по ID (ErrNotFound при отсутствии, каталог не меняется)
//  2. Удаление файла с диска (отсутствующий файл — не ошибка)
//  3. Удаление записи и одна перезапись каталога
//
// Опустевшая группа остаётся в groups — каскадной очистки нет.
func (s *DeleteService) Delete(id int64) (*model.Note, error) {
	c, err := s.catalog.Read()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}

	note := c.FindNote(id)
	if note == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	// Идемпотентное удаление файла
	if err := s.files.Delete(note.FileName); err != nil {
		middleware.OperationsTotal.WithLabelValues("delete", "error").Inc()
		return nil, fmt.Errorf("ошибка удаления файла %s: %w", note.FileName, err)
	}

	removed, err := s.catalog.RemoveNote(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNoteNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		middleware.OperationsTotal.WithLabelValues("delete", "error").Inc()
		return nil, fmt.Errorf("ошибка записи каталога: %w", err)
	}

	if s.cache != nil {
		s.cache.Delete(id)
	}

	middleware.OperationsTotal.WithLabelValues("delete", "success").Inc()
	s.logger.Info("Запись удалена",
		slog.Int64("id", removed.ID),
		slog.String("display_name", removed.DisplayName),
		slog.String("file_name", removed.FileName),
	)

	return removed, nil
}

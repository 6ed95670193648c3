// serve.go — сервис отдачи файлов каталога клиенту.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bigkaa/golibrary/internal/storage/filestore"
)

// ServeService — сервис отдачи файлов из директории загрузок.
type ServeService struct {
	files  *filestore.FileStore
	logger *slog.Logger
}

// NewServeService создаёт сервис отдачи файлов.
func NewServeService(files *filestore.FileStore, logger *slog.Logger) *ServeService {
	return &ServeService{
		files:  files,
		logger: logger.With(slog.String("component", "serve_service")),
	}
}

// Serve отдаёт файл клиенту через http.ServeContent
// (поддержка Range requests и If-Modified-Since бесплатно).
// storedName — имя файла в директории загрузок.
// Возвращает ErrNotFound, если файл отсутствует или имя содержит
// разделители пути.
func (s *ServeService) Serve(w http.ResponseWriter, r *http.Request, storedName string) error {
	// Имя — строго один компонент пути
	if storedName == "" || storedName != filepath.Base(storedName) ||
		strings.HasPrefix(storedName, ".") {
		return fmt.Errorf("%w: %s", ErrNotFound, storedName)
	}

	f, _, err := s.files.Open(storedName)
	if err != nil {
		if errors.Is(err, filestore.ErrFileNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, storedName)
		}
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("ошибка получения stat файла: %w", err)
	}

	if ct := mime.TypeByExtension(filepath.Ext(storedName)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	http.ServeContent(w, r, storedName, stat.ModTime(), f)
	return nil
}

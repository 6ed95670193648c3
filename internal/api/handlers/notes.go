// notes.go — HTTP handlers операций с записями каталога.
// Upload, Get, Delete.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/golibrary/internal/api/errors"
	"github.com/bigkaa/golibrary/internal/service"
	"github.com/bigkaa/golibrary/internal/storage/catalog"
)

// multipartMemory — буфер парсинга multipart form (32 MB, остальное на диск).
const multipartMemory = 32 << 20

// UploadNote обрабатывает POST /api/notes.
// Multipart form: file (обязательно), displayName (обязательно),
// group, newGroup (опционально; непустой newGroup имеет приоритет).
func (h *Handler) UploadNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		apierrors.ValidationError(w, fmt.Sprintf("Ошибка парсинга multipart: %s", err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.ValidationError(w, "Поле 'file' обязательно")
		return
	}
	defer file.Close()

	note, err := h.uploadSvc.Upload(service.UploadParams{
		Reader:           file,
		OriginalFilename: header.Filename,
		Size:             header.Size,
		DisplayName:      r.FormValue("displayName"),
		Group:            r.FormValue("group"),
		NewGroup:         r.FormValue("newGroup"),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(note)
}

// GetNote обрабатывает GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		apierrors.ValidationError(w, "Некорректный id записи")
		return
	}

	note, err := h.querySvc.GetNote(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(note)
}

// DeleteNote обрабатывает DELETE /api/notes/{id}.
// Удаляет запись каталога и её файл. Отсутствующий файл — не ошибка.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		apierrors.ValidationError(w, "Некорректный id записи")
		return
	}

	note, err := h.deleteSvc.Delete(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": fmt.Sprintf("Запись %q удалена", note.DisplayName),
	})
}

// writeServiceError отображает типизированные ошибки сервисного слоя
// в HTTP статус-коды: валидация → 400, не найдено → 404,
// превышение размера → 413, остальное → 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUnsupportedType):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		apierrors.FileTooLarge(w, err.Error())
	case errors.Is(err, catalog.ErrCorrupt):
		h.logger.Error("Документ каталога повреждён", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Документ каталога повреждён")
	default:
		h.logger.Error("Внутренняя ошибка", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
	}
}

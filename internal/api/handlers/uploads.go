// uploads.go — HTTP handler отдачи файлов каталога.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ServeUpload обрабатывает GET /uploads/{filename}.
// Отдаёт сырые байты файла; 404 если файл отсутствует.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	if err := h.serveSvc.Serve(w, r, chi.URLParam(r, "filename")); err != nil {
		h.writeServiceError(w, err)
	}
}

// data.go — HTTP handler листинга каталога.
package handlers

import (
	"encoding/json"
	"net/http"
)

// GetData обрабатывает GET /api/data?search=<term>.
// Возвращает {notes, groups}; непустой search фильтрует записи по
// регистронезависимому вхождению в displayName или group, группы
// возвращаются всегда полностью.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	c, err := h.querySvc.List(r.URL.Query().Get("search"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

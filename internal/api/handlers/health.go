// health.go — обработчики health endpoints для Kubernetes probes.
package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/bigkaa/golibrary/internal/config"
	"github.com/bigkaa/golibrary/internal/storage/catalog"
)

// statusFail — строковая константа для статуса "fail" в health checks.
const statusFail = "fail"

// HealthHandler реализует health endpoints: /health/live, /health/ready.
type HealthHandler struct {
	version string
	// dataDir — путь к директории загрузок (для проверки FS)
	dataDir string
	// cat — хранилище каталога (для проверки читаемости документа)
	cat *catalog.Store
}

// NewHealthHandler создаёт обработчик health endpoints.
func NewHealthHandler(dataDir string, cat *catalog.Store) *HealthHandler {
	return &HealthHandler{
		version: config.Version,
		dataDir: dataDir,
		cat:     cat,
	}
}

// HealthLive обрабатывает GET /health/live.
// Возвращает 200, если процесс жив. Не проверяет зависимости.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HealthReady обрабатывает GET /health/ready.
// Проверяет доступность директории загрузок и читаемость документа
// каталога. При любой неудаче возвращает 503 с деталями проверок.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	checks := map[string]string{
		"data_dir": "ok",
		"catalog":  "ok",
	}
	healthy := true

	if info, err := os.Stat(h.dataDir); err != nil || !info.IsDir() {
		checks["data_dir"] = statusFail
		healthy = false
	}

	if _, err := h.cat.Read(); err != nil {
		checks["catalog"] = statusFail
		healthy = false
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = statusFail
		code = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"checks":    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

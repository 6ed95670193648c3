// metrics.go — Prometheus HTTP метрики Library.
// Регистрирует метрики: lib_http_requests_total, lib_http_request_duration_seconds.
// Бизнес-метрики (lib_notes_total, lib_groups_total, lib_operations_total)
// экспортируются для обновления из сервисного слоя.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lib_http_requests_total",
			Help: "Общее количество HTTP-запросов к Library",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lib_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к Library в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Бизнес-метрики (экспортируются для обновления из сервисного слоя)
var (
	// NotesTotal — текущее количество записей в каталоге (gauge).
	NotesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lib_notes_total",
			Help: "Текущее количество записей в каталоге",
		},
	)

	// GroupsTotal — текущее количество групп в каталоге (gauge).
	GroupsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lib_groups_total",
			Help: "Текущее количество групп в каталоге",
		},
	)

	// OperationsTotal — общее количество операций каталога.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lib_operations_total",
			Help: "Общее количество операций каталога",
		},
		[]string{"operation", "result"},
	)
)

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (mw *metricsResponseWriter) WriteHeader(code int) {
	mw.statusCode = code
	mw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (mw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return mw.ResponseWriter
}

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			// (id и имена файлов заменяются на плейсхолдеры
			// для предотвращения роста кардинальности)
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			httpRequestsTotal.WithLabelValues(
				r.Method,
				normalizedPath,
				strconv.Itoa(wrapped.statusCode),
			).Inc()
			httpRequestDuration.WithLabelValues(
				r.Method,
				normalizedPath,
			).Observe(duration.Seconds())
		})
	}
}

// normalizePath заменяет переменные сегменты пути на плейсхолдеры.
// /api/notes/1712345678901 → /api/notes/{id}
// /uploads/photo.png → /uploads/{filename}
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/uploads/") && len(path) > len("/uploads/") {
		return "/uploads/{filename}"
	}
	if strings.HasPrefix(path, "/api/notes/") && len(path) > len("/api/notes/") {
		return "/api/notes/{id}"
	}
	return path
}

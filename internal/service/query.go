// query.go — сервис листинга и поиска записей каталога.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/golibrary/internal/domain/model"
	"github.com/bigkaa/golibrary/internal/storage/catalog"
)

// Prometheus-метрики поиска.
var (
	searchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lib_search_total",
		Help: "Общее количество запросов листинга с поисковым фильтром.",
	})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lib_search_duration_seconds",
		Help:    "Длительность запросов листинга.",
		Buckets: prometheus.DefBuckets,
	})
)

// QueryService — read-only сервис листинга записей с опциональным фильтром.
type QueryService struct {
	catalog *catalog.Store
	cache   *CacheService
	logger  *slog.Logger
}

// NewQueryService создаёт сервис листинга.
// cache может быть nil — тогда GetNote всегда читает каталог.
func NewQueryService(cat *catalog.Store, cache *CacheService, logger *slog.Logger) *QueryService {
	return &QueryService{
		catalog: cat,
		cache:   cache,
		logger:  logger.With(slog.String("component", "query_service")),
	}
}

// List возвращает записи и группы каталога. Непустой search фильтрует
// записи по регистронезависимому вхождению подстроки в displayName ИЛИ
// group; группы возвращаются нефильтрованными в обоих случаях.
// Пустой результат поиска — не ошибка.
func (s *QueryService) List(search string) (*model.Catalog, error) {
	start := time.Now()

	c, err := s.catalog.Read()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return c, nil
	}

	searchTotal.Inc()

	filtered := []model.Note{}
	for _, n := range c.Notes {
		if strings.Contains(strings.ToLower(n.DisplayName), term) ||
			strings.Contains(strings.ToLower(n.Group), term) {
			filtered = append(filtered, n)
		}
	}

	duration := time.Since(start)
	searchDuration.Observe(duration.Seconds())

	s.logger.Debug("Поиск выполнен",
		slog.String("term", term),
		slog.Int("matched", len(filtered)),
		slog.Duration("duration", duration),
	)

	return &model.Catalog{Notes: filtered, Groups: c.Groups}, nil
}

// GetNote возвращает запись по ID.
// Сначала проверяет LRU-кэш, при промахе — чтение каталога,
// результат кэшируется. Возвращает ErrNotFound при отсутствии записи.
func (s *QueryService) GetNote(id int64) (*model.Note, error) {
	if s.cache != nil {
		if note, ok := s.cache.Get(id); ok {
			s.logger.Debug("Кэш hit для записи", slog.Int64("id", id))
			return note, nil
		}
	}

	c, err := s.catalog.Read()
	if err != nil {
		if errors.Is(err, catalog.ErrCorrupt) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}

	note := c.FindNote(id)
	if note == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	if s.cache != nil {
		s.cache.Set(id, note)
	}

	return note, nil
}

// cache.go — LRU-кэш записей каталога с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/golibrary/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lib_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш записей.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lib_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша записей.",
	})
)

// CacheService — LRU-кэш записей каталога с автоматическим TTL.
// Записи неизменяемы после создания, поэтому единственная причина
// инвалидации — удаление записи.
type CacheService struct {
	cache *expirable.LRU[int64, *model.Note]
}

// NewCacheService создаёт LRU-кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей в кэше.
// ttl — время жизни записи после добавления.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	cache := expirable.NewLRU[int64, *model.Note](maxSize, nil, ttl)
	return &CacheService{cache: cache}
}

// Get возвращает запись из кэша по ID.
// Возвращает (запись, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *CacheService) Get(id int64) (*model.Note, bool) {
	val, ok := c.cache.Get(id)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись в кэше.
func (c *CacheService) Set(id int64, note *model.Note) {
	c.cache.Add(id, note)
}

// Delete удаляет запись из кэша (инвалидация при удалении записи).
func (c *CacheService) Delete(id int64) {
	c.cache.Remove(id)
}

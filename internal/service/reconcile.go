// reconcile.go — сервис фоновой сверки директории загрузок с каталогом.
//
// Сверка сравнивает файлы на диске с записями database.json и
// обнаруживает:
//   - orphaned_file: файл на диске без записи в каталоге (остаток
//     прерванной загрузки — файл записан, каталог не обновлён)
//   - missing_file: запись в каталоге без файла на диске
//
// Сверка только наблюдает: файлы-сироты не удаляются автоматически,
// проблемы отражаются в логах и Prometheus-метриках.
// Запускается как горутина с периодическим тикером (LIB_RECONCILE_INTERVAL).
package service

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/golibrary/internal/api/middleware"
	"github.com/bigkaa/golibrary/internal/storage/catalog"
	"github.com/bigkaa/golibrary/internal/storage/filestore"
)

// Prometheus метрики сверки
var (
	// reconcileRunsTotal — количество запусков сверки.
	reconcileRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lib_reconcile_runs_total",
		Help: "Общее количество запусков сверки каталога",
	})

	// orphanFiles — текущее количество файлов-сирот на диске.
	orphanFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lib_orphan_files",
		Help: "Количество файлов в директории загрузок без записи в каталоге",
	})

	// missingFiles — текущее количество записей без файла на диске.
	missingFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lib_missing_files",
		Help: "Количество записей каталога без файла на диске",
	})
)

// ReconcileResult — результат одного запуска сверки.
type ReconcileResult struct {
	// Orphaned — имена файлов на диске без записи в каталоге
	Orphaned []string
	// Missing — имена файлов из каталога, отсутствующие на диске
	Missing []string
}

// ReconcileService — сервис фоновой сверки хранилища.
type ReconcileService struct {
	catalog  *catalog.Store
	files    *filestore.FileStore
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex // защита от параллельного запуска
	inProcess bool
	cancel    context.CancelFunc
}

// NewReconcileService создаёт сервис сверки.
func NewReconcileService(
	cat *catalog.Store,
	files *filestore.FileStore,
	interval time.Duration,
	logger *slog.Logger,
) *ReconcileService {
	return &ReconcileService{
		catalog:  cat,
		files:    files,
		interval: interval,
		logger:   logger.With(slog.String("component", "reconcile")),
	}
}

// Start запускает фоновую горутину сверки с периодическим тикером.
func (rs *ReconcileService) Start(ctx context.Context) {
	rsCtx, cancel := context.WithCancel(ctx)
	rs.cancel = cancel

	go rs.run(rsCtx)

	rs.logger.Info("Сверка запущена",
		slog.String("interval", rs.interval.String()),
	)
}

// Stop останавливает фоновой процесс сверки.
func (rs *ReconcileService) Stop() {
	if rs.cancel != nil {
		rs.cancel()
	}
	rs.logger.Info("Сверка остановлена")
}

// run — основной цикл фоновой горутины.
func (rs *ReconcileService) run(ctx context.Context) {
	ticker := time.NewTicker(rs.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rs.RunOnce()
		}
	}
}

// RunOnce выполняет один цикл сверки.
// Потокобезопасен: если сверка уже выполняется, возвращает nil, true.
func (rs *ReconcileService) RunOnce() (*ReconcileResult, bool) {
	rs.mu.Lock()
	if rs.inProcess {
		rs.mu.Unlock()
		rs.logger.Warn("Сверка уже выполняется, пропуск")
		return nil, true
	}
	rs.inProcess = true
	rs.mu.Unlock()

	defer func() {
		rs.mu.Lock()
		rs.inProcess = false
		rs.mu.Unlock()
	}()

	reconcileRunsTotal.Inc()

	result := &ReconcileResult{}

	c, err := rs.catalog.Read()
	if err != nil {
		rs.logger.Error("Сверка прервана: каталог не читается",
			slog.String("error", err.Error()),
		)
		return result, false
	}

	// Попутно освежаем гейджи каталога
	middleware.NotesTotal.Set(float64(len(c.Notes)))
	middleware.GroupsTotal.Set(float64(len(c.Groups)))

	known := make(map[string]bool, len(c.Notes))
	for _, n := range c.Notes {
		known[n.FileName] = true
		if !rs.files.Exists(n.FileName) {
			result.Missing = append(result.Missing, n.FileName)
		}
	}

	entries, err := os.ReadDir(rs.files.DataDir())
	if err != nil {
		rs.logger.Error("Сверка прервана: директория загрузок не читается",
			slog.String("error", err.Error()),
		)
		return result, false
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".tmp") {
			continue
		}
		if !known[entry.Name()] {
			result.Orphaned = append(result.Orphaned, entry.Name())
		}
	}

	orphanFiles.Set(float64(len(result.Orphaned)))
	missingFiles.Set(float64(len(result.Missing)))

	if len(result.Orphaned) > 0 || len(result.Missing) > 0 {
		rs.logger.Warn("Сверка обнаружила расхождения",
			slog.Int("orphaned", len(result.Orphaned)),
			slog.Int("missing", len(result.Missing)),
		)
	} else {
		rs.logger.Debug("Сверка завершена без расхождений",
			slog.Int("notes", len(c.Notes)),
		)
	}

	return result, false
}

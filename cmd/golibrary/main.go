// Точка входа Library — сервиса каталога файлов и метаданных.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bigkaa/golibrary/internal/api/handlers"
	"github.com/bigkaa/golibrary/internal/api/middleware"
	"github.com/bigkaa/golibrary/internal/config"
	"github.com/bigkaa/golibrary/internal/domain/model"
	"github.com/bigkaa/golibrary/internal/server"
	"github.com/bigkaa/golibrary/internal/service"
	"github.com/bigkaa/golibrary/internal/storage/catalog"
	"github.com/bigkaa/golibrary/internal/storage/filestore"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Library запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("data_dir", cfg.DataDir),
		slog.String("db_path", cfg.DBPath),
	)

	// --- Инициализация компонентов ---

	// 1. Файловое хранилище (создаёт директорию загрузок)
	files, err := filestore.New(cfg.DataDir)
	if err != nil {
		logger.Error("Ошибка инициализации FileStore", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Хранилище каталога. Первое чтение инициализирует database.json
	// группами по умолчанию и проверяет, что документ не повреждён.
	cat := catalog.New(cfg.DBPath, logger)
	doc, err := cat.Read()
	if err != nil {
		logger.Error("Ошибка чтения каталога", slog.String("error", err.Error()))
		os.Exit(1)
	}
	updateCatalogMetrics(doc)
	logger.Info("Каталог загружен",
		slog.Int("notes", len(doc.Notes)),
		slog.Int("groups", len(doc.Groups)),
	)

	// 3. LRU-кэш записей
	cache := service.NewCacheService(cfg.CacheSize, cfg.CacheTTL)

	// 4. Сервисы
	uploadSvc := service.NewUploadService(cat, files, cfg.MaxFileSize, logger)
	deleteSvc := service.NewDeleteService(cat, files, cache, logger)
	querySvc := service.NewQueryService(cat, cache, logger)
	serveSvc := service.NewServeService(files, logger)

	// 5. Фоновая сверка директории загрузок с каталогом
	ctx := context.Background()
	reconcileSvc := service.NewReconcileService(cat, files, cfg.ReconcileInterval, logger)
	reconcileSvc.Start(ctx)

	// 6. Handlers
	h := handlers.New(uploadSvc, deleteSvc, querySvc, serveSvc, logger)
	healthHandler := handlers.NewHealthHandler(cfg.DataDir, cat)

	// 7. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, h, healthHandler)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// --- Graceful shutdown фоновых процессов ---
	logger.Info("Остановка фоновых процессов...")
	reconcileSvc.Stop()

	logger.Info("Library остановлен")
}

// updateCatalogMetrics обновляет Prometheus метрики каталога.
func updateCatalogMetrics(c *model.Catalog) {
	middleware.NotesTotal.Set(float64(len(c.Notes)))
	middleware.GroupsTotal.Set(float64(len(c.Groups)))
}

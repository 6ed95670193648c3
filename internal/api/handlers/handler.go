// Пакет handlers — HTTP-обработчики API Library.
package handlers

import (
	"log/slog"

	"github.com/bigkaa/golibrary/internal/service"
)

// Handler — корневой обработчик API, агрегирует сервисы.
type Handler struct {
	uploadSvc *service.UploadService
	deleteSvc *service.DeleteService
	querySvc  *service.QueryService
	serveSvc  *service.ServeService
	logger    *slog.Logger
}

// New создаёт корневой обработчик API.
func New(
	uploadSvc *service.UploadService,
	deleteSvc *service.DeleteService,
	querySvc *service.QueryService,
	serveSvc *service.ServeService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		uploadSvc: uploadSvc,
		deleteSvc: deleteSvc,
		querySvc:  querySvc,
		serveSvc:  serveSvc,
		logger:    logger.With(slog.String("component", "handlers")),
	}
}

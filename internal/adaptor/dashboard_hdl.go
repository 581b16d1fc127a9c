package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// Dashboard handles GET /api/admin/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Dashboard(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load dashboard")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved successfully", resp)
}

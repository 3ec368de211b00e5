package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NO-YA/MedBridge/internal/service"
)

// StatsHandler serves aggregate counts.
type StatsHandler struct {
	svc service.StatsService
}

// NewStatsHandler creates a stats handler layer.
func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats godoc
// @Summary Aggregate todo and user counts
// @Tags stats
// @Produce json
// @Success 200 {object} service.Stats
// @Router /stats [get]
func (h *StatsHandler) GetStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

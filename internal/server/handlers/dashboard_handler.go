package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/service/dashboard"
)

// DashboardHandler serves the read-only overview.
type DashboardHandler struct {
	svc    *dashboard.Service
	logger *zap.Logger
}

// NewDashboardHandler constructs the dashboard HTTP adapter.
func NewDashboardHandler(svc *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Overview recomputes the statistics from fresh loads of both collections.
// A failed load zeroes its own section only; whatever did load is returned
// alongside the error message instead of being discarded.
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.svc.Compute(c.Request.Context(), time.Now())
	if err != nil {
		h.logger.Warn("dashboard computation incomplete", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"members":   overview.Members,
			"birthdays": overview.Birthdays,
			"finance":   overview.Finance,
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, overview)
}

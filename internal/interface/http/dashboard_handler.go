package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ymatsuda/coffee-journal/internal/application"
	"github.com/ymatsuda/coffee-journal/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

// Summary GET /api/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.Svc.Summary(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.Logger.WithError(err).Error("dashboard summary failed")
		response.Error[any](c, http.StatusInternalServerError, "統計の取得に失敗しました", nil)
		return
	}
	response.Success(c, http.StatusOK, summary, "dashboard", nil)
}

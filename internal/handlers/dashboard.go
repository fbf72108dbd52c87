package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	stats, err := dh.dashboardService.GetStats(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, stats)
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GrowthService computes the dashboard metrics
type GrowthService interface {
	GetMetrics(ctx context.Context) (*dto.GrowthMetrics, error)
}

// GrowthController serves attendance growth metrics
type GrowthController struct {
	growthService GrowthService
}

// NewGrowthController creates a new GrowthController
func NewGrowthController(growthService GrowthService) *GrowthController {
	return &GrowthController{growthService: growthService}
}

// GetGrowthMetrics returns month-over-month attendance figures
// @Summary Get growth metrics
// @Description Average attendance per event this month, growth rate against last month, first-timers this month and per-date series for the last 7 and 30 days. growthRate is 0 with hasBaseline false when last month had no present attendance.
// @Tags growth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GrowthMetrics} "Metrics computed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /growth [get]
func (c *GrowthController) GetGrowthMetrics(ctx *gin.Context) {
	metrics, err := c.growthService.GetMetrics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      metrics,
		Timestamp: time.Now(),
	})
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CallService is what the first-timer follow-up endpoints need
type CallService interface {
	LogCall(ctx context.Context, userID uuid.UUID, req dto.LogCallRequest) (*models.FirstTimerCall, error)
	ListCalls(ctx context.Context, userID uuid.UUID) ([]*models.FirstTimerCall, error)
	FirstTimers(ctx context.Context) ([]dto.FirstTimerResponse, error)
}

// CallController handles first-timer follow-up calls
type CallController struct {
	callService CallService
}

// NewCallController creates a new CallController
func NewCallController(callService CallService) *CallController {
	return &CallController{callService: callService}
}

// ListFirstTimers lists first-time visitors with their latest call
// @Summary List first-timers
// @Tags calls
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.FirstTimerResponse} "First-timers retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /first-timers [get]
func (c *CallController) ListFirstTimers(ctx *gin.Context) {
	list, err := c.callService.FirstTimers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      list,
		Timestamp: time.Now(),
	})
}

// ListCalls lists the calls made to a member
// @Summary List a member's follow-up calls
// @Tags calls
// @Produce json
// @Param id path string true "Member ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]models.FirstTimerCall} "Calls retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid member ID"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{id}/calls [get]
func (c *CallController) ListCalls(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "member")
	if !ok {
		return
	}

	calls, err := c.callService.ListCalls(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      calls,
		Timestamp: time.Now(),
	})
}

// LogCall records a follow-up call
// @Summary Log a follow-up call
// @Description Records a call to a member; callDate defaults to today
// @Tags calls
// @Accept json
// @Produce json
// @Param id path string true "Member ID" Format(uuid)
// @Param request body dto.LogCallRequest true "Call outcome"
// @Success 201 {object} dto.APIResponse{data=models.FirstTimerCall} "Call logged"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /members/{id}/calls [post]
func (c *CallController) LogCall(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "member")
	if !ok {
		return
	}
	var req dto.LogCallRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	call, err := c.callService.LogCall(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      call,
		Timestamp: time.Now(),
	})
}

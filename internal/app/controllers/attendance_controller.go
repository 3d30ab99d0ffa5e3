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

// AttendanceService is what the attendance endpoints need from the service layer
type AttendanceService interface {
	Snapshot(ctx context.Context, eventID uuid.UUID, search string) (*dto.AttendanceSnapshot, error)
	MarkPresent(ctx context.Context, eventID, userID uuid.UUID) (*models.Attendance, error)
	MarkAbsent(ctx context.Context, eventID, userID uuid.UUID, reason *string) (*models.Attendance, error)
	Toggle(ctx context.Context, eventID, userID uuid.UUID) (*dto.ToggleResult, error)
	MarkAllPresent(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) (*dto.BulkResult, error)
	RegisterWalkIn(ctx context.Context, eventID uuid.UUID, req dto.WalkInRequest) (*dto.WalkInResponse, error)
}

// AttendanceController handles attendance marking for an event
type AttendanceController struct {
	attendanceService AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

func (c *AttendanceController) eventAndUser(ctx *gin.Context) (eventID, userID uuid.UUID, ok bool) {
	if eventID, ok = parseUUIDParam(ctx, "id", "event"); !ok {
		return
	}
	userID, ok = parseUUIDParam(ctx, "userId", "member")
	return
}

// GetAttendance returns the roster snapshot
// @Summary Get event attendance
// @Description Returns every member with their status for the event. Counts cover the whole roster; search only narrows the entries.
// @Tags attendance
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Param search query string false "Case-insensitive search over name, surname, phone and cell group"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSnapshot} "Attendance retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/attendance [get]
func (c *AttendanceController) GetAttendance(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	snapshot, err := c.attendanceService.Snapshot(ctx, eventID, ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      snapshot,
		Timestamp: time.Now(),
	})
}

// MarkPresent marks a member present
// @Summary Mark a member present
// @Description Creates or updates the member's single attendance row for the event and clears any absence reason
// @Tags attendance
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Param userId path string true "Member ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Event or member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/attendance/{userId}/present [post]
func (c *AttendanceController) MarkPresent(ctx *gin.Context) {
	eventID, userID, ok := c.eventAndUser(ctx)
	if !ok {
		return
	}

	attendance, err := c.attendanceService.MarkPresent(ctx, eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      attendance,
		Timestamp: time.Now(),
	})
}

// MarkAbsent marks a member absent
// @Summary Mark a member absent
// @Description Creates or updates the member's attendance row as absent. A blank reason is stored as null.
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Param userId path string true "Member ID" Format(uuid)
// @Param request body dto.MarkAbsentRequest false "Absence reason"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Event or member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/attendance/{userId}/absent [post]
func (c *AttendanceController) MarkAbsent(ctx *gin.Context) {
	eventID, userID, ok := c.eventAndUser(ctx)
	if !ok {
		return
	}
	var req dto.MarkAbsentRequest
	if !middleware.BindOptionalJSON(ctx, &req) {
		return
	}

	attendance, err := c.attendanceService.MarkAbsent(ctx, eventID, userID, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      attendance,
		Timestamp: time.Now(),
	})
}

// ToggleAttendance flips a member's attendance
// @Summary Toggle attendance
// @Description Unmarked or absent members become present. A present member is left unchanged and requiresAbsenceReason is set; follow up with the absent endpoint.
// @Tags attendance
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Param userId path string true "Member ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.ToggleResult} "Toggle result"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Event or member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/attendance/{userId}/toggle [post]
func (c *AttendanceController) ToggleAttendance(ctx *gin.Context) {
	eventID, userID, ok := c.eventAndUser(ctx)
	if !ok {
		return
	}

	res, err := c.attendanceService.Toggle(ctx, eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      res,
		Timestamp: time.Now(),
	})
}

// MarkAllPresent marks many members present
// @Summary Mark all present
// @Description Marks the listed members, or the whole roster when none are listed, present. Each member is written independently; failures are reported per member and nothing is rolled back.
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Param request body dto.MarkAllRequest false "Members to mark"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult} "Per-member results"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/attendance/mark-all [post]
func (c *AttendanceController) MarkAllPresent(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}
	var req dto.MarkAllRequest
	if !middleware.BindOptionalJSON(ctx, &req) {
		return
	}

	res, err := c.attendanceService.MarkAllPresent(ctx, eventID, req.UserIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      res,
		Timestamp: time.Now(),
	})
}

// RegisterWalkIn registers a visitor at the door
// @Summary Register a walk-in
// @Description Creates a member for a visitor and marks them present at the event
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Param request body dto.WalkInRequest true "Visitor details"
// @Success 201 {object} dto.APIResponse{data=dto.WalkInResponse} "Walk-in registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/attendance/walk-ins [post]
func (c *AttendanceController) RegisterWalkIn(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}
	var req dto.WalkInRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.attendanceService.RegisterWalkIn(ctx, eventID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      res,
		Timestamp: time.Now(),
	})
}

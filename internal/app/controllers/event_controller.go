package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventService is what the event endpoints need from the service layer
type EventService interface {
	List(ctx context.Context, typ *models.EventType) ([]*models.Event, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]dto.ParticipantResponse, error)
	AddParticipant(ctx context.Context, eventID, userID uuid.UUID) (*models.EventParticipant, error)
	RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) error
}

// EventController handles event and participant endpoints
type EventController struct {
	eventService EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService EventService) *EventController {
	return &EventController{eventService: eventService}
}

// ListEvents lists events
// @Summary List events
// @Description Lists events newest first, optionally of one type
// @Tags events
// @Produce json
// @Param type query string false "Event type" Enums(sunday_service, cell_group, custom)
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event type"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	var typ *models.EventType
	if t := strings.TrimSpace(ctx.Query("type")); t != "" {
		et := models.EventType(t)
		typ = &et
	}

	events, err := c.eventService.List(ctx, typ)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      events,
		Timestamp: time.Now(),
	})
}

// GetEvent retrieves an event by ID
// @Summary Get event by ID
// @Tags events
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	event, err := c.eventService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      event,
		Timestamp: time.Now(),
	})
}

// CreateEvent handles event creation
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      event,
		Timestamp: time.Now(),
	})
}

// UpdateEvent updates an event
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Param request body dto.UpdateEventRequest true "Updated event information"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      event,
		Timestamp: time.Now(),
	})
}

// DeleteEvent deletes an event
// @Summary Delete an event
// @Description Deletes an event together with its attendance rows, roster and checklists
// @Tags events
// @Param id path string true "Event ID" Format(uuid)
// @Success 204 "Event deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	if err := c.eventService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListParticipants lists an event's roster
// @Summary List event participants
// @Description Lists assigned members with their attendance status; members without a row are not_marked
// @Tags events
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]dto.ParticipantResponse} "Participants retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/participants [get]
func (c *EventController) ListParticipants(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	participants, err := c.eventService.ListParticipants(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      participants,
		Timestamp: time.Now(),
	})
}

// AddParticipant assigns a member to an event
// @Summary Add an event participant
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID" Format(uuid)
// @Param request body dto.AddParticipantRequest true "Member to assign"
// @Success 201 {object} dto.APIResponse{data=models.EventParticipant} "Participant added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Event or member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/participants [post]
func (c *EventController) AddParticipant(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}
	var req dto.AddParticipantRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	participant, err := c.eventService.AddParticipant(ctx, id, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      participant,
		Timestamp: time.Now(),
	})
}

// RemoveParticipant unassigns a member from an event
// @Summary Remove an event participant
// @Tags events
// @Param id path string true "Event ID" Format(uuid)
// @Param userId path string true "Member ID" Format(uuid)
// @Success 204 "Participant removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/participants/{userId} [delete]
func (c *EventController) RemoveParticipant(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id", "event")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId", "member")
	if !ok {
		return
	}

	if err := c.eventService.RemoveParticipant(ctx, eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

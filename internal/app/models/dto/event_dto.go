package dto

import (
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/google/uuid"
)

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Title       string           `json:"title" binding:"required,max=200" example:"Sunday Morning Service"`
	Type        models.EventType `json:"type" binding:"required,oneof=sunday_service cell_group custom" example:"sunday_service"`
	EventDate   string           `json:"eventDate" binding:"required" example:"2024-01-07"`
	EventTime   string           `json:"eventTime" binding:"required" example:"09:00"`
	Location    *string          `json:"location,omitempty" example:"Main Sanctuary"`
	Description *string          `json:"description,omitempty"`
	CreatedBy   *uuid.UUID       `json:"createdBy,omitempty"`
}

// UpdateEventRequest represents event update data
type UpdateEventRequest struct {
	Title       string           `json:"title" binding:"required,max=200"`
	Type        models.EventType `json:"type" binding:"required,oneof=sunday_service cell_group custom"`
	EventDate   string           `json:"eventDate" binding:"required" example:"2024-01-07"`
	EventTime   string           `json:"eventTime" binding:"required" example:"09:00"`
	Location    *string          `json:"location,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// AddParticipantRequest assigns a member to an event roster
type AddParticipantRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

// ParticipantResponse is a roster member with their attendance status
type ParticipantResponse struct {
	ID     uuid.UUID               `json:"id"`
	User   *models.User            `json:"user"`
	Status models.AttendanceStatus `json:"status" example:"not_marked"`
}

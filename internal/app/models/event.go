package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a service, cell group meeting or custom gathering
type Event struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title" example:"Sunday Morning Service"`
	Type        EventType  `json:"type" db:"type" example:"sunday_service"`
	EventDate   time.Time  `json:"eventDate" db:"event_date" example:"2024-01-07T00:00:00Z"`
	EventTime   string     `json:"eventTime" db:"event_time" example:"09:00"`
	Location    *string    `json:"location,omitempty" db:"location" example:"Main Sanctuary"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// EventFilter narrows an event listing
type EventFilter struct {
	Type *EventType
	From *time.Time
	To   *time.Time
}

// EventParticipant assigns a member to an event roster; it says nothing about attendance
type EventParticipant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	EventID   uuid.UUID `json:"eventId" db:"event_id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty"`
}

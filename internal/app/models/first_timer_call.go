package models

import (
	"time"

	"github.com/google/uuid"
)

// FirstTimerCall logs a follow-up phone call to a first-time visitor
type FirstTimerCall struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"userId" db:"user_id"`
	CalledBy   *uuid.UUID `json:"calledBy,omitempty" db:"called_by"`
	CallDate   time.Time  `json:"callDate" db:"call_date"`
	CallStatus CallStatus `json:"callStatus" db:"call_status" example:"connected"`
	Notes      *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

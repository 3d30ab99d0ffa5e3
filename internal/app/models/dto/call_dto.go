package dto

import (
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/google/uuid"
)

// LogCallRequest records a follow-up call
type LogCallRequest struct {
	CalledBy   *uuid.UUID        `json:"calledBy,omitempty"`
	CallDate   string            `json:"callDate,omitempty" example:"2024-01-09"`
	CallStatus models.CallStatus `json:"callStatus" binding:"required,oneof=attempted connected no_answer follow_up_needed" example:"connected"`
	Notes      *string           `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// FirstTimerResponse is a first-timer with their latest call, if any
type FirstTimerResponse struct {
	Member   *models.User           `json:"member"`
	LastCall *models.FirstTimerCall `json:"lastCall,omitempty"`
}

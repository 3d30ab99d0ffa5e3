package dto

import (
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/google/uuid"
)

// DepartmentRequest represents department create and update data
type DepartmentRequest struct {
	Name        string  `json:"name" binding:"required,max=100" example:"Ushers"`
	Description *string `json:"description,omitempty" example:"Welcome and seating coordination"`
}

// CreateTeamRequest represents team creation data
type CreateTeamRequest struct {
	Name        string     `json:"name" binding:"required,max=100" example:"Sound Team"`
	Description *string    `json:"description,omitempty"`
	LeaderID    *uuid.UUID `json:"leaderId,omitempty"`
}

// ChecklistItemRequest is one equipment entry in a checklist update
type ChecklistItemRequest struct {
	EquipmentName string  `json:"equipmentName" binding:"required,max=200" example:"Main Mixing Console"`
	IsWorking     bool    `json:"isWorking" example:"true"`
	Remarks       *string `json:"remarks,omitempty"`
}

// UpdateChecklistRequest upserts a team's checklist for an event
type UpdateChecklistRequest struct {
	CheckedBy *uuid.UUID             `json:"checkedBy,omitempty"`
	Items     []ChecklistItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ChecklistSummary counts equipment states
type ChecklistSummary struct {
	Working     int `json:"working" example:"7"`
	NeedsRepair int `json:"needsRepair" example:"1"`
}

// ChecklistResponse is a team's checklist for one event
type ChecklistResponse struct {
	TeamID  uuid.UUID               `json:"teamId"`
	EventID uuid.UUID               `json:"eventId"`
	Items   []*models.ChecklistItem `json:"items"`
	Summary ChecklistSummary        `json:"summary"`
}

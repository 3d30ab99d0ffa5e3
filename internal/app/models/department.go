package models

import (
	"time"

	"github.com/google/uuid"
)

// Department is a serving ministry such as Ushers or Technicians
type Department struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Technicians"`
	Description *string   `json:"description,omitempty" db:"description" example:"Audio, visual, and technical equipment"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	MemberCount int     `json:"memberCount"`
	Teams       []*Team `json:"teams,omitempty"`
}

// Team is a sub-group within a department
type Team struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	DepartmentID uuid.UUID  `json:"departmentId" db:"department_id"`
	Name         string     `json:"name" db:"name" example:"Sound Team"`
	Description  *string    `json:"description,omitempty" db:"description"`
	LeaderID     *uuid.UUID `json:"leaderId,omitempty" db:"leader_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// ChecklistItem records the state of one piece of equipment for a team at an event
type ChecklistItem struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	TeamID        uuid.UUID  `json:"teamId" db:"team_id"`
	EventID       uuid.UUID  `json:"eventId" db:"event_id"`
	EquipmentName string     `json:"equipmentName" db:"equipment_name" example:"Main Mixing Console"`
	IsWorking     bool       `json:"isWorking" db:"is_working"`
	Remarks       *string    `json:"remarks,omitempty" db:"remarks" example:"Left monitor has crackling sound"`
	CheckedBy     *uuid.UUID `json:"checkedBy,omitempty" db:"checked_by"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

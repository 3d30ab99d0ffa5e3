package dto

import (
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/google/uuid"
)

// MarkAbsentRequest carries an optional absence reason
type MarkAbsentRequest struct {
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=500" example:"travel"`
}

// MarkAllRequest limits mark-all to the given members; empty means the whole roster
type MarkAllRequest struct {
	UserIDs []uuid.UUID `json:"userIds,omitempty"`
}

// WalkInRequest registers a visitor at the door and marks them present
type WalkInRequest struct {
	Name         string  `json:"name" binding:"required,max=100" example:"Sipho"`
	Surname      string  `json:"surname" binding:"required,max=100" example:"Dlamini"`
	Phone        *string `json:"phone,omitempty" example:"+27731234567"`
	Email        string  `json:"email,omitempty" binding:"omitempty,email"`
	CellGroup    *string `json:"cellGroup,omitempty"`
	IsFirstTimer bool    `json:"isFirstTimer" example:"true"`
}

// RosterEntry is one member's attendance state for an event
type RosterEntry struct {
	User       *models.User            `json:"user"`
	Status     models.AttendanceStatus `json:"status" example:"present"`
	Attendance *models.Attendance      `json:"attendance,omitempty"`
}

// AttendanceCounts are computed over the whole roster
type AttendanceCounts struct {
	Present   int `json:"present" example:"42"`
	Absent    int `json:"absent" example:"5"`
	NotMarked int `json:"notMarked" example:"13"`
	Total     int `json:"total" example:"60"`
}

// AttendanceSnapshot is the roster view for one event
type AttendanceSnapshot struct {
	EventID uuid.UUID        `json:"eventId"`
	Search  string           `json:"search,omitempty"`
	Counts  AttendanceCounts `json:"counts"`
	Entries []RosterEntry    `json:"entries"`
}

// ToggleResult reports what a toggle did
type ToggleResult struct {
	// RequiresAbsenceReason is set when the member was present; nothing was changed
	RequiresAbsenceReason bool               `json:"requiresAbsenceReason"`
	Attendance            *models.Attendance `json:"attendance,omitempty"`
}

// BulkFailure is one member mark-all could not update
type BulkFailure struct {
	UserID uuid.UUID `json:"userId"`
	Error  string    `json:"error" example:"member not found"`
}

// BulkResult reports per-member outcomes of mark-all
type BulkResult struct {
	Succeeded []uuid.UUID   `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// WalkInResponse is the created member and their attendance row
type WalkInResponse struct {
	Member     *models.User       `json:"member"`
	Attendance *models.Attendance `json:"attendance"`
}

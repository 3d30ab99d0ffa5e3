package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance records whether a member was at an event; one row per (user, event)
type Attendance struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty" db:"user_id"`
	EventID      uuid.UUID  `json:"eventId" db:"event_id"`
	Present      bool       `json:"present" db:"present"`
	IsFirstTimer bool       `json:"isFirstTimer" db:"is_first_timer"`
	CellGroup    *string    `json:"cellGroup,omitempty" db:"cell_group"`
	Notes        *string    `json:"notes" db:"notes"`
	// MarkedBy is reserved for attributing marks once logins exist; nothing sets it yet
	MarkedBy     *uuid.UUID `json:"markedBy,omitempty" db:"marked_by"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`

	// EventDate is filled by reads joined with events
	EventDate *time.Time `json:"eventDate,omitempty" db:"event_date"`
}

// AttendanceStatus is the derived state of a roster entry
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceNotMarked AttendanceStatus = "not_marked"
)

// StatusOf derives the roster status from an optional attendance row
func StatusOf(a *Attendance) AttendanceStatus {
	switch {
	case a == nil:
		return AttendanceNotMarked
	case a.Present:
		return AttendancePresent
	default:
		return AttendanceAbsent
	}
}

// AttendanceMarked is emitted after a member's attendance is stored
type AttendanceMarked struct {
	AttendanceID uuid.UUID `json:"attendanceId"`
	EventID      uuid.UUID `json:"eventId"`
	UserID       uuid.UUID `json:"userId"`
	Present      bool      `json:"present"`
	IsFirstTimer bool      `json:"isFirstTimer"`
	Notes        *string   `json:"notes,omitempty"`
	MarkedAt     time.Time `json:"markedAt"`
}

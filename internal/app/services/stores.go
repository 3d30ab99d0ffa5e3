package services

import (
	"context"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/google/uuid"
)

// AttendanceStore persists attendance rows
type AttendanceStore interface {
	// FindByUserAndEvent returns nil, nil when the pair has no row
	FindByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*models.Attendance, error)
	Create(ctx context.Context, a *models.Attendance) error
	UpdateStatus(ctx context.Context, id uuid.UUID, present bool, notes *string) (*models.Attendance, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Attendance, error)
	ListWithEventDates(ctx context.Context) ([]*models.Attendance, error)
}

// UserStore persists members
type UserStore interface {
	List(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role, pin *string) error
	UpdatePIN(ctx context.Context, id uuid.UUID, pin *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) (map[models.Role]int, error)
}

// EventStore persists events
type EventStore interface {
	List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParticipantStore persists event rosters
type ParticipantStore interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.EventParticipant, error)
	Add(ctx context.Context, eventID, userID uuid.UUID) (*models.EventParticipant, error)
	Remove(ctx context.Context, eventID, userID uuid.UUID) error
}

// DepartmentStore persists departments and teams
type DepartmentStore interface {
	GetAll(ctx context.Context) ([]*models.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error)
	Create(ctx context.Context, d *models.Department) error
	Update(ctx context.Context, d *models.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListTeams(ctx context.Context, departmentID uuid.UUID) ([]*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	CreateTeam(ctx context.Context, t *models.Team) error
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

// ChecklistStore persists equipment checklists
type ChecklistStore interface {
	List(ctx context.Context, teamID, eventID uuid.UUID) ([]*models.ChecklistItem, error)
	Upsert(ctx context.Context, items []*models.ChecklistItem) ([]*models.ChecklistItem, error)
}

// CallStore persists first-timer follow-up calls
type CallStore interface {
	Create(ctx context.Context, c *models.FirstTimerCall) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.FirstTimerCall, error)
	LatestPerUser(ctx context.Context) ([]*models.FirstTimerCall, error)
}

// AttendanceNotifier is told about every stored attendance change
type AttendanceNotifier interface {
	AttendanceMarked(ctx context.Context, evt models.AttendanceMarked) error
}

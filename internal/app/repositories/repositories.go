package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	EventRepository          *EventRepository
	AttendanceRepository     *AttendanceRepository
	ParticipantRepository    *ParticipantRepository
	DepartmentRepository     *DepartmentRepository
	ChecklistRepository      *ChecklistRepository
	FirstTimerCallRepository *FirstTimerCallRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		EventRepository:          NewEventRepository(db),
		AttendanceRepository:     NewAttendanceRepository(db),
		ParticipantRepository:    NewParticipantRepository(db),
		DepartmentRepository:     NewDepartmentRepository(db),
		ChecklistRepository:      NewChecklistRepository(db),
		FirstTimerCallRepository: NewFirstTimerCallRepository(db),
	}
}

package seed

import (
	"context"
	"errors"

	appModels "github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// DepartmentStore is the subset of the department repository seeding needs
type DepartmentStore interface {
	GetByName(ctx context.Context, name string) (*appModels.Department, error)
	Create(ctx context.Context, d *appModels.Department) error
	CreateTeam(ctx context.Context, t *appModels.Team) error
}

// UserStore is the subset of the user repository seeding needs
type UserStore interface {
	Create(ctx context.Context, u *appModels.User) error
}

type defaultDepartment struct {
	name        string
	description string
	teams       []string
}

var defaultDepartments = []defaultDepartment{
	{name: "Security", description: "Church security and safety team", teams: []string{"Main Security", "Parking"}},
	{name: "Ushers", description: "Welcome and seating coordination", teams: []string{"Main Entrance", "Side Entrance", "Special Events"}},
	{name: "Technicians", description: "Audio, visual, and technical equipment", teams: []string{"Sound Team", "Camera Team", "Lighting Team", "IT Support"}},
	{name: "Worship", description: "Music and worship leading", teams: []string{"Instruments", "Vocals"}},
	{name: "Children Ministry", description: "Sunday school and kids programs", teams: []string{"Toddlers", "Primary"}},
}

type defaultUser struct {
	name, surname, email, pin string
	role                      appModels.Role
	department                string
}

var defaultUsers = []defaultUser{
	{name: "Thabo", surname: "Mthembu", email: "admin1@cfcpretoriaeast.org", pin: "1001", role: appModels.RoleAdmin},
	{name: "Nomsa", surname: "Dlamini", email: "admin2@cfcpretoriaeast.org", pin: "1002", role: appModels.RoleAdmin},
	{name: "Sipho", surname: "Ndlovu", email: "security.lead@cfcpretoriaeast.org", pin: "2001", role: appModels.RoleDepartmentLeader, department: "Security"},
	{name: "Zanele", surname: "Khumalo", email: "ushers.lead@cfcpretoriaeast.org", pin: "2002", role: appModels.RoleDepartmentLeader, department: "Ushers"},
	{name: "Mandla", surname: "Mokoena", email: "tech.lead@cfcpretoriaeast.org", pin: "2003", role: appModels.RoleDepartmentLeader, department: "Technicians"},
}

// CreateDefaultData creates the default departments, their teams and the
// leadership accounts. Existing rows are left alone so it is safe on every start.
func CreateDefaultData(ctx context.Context, departments DepartmentStore, users UserStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Departments/Teams/Leaders)...")
	var finalErr error // collect errors without stopping the process

	departmentIDs := make(map[string]*appModels.Department, len(defaultDepartments))
	for _, dd := range defaultDepartments {
		dept, err := ensureDepartment(ctx, departments, dd)
		if err != nil {
			lgr.Error().Err(err).Str("department", dd.name).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		departmentIDs[dd.name] = dept

		for _, teamName := range dd.teams {
			err := departments.CreateTeam(ctx, &appModels.Team{DepartmentID: dept.ID, Name: teamName})
			if err != nil && !errors.Is(err, apperrors.ErrTeamAlreadyExists) {
				lgr.Error().Err(err).Str("team", teamName).Msg("Error creating default team")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	for _, du := range defaultUsers {
		pin := du.pin
		u := &appModels.User{
			Email:   du.email,
			Name:    du.name,
			Surname: du.surname,
			Role:    du.role,
			PIN:     &pin,
		}
		if du.department != "" {
			dept, ok := departmentIDs[du.department]
			if !ok {
				continue
			}
			u.DepartmentID = &dept.ID
		}

		if err := users.Create(ctx, u); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("email", du.email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed.")
	}
	return finalErr
}

func ensureDepartment(ctx context.Context, departments DepartmentStore, dd defaultDepartment) (*appModels.Department, error) {
	description := dd.description
	dept := &appModels.Department{Name: dd.name, Description: &description}
	err := departments.Create(ctx, dept)
	if err == nil {
		return dept, nil
	}
	if !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
		return nil, err
	}
	return departments.GetByName(ctx, dd.name)
}

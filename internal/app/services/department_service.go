package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/helpers"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DepartmentService handles departments, their teams and equipment checklists
type DepartmentService struct {
	departments DepartmentStore
	checklists  ChecklistStore
	users       UserStore
	events      EventStore
	log         zerolog.Logger
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departments DepartmentStore, checklists ChecklistStore, users UserStore, events EventStore, log zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		checklists:  checklists,
		users:       users,
		events:      events,
		log:         log,
	}
}

func validateDepartment(req dto.DepartmentRequest) error {
	if !validation.IsValidName(req.Name) {
		return apperrors.NewValidationError("department name is required and must be at most 100 characters")
	}
	return nil
}

// GetAll returns all departments with their member counts
func (s *DepartmentService) GetAll(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departments.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list departments")
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	return departments, nil
}

// Get returns a department with its teams
func (s *DepartmentService) Get(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	d, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	teams, err := s.departments.ListTeams(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing teams: %w", err)
	}
	d.Teams = teams
	return d, nil
}

// Create creates a new department
func (s *DepartmentService) Create(ctx context.Context, req dto.DepartmentRequest) (*models.Department, error) {
	if err := validateDepartment(req); err != nil {
		return nil, err
	}
	d := &models.Department{
		Name:        strings.TrimSpace(req.Name),
		Description: helpers.NullIfBlank(req.Description),
	}
	if err := s.departments.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update renames or redescribes a department
func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, req dto.DepartmentRequest) (*models.Department, error) {
	if err := validateDepartment(req); err != nil {
		return nil, err
	}
	d, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Name = strings.TrimSpace(req.Name)
	d.Description = helpers.NullIfBlank(req.Description)
	if err := s.departments.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete deletes a department that no longer has teams or members
func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.departments.Delete(ctx, id)
}

// Members returns the department roster ordered by surname
func (s *DepartmentService) Members(ctx context.Context, id uuid.UUID) ([]*models.User, error) {
	if _, err := s.departments.GetByID(ctx, id); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, models.UserFilter{DepartmentID: &id, OrderBySurname: true})
	if err != nil {
		return nil, fmt.Errorf("error listing department members: %w", err)
	}
	return users, nil
}

// Teams returns a department's teams
func (s *DepartmentService) Teams(ctx context.Context, id uuid.UUID) ([]*models.Team, error) {
	if _, err := s.departments.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.departments.ListTeams(ctx, id)
}

// CreateTeam adds a team to a department
func (s *DepartmentService) CreateTeam(ctx context.Context, departmentID uuid.UUID, req dto.CreateTeamRequest) (*models.Team, error) {
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("team name is required and must be at most 100 characters")
	}
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}
	if req.LeaderID != nil {
		if _, err := s.users.GetByID(ctx, *req.LeaderID); err != nil {
			return nil, err
		}
	}

	t := &models.Team{
		DepartmentID: departmentID,
		Name:         strings.TrimSpace(req.Name),
		Description:  helpers.NullIfBlank(req.Description),
		LeaderID:     req.LeaderID,
	}
	if err := s.departments.CreateTeam(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTeam removes a team
func (s *DepartmentService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return s.departments.DeleteTeam(ctx, id)
}

// SummarizeChecklist counts working items and items needing repair
func SummarizeChecklist(items []*models.ChecklistItem) dto.ChecklistSummary {
	var sum dto.ChecklistSummary
	for _, it := range items {
		if it.IsWorking {
			sum.Working++
		} else {
			sum.NeedsRepair++
		}
	}
	return sum
}

// Checklist returns a team's equipment checklist for an event
func (s *DepartmentService) Checklist(ctx context.Context, teamID, eventID uuid.UUID) (*dto.ChecklistResponse, error) {
	if err := s.checkTeamAndEvent(ctx, teamID, eventID); err != nil {
		return nil, err
	}
	items, err := s.checklists.List(ctx, teamID, eventID)
	if err != nil {
		s.log.Error().Err(err).Str("teamId", teamID.String()).Str("eventId", eventID.String()).Msg("Failed to load checklist")
		return nil, fmt.Errorf("error loading checklist: %w", err)
	}
	return &dto.ChecklistResponse{TeamID: teamID, EventID: eventID, Items: items, Summary: SummarizeChecklist(items)}, nil
}

// UpdateChecklist upserts items by equipment name and returns the whole checklist
func (s *DepartmentService) UpdateChecklist(ctx context.Context, teamID, eventID uuid.UUID, req dto.UpdateChecklistRequest) (*dto.ChecklistResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationError("at least one checklist item is required")
	}
	if err := s.checkTeamAndEvent(ctx, teamID, eventID); err != nil {
		return nil, err
	}

	// later entries for the same equipment win
	byName := make(map[string]*models.ChecklistItem, len(req.Items))
	order := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		name := strings.TrimSpace(it.EquipmentName)
		if name == "" {
			return nil, apperrors.NewValidationError("equipment name is required")
		}
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = &models.ChecklistItem{
			TeamID:        teamID,
			EventID:       eventID,
			EquipmentName: name,
			IsWorking:     it.IsWorking,
			Remarks:       helpers.NullIfBlank(it.Remarks),
			CheckedBy:     req.CheckedBy,
		}
	}
	items := make([]*models.ChecklistItem, 0, len(order))
	for _, name := range order {
		items = append(items, byName[name])
	}

	if _, err := s.checklists.Upsert(ctx, items); err != nil {
		s.log.Error().Err(err).Str("teamId", teamID.String()).Str("eventId", eventID.String()).Msg("Failed to save checklist")
		return nil, fmt.Errorf("error saving checklist: %w", err)
	}
	return s.Checklist(ctx, teamID, eventID)
}

func (s *DepartmentService) checkTeamAndEvent(ctx context.Context, teamID, eventID uuid.UUID) error {
	if _, err := s.departments.GetTeam(ctx, teamID); err != nil {
		return err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/helpers"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultBulkConcurrency = 8

// AttendanceService keeps exactly one attendance row per member and event
type AttendanceService struct {
	attendance      AttendanceStore
	users           UserStore
	events          EventStore
	notifier        AttendanceNotifier
	bulkConcurrency int
	log             zerolog.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendance AttendanceStore, users UserStore, events EventStore, notifier AttendanceNotifier, bulkConcurrency int, log zerolog.Logger) *AttendanceService {
	if bulkConcurrency < 1 {
		bulkConcurrency = defaultBulkConcurrency
	}
	return &AttendanceService{
		attendance:      attendance,
		users:           users,
		events:          events,
		notifier:        notifier,
		bulkConcurrency: bulkConcurrency,
		log:             log,
	}
}

// MarkPresent records the member as present and clears any absence reason
func (s *AttendanceService) MarkPresent(ctx context.Context, eventID, userID uuid.UUID) (*models.Attendance, error) {
	return s.mark(ctx, eventID, userID, true, nil)
}

// MarkAbsent records the member as absent with an optional reason; a blank reason is stored as null
func (s *AttendanceService) MarkAbsent(ctx context.Context, eventID, userID uuid.UUID, reason *string) (*models.Attendance, error) {
	return s.mark(ctx, eventID, userID, false, helpers.NullIfBlank(reason))
}

// Toggle marks an unmarked or absent member present. A present member is left unchanged
// and the result asks the caller for an absence reason instead.
func (s *AttendanceService) Toggle(ctx context.Context, eventID, userID uuid.UUID) (*dto.ToggleResult, error) {
	existing, err := s.find(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Present {
		return &dto.ToggleResult{RequiresAbsenceReason: true, Attendance: existing}, nil
	}

	a, err := s.MarkPresent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleResult{Attendance: a}, nil
}

// MarkAllPresent marks every listed member present, or the whole roster when userIDs is empty.
// Members are written concurrently and independently; failures are reported per member and
// nothing is rolled back.
func (s *AttendanceService) MarkAllPresent(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) (*dto.BulkResult, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	if len(userIDs) == 0 {
		users, err := s.users.List(ctx, models.UserFilter{OrderBySurname: true})
		if err != nil {
			s.log.Error().Err(err).Str("eventId", eventID.String()).Msg("Failed to load roster for mark-all")
			return nil, fmt.Errorf("error loading roster: %w", err)
		}
		for _, u := range users {
			userIDs = append(userIDs, u.ID)
		}
	}
	userIDs = uniqueIDs(userIDs)

	errs := make([]error, len(userIDs))
	var g errgroup.Group
	g.SetLimit(s.bulkConcurrency)
	for i, id := range userIDs {
		i, id := i, id
		g.Go(func() error {
			_, errs[i] = s.MarkPresent(ctx, eventID, id)
			return nil
		})
	}
	_ = g.Wait()

	result := &dto.BulkResult{Succeeded: []uuid.UUID{}, Failed: []dto.BulkFailure{}}
	for i, id := range userIDs {
		if errs[i] != nil {
			result.Failed = append(result.Failed, dto.BulkFailure{UserID: id, Error: errs[i].Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	if len(result.Failed) > 0 {
		s.log.Warn().
			Str("eventId", eventID.String()).
			Int("succeeded", len(result.Succeeded)).
			Int("failed", len(result.Failed)).
			Msg("Mark-all finished with failures")
	}
	return result, nil
}

// Snapshot returns the full roster for an event with attendance statuses and counts.
// Counts cover the whole roster; search only narrows the returned entries.
func (s *AttendanceService) Snapshot(ctx context.Context, eventID uuid.UUID, search string) (*dto.AttendanceSnapshot, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	var (
		users       []*models.User
		attendances []*models.Attendance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx, models.UserFilter{OrderBySurname: true})
		return err
	})
	g.Go(func() error {
		var err error
		attendances, err = s.attendance.ListByEvent(gctx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("eventId", eventID.String()).Msg("Failed to load attendance snapshot")
		return nil, fmt.Errorf("error loading attendance snapshot: %w", err)
	}

	search = strings.TrimSpace(search)
	entries := BuildRoster(users, attendances)
	return &dto.AttendanceSnapshot{
		EventID: eventID,
		Search:  search,
		Counts:  CountRoster(entries),
		Entries: FilterRoster(entries, search),
	}, nil
}

// RegisterWalkIn creates a member for a visitor at the door and marks them present
func (s *AttendanceService) RegisterWalkIn(ctx context.Context, eventID uuid.UUID, req dto.WalkInRequest) (*dto.WalkInResponse, error) {
	if err := validateWalkIn(req); err != nil {
		return nil, err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	id := uuid.New()
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = walkInEmail(id)
	}

	member := &models.User{
		ID:           id,
		Email:        strings.ToLower(email),
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Phone:        helpers.NullIfBlank(req.Phone),
		Role:         models.RoleMember,
		CellGroup:    helpers.NullIfBlank(req.CellGroup),
		IsFirstTimer: req.IsFirstTimer,
	}
	if err := s.users.Create(ctx, member); err != nil {
		s.log.Error().Err(err).Str("eventId", eventID.String()).Msg("Failed to create walk-in member")
		return nil, fmt.Errorf("error creating walk-in member: %w", err)
	}

	a, err := s.MarkPresent(ctx, eventID, member.ID)
	if err != nil {
		return nil, err
	}
	return &dto.WalkInResponse{Member: member, Attendance: a}, nil
}

func (s *AttendanceService) find(ctx context.Context, eventID, userID uuid.UUID) (*models.Attendance, error) {
	a, err := s.attendance.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		s.log.Error().Err(err).
			Str("eventId", eventID.String()).
			Str("userId", userID.String()).
			Msg("Failed to read attendance")
		return nil, fmt.Errorf("error reading attendance: %w", err)
	}
	return a, nil
}

func (s *AttendanceService) mark(ctx context.Context, eventID, userID uuid.UUID, present bool, notes *string) (*models.Attendance, error) {
	existing, err := s.find(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	var a *models.Attendance
	if existing != nil {
		a, err = s.update(ctx, existing.ID, eventID, userID, present, notes)
	} else {
		a, err = s.insert(ctx, eventID, userID, present, notes)
	}
	if err != nil {
		return nil, err
	}

	s.notify(ctx, a)
	return a, nil
}

func (s *AttendanceService) insert(ctx context.Context, eventID, userID uuid.UUID, present bool, notes *string) (*models.Attendance, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	a := &models.Attendance{
		UserID:       &userID,
		EventID:      eventID,
		Present:      present,
		IsFirstTimer: user.IsFirstTimer,
		CellGroup:    user.CellGroup,
		Notes:        notes,
	}
	err = s.attendance.Create(ctx, a)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, apperrors.ErrAttendanceExists) {
		s.log.Error().Err(err).
			Str("eventId", eventID.String()).
			Str("userId", userID.String()).
			Msg("Failed to insert attendance")
		return nil, fmt.Errorf("error recording attendance: %w", err)
	}

	// another request inserted the pair first
	existing, ferr := s.find(ctx, eventID, userID)
	if ferr != nil {
		return nil, ferr
	}
	if existing == nil {
		return nil, fmt.Errorf("error recording attendance: %w", err)
	}
	return s.update(ctx, existing.ID, eventID, userID, present, notes)
}

func (s *AttendanceService) update(ctx context.Context, id, eventID, userID uuid.UUID, present bool, notes *string) (*models.Attendance, error) {
	a, err := s.attendance.UpdateStatus(ctx, id, present, notes)
	if err != nil {
		s.log.Error().Err(err).
			Str("eventId", eventID.String()).
			Str("userId", userID.String()).
			Msg("Failed to update attendance")
		return nil, fmt.Errorf("error updating attendance: %w", err)
	}
	return a, nil
}

func (s *AttendanceService) notify(ctx context.Context, a *models.Attendance) {
	if s.notifier == nil || a.UserID == nil {
		return
	}

	evt := models.AttendanceMarked{
		AttendanceID: a.ID,
		EventID:      a.EventID,
		UserID:       *a.UserID,
		Present:      a.Present,
		IsFirstTimer: a.IsFirstTimer,
		Notes:        a.Notes,
		MarkedAt:     time.Now().UTC(),
	}
	if err := s.notifier.AttendanceMarked(ctx, evt); err != nil {
		s.log.Warn().Err(err).
			Str("eventId", a.EventID.String()).
			Str("userId", a.UserID.String()).
			Msg("Failed to publish attendance change")
	}
}

func validateWalkIn(req dto.WalkInRequest) error {
	if !validation.IsValidName(req.Name) || !validation.IsValidName(req.Surname) {
		return apperrors.NewValidationError("name and surname are required")
	}
	if !validation.IsValidPhone(req.Phone) {
		return apperrors.NewValidationError("phone number format is invalid")
	}
	if email := strings.TrimSpace(req.Email); email != "" && !validation.IsValidEmail(email) {
		return apperrors.NewValidationError("email format is invalid")
	}
	return nil
}

// walkInEmail gives visitors without an email a unique placeholder address
func walkInEmail(id uuid.UUID) string {
	return "walkin-" + id.String() + "@guest.invalid"
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

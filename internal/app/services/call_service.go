package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/helpers"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CallService logs follow-up calls to first-time visitors
type CallService struct {
	calls CallStore
	users UserStore
	loc   *time.Location
	now   func() time.Time
	log   zerolog.Logger
}

// NewCallService creates a new call service; call dates default to today in loc
func NewCallService(calls CallStore, users UserStore, loc *time.Location, log zerolog.Logger) *CallService {
	if loc == nil {
		loc = time.UTC
	}
	return &CallService{
		calls: calls,
		users: users,
		loc:   loc,
		now:   time.Now,
		log:   log,
	}
}

// LogCall records a call to a member
func (s *CallService) LogCall(ctx context.Context, userID uuid.UUID, req dto.LogCallRequest) (*models.FirstTimerCall, error) {
	if !req.CallStatus.Valid() {
		return nil, apperrors.ErrInvalidCallStatus
	}

	callDate := helpers.StartOfDay(s.now().In(s.loc))
	if d := strings.TrimSpace(req.CallDate); d != "" {
		parsed, err := helpers.ParseDate(d)
		if err != nil {
			return nil, apperrors.NewValidationError("call date must be YYYY-MM-DD")
		}
		callDate = parsed
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	c := &models.FirstTimerCall{
		UserID:     userID,
		CalledBy:   req.CalledBy,
		CallDate:   callDate,
		CallStatus: req.CallStatus,
		Notes:      helpers.NullIfBlank(req.Notes),
	}
	if err := s.calls.Create(ctx, c); err != nil {
		s.log.Error().Err(err).Str("userId", userID.String()).Msg("Failed to log call")
		return nil, err
	}
	return c, nil
}

// ListCalls returns a member's calls, most recent first
func (s *CallService) ListCalls(ctx context.Context, userID uuid.UUID) ([]*models.FirstTimerCall, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.calls.ListByUser(ctx, userID)
}

// FirstTimers lists first-time visitors, newest first, with their latest call
func (s *CallService) FirstTimers(ctx context.Context) ([]dto.FirstTimerResponse, error) {
	users, err := s.users.List(ctx, models.UserFilter{FirstTimers: true})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list first-timers")
		return nil, fmt.Errorf("error listing first-timers: %w", err)
	}
	latest, err := s.calls.LatestPerUser(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load latest calls")
		return nil, fmt.Errorf("error loading calls: %w", err)
	}

	byUser := make(map[uuid.UUID]*models.FirstTimerCall, len(latest))
	for _, c := range latest {
		byUser[c.UserID] = c
	}

	out := make([]dto.FirstTimerResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FirstTimerResponse{Member: u, LastCall: byUser[u.ID]})
	}
	return out, nil
}

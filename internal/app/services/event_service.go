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

// EventService handles events and their participant rosters
type EventService struct {
	events       EventStore
	participants ParticipantStore
	attendance   AttendanceStore
	log          zerolog.Logger
}

// NewEventService creates a new event service
func NewEventService(events EventStore, participants ParticipantStore, attendance AttendanceStore, log zerolog.Logger) *EventService {
	return &EventService{
		events:       events,
		participants: participants,
		attendance:   attendance,
		log:          log,
	}
}

// buildEvent validates the request fields and copies them onto e
func buildEvent(e *models.Event, title string, typ models.EventType, date, clock string, location, description *string) error {
	if !validation.NewStringValidation(title).WithMaxLength(200).Validate() {
		return apperrors.NewValidationError("title is required and must be at most 200 characters")
	}
	if !typ.Valid() {
		return apperrors.ErrInvalidEventType
	}
	eventDate, err := helpers.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return fmt.Errorf("event date must be YYYY-MM-DD: %w", apperrors.ErrInvalidEventDate)
	}
	if !validation.IsValidEventTime(clock) {
		return fmt.Errorf("event time must be HH:MM: %w", apperrors.ErrInvalidEventDate)
	}

	e.Title = strings.TrimSpace(title)
	e.Type = typ
	e.EventDate = eventDate
	e.EventTime = strings.TrimSpace(clock)
	e.Location = helpers.NullIfBlank(location)
	e.Description = helpers.NullIfBlank(description)
	return nil
}

// List returns events newest first, optionally of one type
func (s *EventService) List(ctx context.Context, typ *models.EventType) ([]*models.Event, error) {
	if typ != nil && !typ.Valid() {
		return nil, apperrors.ErrInvalidEventType
	}
	events, err := s.events.List(ctx, models.EventFilter{Type: typ})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list events")
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return events, nil
}

// Get retrieves an event by ID
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return s.events.GetByID(ctx, id)
}

// Create adds an event
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error) {
	e := &models.Event{CreatedBy: req.CreatedBy}
	if err := buildEvent(e, req.Title, req.Type, req.EventDate, req.EventTime, req.Location, req.Description); err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info().Str("eventId", e.ID.String()).Str("type", string(e.Type)).Msg("Event created")
	return e, nil
}

// Update changes an event's details
func (s *EventService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*models.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := buildEvent(e, req.Title, req.Type, req.EventDate, req.EventTime, req.Location, req.Description); err != nil {
		return nil, err
	}

	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an event together with its attendance and roster
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.events.Delete(ctx, id)
}

// ListParticipants returns the event roster with each participant's attendance status
func (s *EventService) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]dto.ParticipantResponse, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	participants, err := s.participants.ListByEvent(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Str("eventId", eventID.String()).Msg("Failed to list participants")
		return nil, fmt.Errorf("error listing participants: %w", err)
	}
	attendances, err := s.attendance.ListByEvent(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Str("eventId", eventID.String()).Msg("Failed to load participant attendance")
		return nil, fmt.Errorf("error loading attendance: %w", err)
	}

	users := make([]*models.User, 0, len(participants))
	for _, p := range participants {
		users = append(users, p.User)
	}
	entries := BuildRoster(users, attendances)

	out := make([]dto.ParticipantResponse, 0, len(participants))
	for i, p := range participants {
		out = append(out, dto.ParticipantResponse{
			ID:     p.ID,
			User:   p.User,
			Status: entries[i].Status,
		})
	}
	return out, nil
}

// AddParticipant assigns a member to the event roster; assigning twice is harmless
func (s *EventService) AddParticipant(ctx context.Context, eventID, userID uuid.UUID) (*models.EventParticipant, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	p, err := s.participants.Add(ctx, eventID, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}
	return p, nil
}

// RemoveParticipant unassigns a member; their attendance row, if any, is kept
func (s *EventService) RemoveParticipant(ctx context.Context, eventID, userID uuid.UUID) error {
	return s.participants.Remove(ctx, eventID, userID)
}

package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/dberrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var eventColumns = []string{
	"id", "title", "type", "event_date", "to_char(event_time, 'HH24:MI')",
	"location", "description", "created_by", "created_at",
}

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: psql,
	}
}

func scanEvent(row rowScanner) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Type, &e.EventDate, &e.EventTime,
		&e.Location, &e.Description, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func buildEventListQuery(sb squirrel.StatementBuilderType, filter models.EventFilter) squirrel.SelectBuilder {
	q := sb.Select(eventColumns...).From("events")
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"event_date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"event_date": *filter.To})
	}
	return q.OrderBy("event_date DESC", "event_time DESC")
}

// List returns events newest first
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	sql, args, err := buildEventListQuery(r.sb, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list events query")
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	e, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Str("eventId", id.String()).Msg("Error scanning event row")
		return nil, fmt.Errorf("error getting event by ID: %w", err)
	}
	return e, nil
}

// Create inserts an event and fills its ID and creation time
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("events").
		Columns("id", "title", "type", "event_date", "event_time", "location", "description", "created_by").
		Values(e.ID, e.Title, e.Type, e.EventDate, squirrel.Expr("?::time", e.EventTime), e.Location, e.Description, e.CreatedBy).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrMemberNotFound
		}
		logger.Error().Err(err).Msg("Error executing create event query")
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// Update saves an event's details
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	sql, args, err := r.sb.Update("events").
		SetMap(map[string]interface{}{
			"title":       e.Title,
			"type":        e.Type,
			"event_date":  e.EventDate,
			"event_time":  squirrel.Expr("?::time", e.EventTime),
			"location":    e.Location,
			"description": e.Description,
		}).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eventId", e.ID.String()).Msg("Error executing update event query")
		return fmt.Errorf("error updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event; its attendance, participants and checklists cascade
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

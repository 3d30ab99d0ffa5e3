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

// ParticipantRepository handles the event_participants roster
type ParticipantRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{
		db: db,
		sb: psql,
	}
}

// ListByEvent returns the event's participants with their member profile, ordered by surname
func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.EventParticipant, error) {
	cols := []string{"p.id", "p.event_id", "p.user_id", "p.created_at"}
	for _, c := range userColumns {
		cols = append(cols, "u."+c)
	}

	sql, args, err := r.sb.Select(cols...).
		From("event_participants p").
		Join("users u ON u.id = p.user_id").
		Where(squirrel.Eq{"p.event_id": eventID}).
		OrderBy("u.surname ASC", "u.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list participants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eventId", eventID.String()).Msg("Error querying participants")
		return nil, fmt.Errorf("error querying participants: %w", err)
	}
	defer rows.Close()

	participants := []*models.EventParticipant{}
	for rows.Next() {
		p := &models.EventParticipant{User: &models.User{}}
		u := p.User
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.UserID, &p.CreatedAt,
			&u.ID, &u.Email, &u.Name, &u.Surname, &u.Phone, &u.Role, &u.PIN,
			&u.DepartmentID, &u.CellGroup, &u.IsFirstTimer, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning participant row: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}

// Add assigns a member to an event; adding an existing participant is a no-op returning the stored row
func (r *ParticipantRepository) Add(ctx context.Context, eventID, userID uuid.UUID) (*models.EventParticipant, error) {
	sql, args, err := r.sb.Insert("event_participants").
		Columns("id", "event_id", "user_id").
		Values(uuid.New(), eventID, userID).
		Suffix("ON CONFLICT (event_id, user_id) DO UPDATE SET event_id = EXCLUDED.event_id RETURNING id, event_id, user_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build add participant query: %w", err)
	}

	p := &models.EventParticipant{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.EventID, &p.UserID, &p.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Str("eventId", eventID.String()).Msg("Error adding participant")
		return nil, fmt.Errorf("error adding participant: %w", err)
	}
	return p, nil
}

// Remove unassigns a member from an event
func (r *ParticipantRepository) Remove(ctx context.Context, eventID, userID uuid.UUID) error {
	sql, args, err := r.sb.Delete("event_participants").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove participant query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error removing participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var callColumns = []string{"id", "user_id", "called_by", "call_date", "call_status", "notes", "created_at"}

// FirstTimerCallRepository handles the follow-up call log
type FirstTimerCallRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFirstTimerCallRepository creates a new FirstTimerCallRepository
func NewFirstTimerCallRepository(db *pgxpool.Pool) *FirstTimerCallRepository {
	return &FirstTimerCallRepository{
		db: db,
		sb: psql,
	}
}

func scanCall(row rowScanner) (*models.FirstTimerCall, error) {
	c := &models.FirstTimerCall{}
	if err := row.Scan(&c.ID, &c.UserID, &c.CalledBy, &c.CallDate, &c.CallStatus, &c.Notes, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *FirstTimerCallRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.FirstTimerCall, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build calls query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying calls: %w", err)
	}
	defer rows.Close()

	calls := []*models.FirstTimerCall{}
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning call row: %w", err)
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// Create logs a call
func (r *FirstTimerCallRepository) Create(ctx context.Context, c *models.FirstTimerCall) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("first_timer_calls").
		Columns("id", "user_id", "called_by", "call_date", "call_status", "notes").
		Values(c.ID, c.UserID, c.CalledBy, c.CallDate, c.CallStatus, c.Notes).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create call query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrMemberNotFound
		}
		return fmt.Errorf("error logging call: %w", err)
	}
	return nil
}

// ListByUser returns a member's calls, most recent first
func (r *FirstTimerCallRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.FirstTimerCall, error) {
	return r.list(ctx, r.sb.Select(callColumns...).
		From("first_timer_calls").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("call_date DESC", "created_at DESC"))
}

// LatestPerUser returns the most recent call of every member that has one
func (r *FirstTimerCallRepository) LatestPerUser(ctx context.Context) ([]*models.FirstTimerCall, error) {
	return r.list(ctx, r.sb.Select(callColumns...).
		Options("DISTINCT ON (user_id)").
		From("first_timer_calls").
		OrderBy("user_id", "call_date DESC", "created_at DESC"))
}

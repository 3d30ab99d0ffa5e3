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

const attendanceUniqueConstraint = "attendances_user_event_key"

var attendanceColumns = []string{
	"a.id", "a.user_id", "a.event_id", "a.present", "a.is_first_timer", "a.cell_group",
	"a.notes", "a.marked_by", "a.created_at", "a.updated_at",
}

// AttendanceRepository handles database operations for attendance rows
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: psql,
	}
}

func scanAttendance(row rowScanner, withEventDate bool) (*models.Attendance, error) {
	a := &models.Attendance{}
	dest := []any{
		&a.ID, &a.UserID, &a.EventID, &a.Present, &a.IsFirstTimer, &a.CellGroup,
		&a.Notes, &a.MarkedBy, &a.CreatedAt, &a.UpdatedAt,
	}
	if withEventDate {
		dest = append(dest, &a.EventDate)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AttendanceRepository) list(ctx context.Context, q squirrel.SelectBuilder, withEventDate bool) ([]*models.Attendance, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing attendance query")
		return nil, fmt.Errorf("error querying attendances: %w", err)
	}
	defer rows.Close()

	out := []*models.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows, withEventDate)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return out, nil
}

// FindByUserAndEvent returns the row for the pair, or nil when none exists
func (r *AttendanceRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns...).
		From("attendances a").
		Where(squirrel.Eq{"a.user_id": userID, "a.event_id": eventID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find attendance query: %w", err)
	}

	a, err := scanAttendance(r.db.QueryRow(ctx, sql, args...), false)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		logger.Error().Err(err).
			Str("userId", userID.String()).
			Str("eventId", eventID.String()).
			Msg("Error reading attendance row")
		return nil, fmt.Errorf("error finding attendance: %w", err)
	}
	return a, nil
}

// Create inserts a new attendance row. A concurrent insert for the same pair yields ErrAttendanceExists.
func (r *AttendanceRepository) Create(ctx context.Context, a *models.Attendance) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("attendances").
		Columns("id", "user_id", "event_id", "present", "is_first_timer", "cell_group", "notes", "marked_by").
		Values(a.ID, a.UserID, a.EventID, a.Present, a.IsFirstTimer, a.CellGroup, a.Notes, a.MarkedBy).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create attendance query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, attendanceUniqueConstraint):
			return apperrors.ErrAttendanceExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Str("eventId", a.EventID.String()).Msg("Error inserting attendance")
		return fmt.Errorf("error creating attendance: %w", err)
	}
	return nil
}

// UpdateStatus sets present and notes on an existing row and returns it
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, present bool, notes *string) (*models.Attendance, error) {
	sql, args, err := r.sb.Update("attendances a").
		Set("present", present).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"a.id": id}).
		Suffix("RETURNING " + joinColumns(attendanceColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update attendance query: %w", err)
	}

	a, err := scanAttendance(r.db.QueryRow(ctx, sql, args...), false)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		logger.Error().Err(err).Str("attendanceId", id.String()).Msg("Error updating attendance")
		return nil, fmt.Errorf("error updating attendance: %w", err)
	}
	return a, nil
}

// ListByEvent returns every attendance row recorded for an event
func (r *AttendanceRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Attendance, error) {
	return r.list(ctx, r.sb.Select(attendanceColumns...).
		From("attendances a").
		Where(squirrel.Eq{"a.event_id": eventID}), false)
}

// ListWithEventDates returns every attendance row joined with its event's date
func (r *AttendanceRepository) ListWithEventDates(ctx context.Context) ([]*models.Attendance, error) {
	return r.list(ctx, r.sb.Select(append(attendanceColumns, "e.event_date")...).
		From("attendances a").
		LeftJoin("events e ON e.id = a.event_id"), true)
}

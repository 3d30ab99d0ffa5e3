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

var userColumns = []string{
	"id", "email", "name", "surname", "phone", "role", "pin",
	"department_id", "cell_group", "is_first_timer", "created_at", "updated_at",
}

// UserRepository handles database operations for members
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: psql,
	}
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Surname, &u.Phone, &u.Role, &u.PIN,
		&u.DepartmentID, &u.CellGroup, &u.IsFirstTimer, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func buildUserListQuery(sb squirrel.StatementBuilderType, filter models.UserFilter) squirrel.SelectBuilder {
	q := sb.Select(userColumns...).From("users")
	if filter.Role != nil {
		q = q.Where(squirrel.Eq{"role": *filter.Role})
	}
	if filter.DepartmentID != nil {
		q = q.Where(squirrel.Eq{"department_id": *filter.DepartmentID})
	}
	if filter.FirstTimers {
		q = q.Where(squirrel.Eq{"is_first_timer": true})
	}
	if filter.OrderBySurname {
		return q.OrderBy("surname ASC", "name ASC")
	}
	return q.OrderBy("created_at DESC")
}

// List returns members matching filter
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	sql, args, err := buildUserListQuery(r.sb, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// GetByID retrieves a member by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrMemberNotFound
		}
		logger.Error().Err(err).Str("userId", id.String()).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return u, nil
}

// Create inserts a member and fills its ID and timestamps
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("users").
		Columns("id", "email", "name", "surname", "phone", "role", "pin", "department_id", "cell_group", "is_first_timer").
		Values(u.ID, u.Email, u.Name, u.Surname, u.Phone, u.Role, u.PIN, u.DepartmentID, u.CellGroup, u.IsFirstTimer).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return translateUserWriteError(err)
	}
	return nil
}

// Update saves a member's profile fields
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"email":          u.Email,
			"name":           u.Name,
			"surname":        u.Surname,
			"phone":          u.Phone,
			"department_id":  u.DepartmentID,
			"cell_group":     u.CellGroup,
			"is_first_timer": u.IsFirstTimer,
			"updated_at":     squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": u.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&u.UpdatedAt); err != nil {
		return translateUserWriteError(err)
	}
	return nil
}

// UpdateRole sets a member's role together with the PIN that goes with it
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role, pin *string) error {
	return r.exec(ctx, r.sb.Update("users").
		Set("role", role).
		Set("pin", pin).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}))
}

// UpdatePIN replaces a member's PIN
func (r *UserRepository) UpdatePIN(ctx context.Context, id uuid.UUID, pin *string) error {
	return r.exec(ctx, r.sb.Update("users").
		Set("pin", pin).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}))
}

// Delete removes a member; their attendance and calls cascade
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// CountByRole returns the number of members per role
func (r *UserRepository) CountByRole(ctx context.Context) (map[models.Role]int, error) {
	sql, args, err := r.sb.Select("role", "COUNT(*)").From("users").GroupBy("role").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by role query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Role]int)
	for rows.Next() {
		var role models.Role
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("error scanning role count: %w", err)
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

func (r *UserRepository) exec(ctx context.Context, q squirrel.UpdateBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user update: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateUserWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

func translateUserWriteError(err error) error {
	switch {
	case dberrors.IsNoRows(err):
		return apperrors.ErrMemberNotFound
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrDepartmentNotFound
	default:
		logger.Error().Err(err).Msg("Error writing user")
		return fmt.Errorf("error writing user: %w", err)
	}
}

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

const memberCountColumn = "(SELECT COUNT(*) FROM users u WHERE u.department_id = d.id) AS member_count"

// DepartmentRepository handles database operations for departments and their teams
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: psql,
	}
}

func scanDepartment(row rowScanner) (*models.Department, error) {
	d := &models.Department{}
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.MemberCount); err != nil {
		return nil, err
	}
	return d, nil
}

// GetAll retrieves all departments with member counts, ordered by name
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	sql, args, err := r.sb.Select("d.id", "d.name", "d.description", "d.created_at", memberCountColumn).
		From("departments d").
		OrderBy("d.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list departments query")
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning department row: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}
	return departments, nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	sql, args, err := r.sb.Select("d.id", "d.name", "d.description", "d.created_at", memberCountColumn).
		From("departments d").
		Where(squirrel.Eq{"d.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	d, err := scanDepartment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return d, nil
}

// GetByName retrieves a department by its unique name
func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	sql, args, err := r.sb.Select("d.id", "d.name", "d.description", "d.created_at", memberCountColumn).
		From("departments d").
		Where(squirrel.Eq{"d.name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	d, err := scanDepartment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return d, nil
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, d *models.Department) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("departments").
		Columns("id", "name", "description").
		Values(d.ID, d.Name, d.Description).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&d.CreatedAt); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, d *models.Department) error {
	sql, args, err := r.sb.Update("departments").
		Set("name", d.Name).
		Set("description", d.Description).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update department query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// Delete deletes a department that has no teams and no members
func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var hasRelations bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM teams WHERE department_id = $1)
		    OR EXISTS(SELECT 1 FROM users WHERE department_id = $1)`, id).Scan(&hasRelations)
	if err != nil {
		return fmt.Errorf("error checking department relations: %w", err)
	}
	if hasRelations {
		return apperrors.ErrDepartmentHasRelations
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// ListTeams returns a department's teams ordered by name
func (r *DepartmentRepository) ListTeams(ctx context.Context, departmentID uuid.UUID) ([]*models.Team, error) {
	sql, args, err := r.sb.Select("id", "department_id", "name", "description", "leader_id", "created_at").
		From("teams").
		Where(squirrel.Eq{"department_id": departmentID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list teams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying teams: %w", err)
	}
	defer rows.Close()

	teams := []*models.Team{}
	for rows.Next() {
		t := &models.Team{}
		if err := rows.Scan(&t.ID, &t.DepartmentID, &t.Name, &t.Description, &t.LeaderID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetTeam retrieves a team by ID
func (r *DepartmentRepository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	t := &models.Team{}
	err := r.db.QueryRow(ctx, `
		SELECT id, department_id, name, description, leader_id, created_at
		FROM teams WHERE id = $1`, id).
		Scan(&t.ID, &t.DepartmentID, &t.Name, &t.Description, &t.LeaderID, &t.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("error retrieving team: %w", err)
	}
	return t, nil
}

// CreateTeam creates a team under a department
func (r *DepartmentRepository) CreateTeam(ctx context.Context, t *models.Team) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("teams").
		Columns("id", "department_id", "name", "description", "leader_id").
		Values(t.ID, t.DepartmentID, t.Name, t.Description, t.LeaderID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create team query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.CreatedAt); err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return apperrors.ErrTeamAlreadyExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating team: %w", err)
	}
	return nil
}

// DeleteTeam removes a team and its checklists
func (r *DepartmentRepository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeamNotFound
	}
	return nil
}

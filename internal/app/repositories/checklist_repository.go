package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/db"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var checklistColumns = []string{
	"id", "team_id", "event_id", "equipment_name", "is_working", "remarks", "checked_by", "created_at", "updated_at",
}

// ChecklistRepository handles equipment checklists per team and event
type ChecklistRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *pgxpool.Pool) *ChecklistRepository {
	return &ChecklistRepository{
		db: db,
		sb: psql,
	}
}

func scanChecklistItem(row rowScanner) (*models.ChecklistItem, error) {
	c := &models.ChecklistItem{}
	err := row.Scan(&c.ID, &c.TeamID, &c.EventID, &c.EquipmentName, &c.IsWorking, &c.Remarks, &c.CheckedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a team's checklist for an event ordered by equipment name
func (r *ChecklistRepository) List(ctx context.Context, teamID, eventID uuid.UUID) ([]*models.ChecklistItem, error) {
	sql, args, err := r.sb.Select(checklistColumns...).
		From("checklists").
		Where(squirrel.Eq{"team_id": teamID, "event_id": eventID}).
		OrderBy("equipment_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list checklist query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying checklist: %w", err)
	}
	defer rows.Close()

	items := []*models.ChecklistItem{}
	for rows.Next() {
		c, err := scanChecklistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning checklist row: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func buildChecklistUpsert(sb squirrel.StatementBuilderType, item *models.ChecklistItem) (string, []interface{}, error) {
	return sb.Insert("checklists").
		Columns("id", "team_id", "event_id", "equipment_name", "is_working", "remarks", "checked_by").
		Values(item.ID, item.TeamID, item.EventID, item.EquipmentName, item.IsWorking, item.Remarks, item.CheckedBy).
		Suffix(`ON CONFLICT (team_id, event_id, equipment_name) DO UPDATE
			SET is_working = EXCLUDED.is_working,
			    remarks = EXCLUDED.remarks,
			    checked_by = EXCLUDED.checked_by,
			    updated_at = now()
			RETURNING ` + joinColumns(checklistColumns)).
		ToSql()
}

// Upsert writes all items in one transaction, keyed by equipment name
func (r *ChecklistRepository) Upsert(ctx context.Context, items []*models.ChecklistItem) ([]*models.ChecklistItem, error) {
	saved := make([]*models.ChecklistItem, 0, len(items))
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, item := range items {
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			sql, args, err := buildChecklistUpsert(r.sb, item)
			if err != nil {
				return fmt.Errorf("failed to build checklist upsert: %w", err)
			}

			c, err := scanChecklistItem(tx.QueryRow(ctx, sql, args...))
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrResourceNotFound
				}
				return fmt.Errorf("error saving checklist item %q: %w", item.EquipmentName, err)
			}
			saved = append(saved, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

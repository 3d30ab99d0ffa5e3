package repositories

import (
	"testing"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserListQuery(t *testing.T) {
	t.Run("no filter orders newest first", func(t *testing.T) {
		sql, args, err := buildUserListQuery(psql, models.UserFilter{}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "FROM users")
		assert.NotContains(t, sql, "WHERE")
		assert.Contains(t, sql, "ORDER BY created_at DESC")
		assert.Empty(t, args)
	})

	t.Run("role and department with surname order", func(t *testing.T) {
		role := models.RoleEventLeader
		dept := uuid.New()
		sql, args, err := buildUserListQuery(psql, models.UserFilter{
			Role:           &role,
			DepartmentID:   &dept,
			OrderBySurname: true,
		}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE role = $1 AND department_id = $2")
		assert.Contains(t, sql, "ORDER BY surname ASC, name ASC")
		// squirrel.Eq resolves driver.Valuer args, so the UUID arrives as its string form
		assert.Equal(t, []interface{}{role, dept.String()}, args)
	})

	t.Run("first timers only", func(t *testing.T) {
		sql, args, err := buildUserListQuery(psql, models.UserFilter{FirstTimers: true}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE is_first_timer = $1")
		assert.Equal(t, []interface{}{true}, args)
	})
}

func TestBuildEventListQuery(t *testing.T) {
	typ := models.EventTypeCellGroup
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sql, args, err := buildEventListQuery(psql, models.EventFilter{Type: &typ, From: &from}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "to_char(event_time, 'HH24:MI')")
	assert.Contains(t, sql, "WHERE type = $1 AND event_date >= $2")
	assert.Contains(t, sql, "ORDER BY event_date DESC, event_time DESC")
	assert.Equal(t, []interface{}{typ, from}, args)
}

func TestBuildChecklistUpsert(t *testing.T) {
	remarks := "Left monitor has crackling sound"
	item := &models.ChecklistItem{
		ID:            uuid.New(),
		TeamID:        uuid.New(),
		EventID:       uuid.New(),
		EquipmentName: "Monitor Speakers",
		Remarks:       &remarks,
	}

	sql, args, err := buildChecklistUpsert(psql, item)
	require.NoError(t, err)
	assert.Contains(t, sql, "INSERT INTO checklists")
	assert.Contains(t, sql, "ON CONFLICT (team_id, event_id, equipment_name) DO UPDATE")
	assert.Contains(t, sql, "RETURNING id, team_id, event_id")
	assert.Len(t, args, 7)
	assert.Equal(t, "Monitor Speakers", args[3])
}

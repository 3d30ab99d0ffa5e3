package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePermissionsAreCopies(t *testing.T) {
	perms := RoleEventLeader.Permissions()
	perms[0] = "changed"

	assert.Equal(t, "Create Events", RoleEventLeader.Permissions()[0])
}

func TestRoleHelpers(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r)
		assert.NotEmpty(t, r.Permissions(), r)
	}
	assert.False(t, Role("pastor").Valid())
	assert.False(t, RoleMember.RequiresPIN())
	assert.True(t, RoleViewOnly.RequiresPIN())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, AttendanceNotMarked, StatusOf(nil))
	assert.Equal(t, AttendancePresent, StatusOf(&Attendance{Present: true}))
	assert.Equal(t, AttendanceAbsent, StatusOf(&Attendance{}))
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, EventTypeCellGroup.Valid())
	assert.False(t, EventType("concert").Valid())
	assert.True(t, CallStatusFollowUpNeeded.Valid())
	assert.False(t, CallStatus("voicemail").Valid())
}

func TestAttendanceMarkedPayloadCarriesNoMarker(t *testing.T) {
	raw, err := json.Marshal(AttendanceMarked{
		AttendanceID: uuid.New(),
		EventID:      uuid.New(),
		UserID:       uuid.New(),
		Present:      true,
		MarkedAt:     time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.NotContains(t, payload, "markedBy")
	assert.Equal(t, true, payload["present"])
}

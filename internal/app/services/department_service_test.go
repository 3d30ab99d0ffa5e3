package services

import (
	"context"
	"testing"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type departmentFixture struct {
	svc         *DepartmentService
	departments *fakeDepartmentStore
	checklists  *fakeChecklistStore
	users       *fakeUserStore
	event       *models.Event
}

func newDepartmentFixture(users ...*models.User) *departmentFixture {
	event := &models.Event{ID: uuid.New(), Title: "Sunday Morning Service", Type: models.EventTypeSundayService}
	f := &departmentFixture{
		departments: newFakeDepartmentStore(),
		checklists:  newFakeChecklistStore(),
		users:       newFakeUserStore(users...),
		event:       event,
	}
	f.svc = NewDepartmentService(f.departments, f.checklists, f.users, newFakeEventStore(event), zerolog.Nop())
	return f
}

func TestDepartmentLifecycle(t *testing.T) {
	f := newDepartmentFixture()
	ctx := context.Background()

	d, err := f.svc.Create(ctx, dto.DepartmentRequest{Name: " Technicians ", Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Technicians", d.Name)
	assert.Nil(t, d.Description)

	_, err = f.svc.Create(ctx, dto.DepartmentRequest{Name: "technicians"})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentAlreadyExists)

	_, err = f.svc.Create(ctx, dto.DepartmentRequest{Name: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	team, err := f.svc.CreateTeam(ctx, d.ID, dto.CreateTeamRequest{Name: "Sound Team"})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Teams, 1)
	assert.Equal(t, "Sound Team", got.Teams[0].Name)

	err = f.svc.Delete(ctx, d.ID)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentHasRelations)

	require.NoError(t, f.svc.DeleteTeam(ctx, team.ID))
	require.NoError(t, f.svc.Delete(ctx, d.ID))

	_, err = f.svc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestCreateTeamChecksLeaderAndDepartment(t *testing.T) {
	leader := newUser("Kagiso", "Molefe")
	f := newDepartmentFixture(leader)
	ctx := context.Background()
	d, err := f.svc.Create(ctx, dto.DepartmentRequest{Name: "Ushers"})
	require.NoError(t, err)

	team, err := f.svc.CreateTeam(ctx, d.ID, dto.CreateTeamRequest{Name: "Main Entrance", LeaderID: &leader.ID})
	require.NoError(t, err)
	assert.Equal(t, leader.ID, *team.LeaderID)

	missing := uuid.New()
	_, err = f.svc.CreateTeam(ctx, d.ID, dto.CreateTeamRequest{Name: "Side Entrance", LeaderID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)

	_, err = f.svc.CreateTeam(ctx, uuid.New(), dto.CreateTeamRequest{Name: "Side Entrance"})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)

	_, err = f.svc.CreateTeam(ctx, d.ID, dto.CreateTeamRequest{Name: "Main Entrance"})
	assert.ErrorIs(t, err, apperrors.ErrTeamAlreadyExists)
}

func TestDepartmentMembers(t *testing.T) {
	a, b, outsider := newUser("Alice", "Mabuza"), newUser("Ben", "Botha"), newUser("Cara", "Cele")
	f := newDepartmentFixture()
	ctx := context.Background()
	d, err := f.svc.Create(ctx, dto.DepartmentRequest{Name: "Worship"})
	require.NoError(t, err)

	a.DepartmentID = &d.ID
	b.DepartmentID = &d.ID
	for _, u := range []*models.User{a, b, outsider} {
		f.users.put(u)
	}

	members, err := f.svc.Members(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Botha", members[0].Surname)
	assert.Equal(t, "Mabuza", members[1].Surname)
}

func TestSummarizeChecklist(t *testing.T) {
	items := []*models.ChecklistItem{
		{EquipmentName: "Mixer", IsWorking: true},
		{EquipmentName: "Projector", IsWorking: false},
		{EquipmentName: "Mic 1", IsWorking: true},
	}
	assert.Equal(t, dto.ChecklistSummary{Working: 2, NeedsRepair: 1}, SummarizeChecklist(items))
	assert.Equal(t, dto.ChecklistSummary{}, SummarizeChecklist(nil))
}

func TestUpdateChecklistUpsertsByEquipmentName(t *testing.T) {
	f := newDepartmentFixture()
	ctx := context.Background()
	d, err := f.svc.Create(ctx, dto.DepartmentRequest{Name: "Technicians"})
	require.NoError(t, err)
	team, err := f.svc.CreateTeam(ctx, d.ID, dto.CreateTeamRequest{Name: "Sound Team"})
	require.NoError(t, err)

	res, err := f.svc.UpdateChecklist(ctx, team.ID, f.event.ID, dto.UpdateChecklistRequest{
		Items: []dto.ChecklistItemRequest{
			{EquipmentName: "Main Mixing Console", IsWorking: true},
			{EquipmentName: "Wireless Mic 1", IsWorking: true},
			{EquipmentName: "Main Mixing Console ", IsWorking: false, Remarks: strPtr("Channel 4 dead")},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Main Mixing Console", res.Items[0].EquipmentName)
	assert.False(t, res.Items[0].IsWorking)
	assert.Equal(t, "Channel 4 dead", *res.Items[0].Remarks)
	assert.Equal(t, dto.ChecklistSummary{Working: 1, NeedsRepair: 1}, res.Summary)

	firstID := res.Items[0].ID
	res, err = f.svc.UpdateChecklist(ctx, team.ID, f.event.ID, dto.UpdateChecklistRequest{
		Items: []dto.ChecklistItemRequest{{EquipmentName: "Main Mixing Console", IsWorking: true, Remarks: strPtr(" ")}},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, firstID, res.Items[0].ID)
	assert.True(t, res.Items[0].IsWorking)
	assert.Nil(t, res.Items[0].Remarks)
	assert.Equal(t, dto.ChecklistSummary{Working: 2}, res.Summary)
}

func TestUpdateChecklistRejectsBadInput(t *testing.T) {
	f := newDepartmentFixture()
	ctx := context.Background()
	d, err := f.svc.Create(ctx, dto.DepartmentRequest{Name: "Technicians"})
	require.NoError(t, err)
	team, err := f.svc.CreateTeam(ctx, d.ID, dto.CreateTeamRequest{Name: "Camera Team"})
	require.NoError(t, err)

	_, err = f.svc.UpdateChecklist(ctx, team.ID, f.event.ID, dto.UpdateChecklistRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.UpdateChecklist(ctx, team.ID, f.event.ID, dto.UpdateChecklistRequest{
		Items: []dto.ChecklistItemRequest{{EquipmentName: "  "}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.UpdateChecklist(ctx, uuid.New(), f.event.ID, dto.UpdateChecklistRequest{
		Items: []dto.ChecklistItemRequest{{EquipmentName: "Camera 1"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)

	_, err = f.svc.UpdateChecklist(ctx, team.ID, uuid.New(), dto.UpdateChecklistRequest{
		Items: []dto.ChecklistItemRequest{{EquipmentName: "Camera 1"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	assert.Equal(t, 0, f.checklists.upserts)
}

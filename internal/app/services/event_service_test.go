package services

import (
	"context"
	"testing"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventFixture struct {
	svc          *EventService
	events       *fakeEventStore
	users        *fakeUserStore
	participants *fakeParticipantStore
	attendance   *fakeAttendanceStore
}

func newEventFixture(users ...*models.User) *eventFixture {
	f := &eventFixture{
		events:     newFakeEventStore(),
		users:      newFakeUserStore(users...),
		attendance: newFakeAttendanceStore(),
	}
	f.participants = &fakeParticipantStore{users: f.users}
	f.svc = NewEventService(f.events, f.participants, f.attendance, zerolog.Nop())
	return f
}

func validEventRequest() dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Title:     " Sunday Morning Service ",
		Type:      models.EventTypeSundayService,
		EventDate: "2024-01-07",
		EventTime: "09:00",
		Location:  strPtr("Main Sanctuary"),
	}
}

func TestCreateEvent(t *testing.T) {
	f := newEventFixture()

	e, err := f.svc.Create(context.Background(), validEventRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, "Sunday Morning Service", e.Title)
	assert.Equal(t, time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), e.EventDate)
	assert.Equal(t, "09:00", e.EventTime)
	assert.Nil(t, e.Description)
}

func TestCreateEventValidation(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*dto.CreateEventRequest)
		want   error
	}{
		{name: "blank title", mutate: func(r *dto.CreateEventRequest) { r.Title = "  " }, want: apperrors.ErrValidationFailed},
		{name: "unknown type", mutate: func(r *dto.CreateEventRequest) { r.Type = "concert" }, want: apperrors.ErrInvalidEventType},
		{name: "bad date", mutate: func(r *dto.CreateEventRequest) { r.EventDate = "07/01/2024" }, want: apperrors.ErrInvalidEventDate},
		{name: "bad time", mutate: func(r *dto.CreateEventRequest) { r.EventTime = "25:00" }, want: apperrors.ErrInvalidEventDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validEventRequest()
			tt.mutate(&req)
			_, err := f.svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
	assert.Empty(t, f.events.events)
}

func TestUpdateEvent(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()
	e, err := f.svc.Create(ctx, validEventRequest())
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, e.ID, dto.UpdateEventRequest{
		Title:     "Cell Group Hatfield",
		Type:      models.EventTypeCellGroup,
		EventDate: "2024-01-10",
		EventTime: "18:30",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeCellGroup, updated.Type)
	assert.Equal(t, "18:30", updated.EventTime)
	assert.Nil(t, updated.Location)

	_, err = f.svc.Update(ctx, uuid.New(), dto.UpdateEventRequest{})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestListEventsByType(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, validEventRequest())
	require.NoError(t, err)
	cell := validEventRequest()
	cell.Type = models.EventTypeCellGroup
	_, err = f.svc.Create(ctx, cell)
	require.NoError(t, err)

	all, err := f.svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	typ := models.EventTypeCellGroup
	cells, err := f.svc.List(ctx, &typ)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, models.EventTypeCellGroup, cells[0].Type)

	bad := models.EventType("concert")
	_, err = f.svc.List(ctx, &bad)
	assert.ErrorIs(t, err, apperrors.ErrInvalidEventType)
}

func TestParticipantsCarryAttendanceStatus(t *testing.T) {
	a, b, c := newUser("Alice", "Mabuza"), newUser("Ben", "Botha"), newUser("Cara", "Cele")
	f := newEventFixture(a, b, c)
	ctx := context.Background()

	e, err := f.svc.Create(ctx, validEventRequest())
	require.NoError(t, err)
	for _, u := range []*models.User{a, b, c} {
		_, err := f.svc.AddParticipant(ctx, e.ID, u.ID)
		require.NoError(t, err)
	}
	// assigning twice keeps a single roster entry
	_, err = f.svc.AddParticipant(ctx, e.ID, a.ID)
	require.NoError(t, err)

	aid, bid := a.ID, b.ID
	require.NoError(t, f.attendance.Create(ctx, &models.Attendance{UserID: &aid, EventID: e.ID, Present: true}))
	require.NoError(t, f.attendance.Create(ctx, &models.Attendance{UserID: &bid, EventID: e.ID, Present: false}))

	list, err := f.svc.ListParticipants(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	status := make(map[uuid.UUID]models.AttendanceStatus)
	for _, p := range list {
		status[p.User.ID] = p.Status
	}
	assert.Equal(t, models.AttendancePresent, status[a.ID])
	assert.Equal(t, models.AttendanceAbsent, status[b.ID])
	assert.Equal(t, models.AttendanceNotMarked, status[c.ID])
	assert.Equal(t, "Botha", list[0].User.Surname)
}

func TestAddParticipantErrors(t *testing.T) {
	f := newEventFixture(newUser("A", "One"))
	ctx := context.Background()
	e, err := f.svc.Create(ctx, validEventRequest())
	require.NoError(t, err)

	_, err = f.svc.AddParticipant(ctx, e.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)

	_, err = f.svc.AddParticipant(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	err = f.svc.RemoveParticipant(ctx, e.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
}

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

type attendanceFixture struct {
	svc      *AttendanceService
	store    *fakeAttendanceStore
	users    *fakeUserStore
	notifier *recordingNotifier
	event    *models.Event
}

func newAttendanceFixture(t *testing.T, users ...*models.User) *attendanceFixture {
	t.Helper()
	event := &models.Event{ID: uuid.New(), Title: "Sunday Morning Service", Type: models.EventTypeSundayService}
	f := &attendanceFixture{
		store:    newFakeAttendanceStore(),
		users:    newFakeUserStore(users...),
		notifier: &recordingNotifier{},
		event:    event,
	}
	f.svc = NewAttendanceService(f.store, f.users, newFakeEventStore(event), f.notifier, 2, zerolog.Nop())
	return f
}

func TestMarkPresentSnapshotsProfileOnInsert(t *testing.T) {
	u := newUser("Sipho", "Dlamini")
	u.IsFirstTimer = true
	u.CellGroup = strPtr("Young Adults")
	f := newAttendanceFixture(t, u)

	a, err := f.svc.MarkPresent(context.Background(), f.event.ID, u.ID)
	require.NoError(t, err)

	assert.True(t, a.Present)
	assert.Nil(t, a.Notes)
	assert.True(t, a.IsFirstTimer)
	assert.Equal(t, "Young Adults", *a.CellGroup)
	assert.Equal(t, 1, f.store.count(u.ID, f.event.ID))
}

func TestMarkPresentIsIdempotent(t *testing.T) {
	u := newUser("Thandi", "Nkosi")
	f := newAttendanceFixture(t, u)
	ctx := context.Background()

	_, err := f.svc.MarkPresent(ctx, f.event.ID, u.ID)
	require.NoError(t, err)
	a, err := f.svc.MarkPresent(ctx, f.event.ID, u.ID)
	require.NoError(t, err)

	assert.True(t, a.Present)
	assert.Nil(t, a.Notes)
	assert.Equal(t, 1, f.store.count(u.ID, f.event.ID))
	assert.Equal(t, 1, f.store.creates)
	assert.Equal(t, 1, f.store.updates)
}

func TestAbsenceReasonDoesNotLeakIntoPresent(t *testing.T) {
	u := newUser("Lerato", "Mokoena")
	f := newAttendanceFixture(t, u)
	ctx := context.Background()

	a, err := f.svc.MarkAbsent(ctx, f.event.ID, u.ID, strPtr("sick"))
	require.NoError(t, err)
	assert.False(t, a.Present)
	require.NotNil(t, a.Notes)
	assert.Equal(t, "sick", *a.Notes)

	a, err = f.svc.MarkPresent(ctx, f.event.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, a.Present)
	assert.Nil(t, a.Notes)
	assert.Nil(t, f.store.get(u.ID, f.event.ID).Notes)
}

func TestMarkAbsentBlankReasonStoredAsNull(t *testing.T) {
	u := newUser("Pieter", "vanWyk")
	f := newAttendanceFixture(t, u)

	a, err := f.svc.MarkAbsent(context.Background(), f.event.ID, u.ID, strPtr("   "))
	require.NoError(t, err)
	assert.Nil(t, a.Notes)
}

func TestOneRowPerPairAfterAnySequence(t *testing.T) {
	u := newUser("Naledi", "Sithole")
	f := newAttendanceFixture(t, u)
	ctx := context.Background()

	steps := []func() error{
		func() error { _, err := f.svc.MarkAbsent(ctx, f.event.ID, u.ID, strPtr("travel")); return err },
		func() error { _, err := f.svc.MarkPresent(ctx, f.event.ID, u.ID); return err },
		func() error { _, err := f.svc.MarkAbsent(ctx, f.event.ID, u.ID, nil); return err },
		func() error { _, err := f.svc.MarkPresent(ctx, f.event.ID, u.ID); return err },
		func() error { _, err := f.svc.MarkPresent(ctx, f.event.ID, u.ID); return err },
	}
	for _, step := range steps {
		require.NoError(t, step())
		assert.Equal(t, 1, f.store.count(u.ID, f.event.ID))
	}
}

func TestMarkPresentRecoversFromInsertRace(t *testing.T) {
	u := newUser("Kagiso", "Molefe")
	f := newAttendanceFixture(t, u)
	f.store.racePair = &pairKey{u.ID, f.event.ID}

	a, err := f.svc.MarkPresent(context.Background(), f.event.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, a.Present)
	assert.Equal(t, 1, f.store.count(u.ID, f.event.ID))
	assert.True(t, f.store.get(u.ID, f.event.ID).Present)
}

func TestMarkAgainstMissingUserOrEvent(t *testing.T) {
	u := newUser("Ayanda", "Zulu")
	f := newAttendanceFixture(t, u)
	ctx := context.Background()

	_, err := f.svc.MarkPresent(ctx, f.event.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)

	_, err = f.svc.MarkPresent(ctx, uuid.New(), u.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestReadFailureLeavesStateUnchanged(t *testing.T) {
	u := newUser("Bongani", "Ndlovu")
	f := newAttendanceFixture(t, u)
	f.store.findErr = errStoreDown

	_, err := f.svc.MarkPresent(context.Background(), f.event.ID, u.ID)
	assert.ErrorIs(t, err, errStoreDown)
	f.store.findErr = nil
	assert.Nil(t, f.store.get(u.ID, f.event.ID))
	assert.Empty(t, f.notifier.evts)
}

func TestToggle(t *testing.T) {
	u := newUser("Zanele", "Khumalo")
	f := newAttendanceFixture(t, u)
	ctx := context.Background()

	t.Run("not marked becomes present", func(t *testing.T) {
		res, err := f.svc.Toggle(ctx, f.event.ID, u.ID)
		require.NoError(t, err)
		assert.False(t, res.RequiresAbsenceReason)
		assert.True(t, res.Attendance.Present)
	})

	t.Run("present asks for a reason and changes nothing", func(t *testing.T) {
		updates := f.store.updates
		res, err := f.svc.Toggle(ctx, f.event.ID, u.ID)
		require.NoError(t, err)
		assert.True(t, res.RequiresAbsenceReason)
		assert.Equal(t, updates, f.store.updates)
		assert.True(t, f.store.get(u.ID, f.event.ID).Present)
	})

	t.Run("absent becomes present", func(t *testing.T) {
		_, err := f.svc.MarkAbsent(ctx, f.event.ID, u.ID, strPtr("late"))
		require.NoError(t, err)
		res, err := f.svc.Toggle(ctx, f.event.ID, u.ID)
		require.NoError(t, err)
		assert.False(t, res.RequiresAbsenceReason)
		assert.True(t, res.Attendance.Present)
		assert.Nil(t, res.Attendance.Notes)
	})
}

func TestSnapshotWithNoAttendance(t *testing.T) {
	f := newAttendanceFixture(t, newUser("A", "One"), newUser("B", "Two"), newUser("C", "Three"))

	snap, err := f.svc.Snapshot(context.Background(), f.event.ID, "")
	require.NoError(t, err)
	assert.Equal(t, dto.AttendanceCounts{Present: 0, Absent: 0, NotMarked: 3, Total: 3}, snap.Counts)
	assert.Len(t, snap.Entries, 3)
	for _, e := range snap.Entries {
		assert.Equal(t, models.AttendanceNotMarked, e.Status)
	}
}

func TestSnapshotAfterPresentAndAbsent(t *testing.T) {
	a, b, c := newUser("Alice", "Mabuza"), newUser("Ben", "Botha"), newUser("Cara", "Cele")
	f := newAttendanceFixture(t, a, b, c)
	ctx := context.Background()

	_, err := f.svc.MarkPresent(ctx, f.event.ID, a.ID)
	require.NoError(t, err)
	_, err = f.svc.MarkAbsent(ctx, f.event.ID, b.ID, strPtr("travel"))
	require.NoError(t, err)

	snap, err := f.svc.Snapshot(ctx, f.event.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Counts.Present)
	assert.Equal(t, 1, snap.Counts.Absent)
	assert.Equal(t, 1, snap.Counts.NotMarked)
	assert.Equal(t, snap.Counts.Total, snap.Counts.Present+snap.Counts.Absent+snap.Counts.NotMarked)
	assert.Equal(t, "travel", *f.store.get(b.ID, f.event.ID).Notes)

	// roster is ordered by surname
	assert.Equal(t, []string{"Botha", "Cele", "Mabuza"}, []string{
		snap.Entries[0].User.Surname, snap.Entries[1].User.Surname, snap.Entries[2].User.Surname,
	})
}

func TestSnapshotSearchNarrowsEntriesNotCounts(t *testing.T) {
	a, b := newUser("Alice", "Mabuza"), newUser("Ben", "Botha")
	b.CellGroup = strPtr("Hatfield Cell")
	a.Phone = strPtr("+27 82 555 0101")
	f := newAttendanceFixture(t, a, b)

	snap, err := f.svc.Snapshot(context.Background(), f.event.ID, "  hatfield ")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Counts.Total)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, b.ID, snap.Entries[0].User.ID)

	snap, err = f.svc.Snapshot(context.Background(), f.event.ID, "555")
	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, a.ID, snap.Entries[0].User.ID)
}

func TestSnapshotReadFailure(t *testing.T) {
	f := newAttendanceFixture(t, newUser("A", "One"))
	f.store.listErr = errStoreDown

	_, err := f.svc.Snapshot(context.Background(), f.event.ID, "")
	assert.ErrorIs(t, err, errStoreDown)
}

func TestMarkAllPresentIsBestEffort(t *testing.T) {
	users := []*models.User{
		newUser("U1", "A"), newUser("U2", "B"), newUser("U3", "C"), newUser("U4", "D"), newUser("U5", "E"),
	}
	f := newAttendanceFixture(t, users...)
	ctx := context.Background()

	failing := users[2]
	_, err := f.svc.MarkAbsent(ctx, f.event.ID, failing.ID, strPtr("sick"))
	require.NoError(t, err)
	f.store.mu.Lock()
	f.store.failFor[failing.ID] = true
	f.store.mu.Unlock()

	res, err := f.svc.MarkAllPresent(ctx, f.event.ID, nil)
	require.NoError(t, err)
	assert.Len(t, res.Succeeded, 4)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, failing.ID, res.Failed[0].UserID)

	for _, u := range users {
		row := f.store.get(u.ID, f.event.ID)
		require.NotNil(t, row)
		if u.ID == failing.ID {
			assert.False(t, row.Present)
			assert.Equal(t, "sick", *row.Notes)
			continue
		}
		assert.True(t, row.Present)
	}
}

func TestMarkAllPresentWithExplicitIDs(t *testing.T) {
	a, b := newUser("A", "One"), newUser("B", "Two")
	f := newAttendanceFixture(t, a, b)
	missing := uuid.New()

	res, err := f.svc.MarkAllPresent(context.Background(), f.event.ID, []uuid.UUID{a.ID, a.ID, missing})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, missing, res.Failed[0].UserID)
	assert.Nil(t, f.store.get(b.ID, f.event.ID))
}

func TestMarkAllPresentUnknownEvent(t *testing.T) {
	f := newAttendanceFixture(t, newUser("A", "One"))
	_, err := f.svc.MarkAllPresent(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestRegisterWalkIn(t *testing.T) {
	f := newAttendanceFixture(t)

	res, err := f.svc.RegisterWalkIn(context.Background(), f.event.ID, dto.WalkInRequest{
		Name:         " Sipho ",
		Surname:      "Dlamini",
		Phone:        strPtr("+27731234567"),
		IsFirstTimer: true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleMember, res.Member.Role)
	assert.Equal(t, "Sipho", res.Member.Name)
	assert.True(t, res.Member.IsFirstTimer)
	assert.Contains(t, res.Member.Email, "@guest.invalid")
	assert.True(t, res.Attendance.Present)
	assert.True(t, res.Attendance.IsFirstTimer)
	assert.Equal(t, 1, f.store.count(res.Member.ID, f.event.ID))
}

func TestRegisterWalkInValidation(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := f.svc.RegisterWalkIn(ctx, f.event.ID, dto.WalkInRequest{Name: "", Surname: "X"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.RegisterWalkIn(ctx, f.event.ID, dto.WalkInRequest{Name: "A", Surname: "B", Phone: strPtr("call me")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.RegisterWalkIn(ctx, uuid.New(), dto.WalkInRequest{Name: "A", Surname: "B"})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	assert.Empty(t, f.users.users)
}

func TestNotifierReceivesMarksAndFailuresAreIgnored(t *testing.T) {
	u := newUser("Musa", "Ngcobo")
	f := newAttendanceFixture(t, u)
	f.notifier.err = errStoreDown

	_, err := f.svc.MarkAbsent(context.Background(), f.event.ID, u.ID, strPtr("work"))
	require.NoError(t, err)

	require.Len(t, f.notifier.evts, 1)
	evt := f.notifier.evts[0]
	assert.Equal(t, u.ID, evt.UserID)
	assert.Equal(t, f.event.ID, evt.EventID)
	assert.False(t, evt.Present)
	assert.Equal(t, "work", *evt.Notes)
}

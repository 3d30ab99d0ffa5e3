package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

type pairKey struct{ user, event uuid.UUID }

// fakeAttendanceStore mimics the unique (user, event) constraint of the real table
type fakeAttendanceStore struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]*models.Attendance
	byPair   map[pairKey]uuid.UUID
	failFor  map[uuid.UUID]bool
	findErr  error
	listErr  error
	events   map[uuid.UUID]time.Time
	creates  int
	updates  int
	racePair *pairKey
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		rows:    make(map[uuid.UUID]*models.Attendance),
		byPair:  make(map[pairKey]uuid.UUID),
		failFor: make(map[uuid.UUID]bool),
		events:  make(map[uuid.UUID]time.Time),
	}
}

func copyAttendance(a *models.Attendance) *models.Attendance {
	c := *a
	return &c
}

func (f *fakeAttendanceStore) FindByUserAndEvent(_ context.Context, userID, eventID uuid.UUID) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	// simulate a concurrent insert landing between lookup and insert
	if f.racePair != nil && *f.racePair == (pairKey{userID, eventID}) {
		f.racePair = nil
		f.insertLocked(&models.Attendance{UserID: &userID, EventID: eventID, Present: false})
		return nil, nil
	}
	id, ok := f.byPair[pairKey{userID, eventID}]
	if !ok {
		return nil, nil
	}
	return copyAttendance(f.rows[id]), nil
}

func (f *fakeAttendanceStore) insertLocked(a *models.Attendance) {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.rows[a.ID] = copyAttendance(a)
	f.byPair[pairKey{*a.UserID, a.EventID}] = a.ID
}

func (f *fakeAttendanceStore) Create(_ context.Context, a *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[*a.UserID] {
		return errStoreDown
	}
	if _, ok := f.byPair[pairKey{*a.UserID, a.EventID}]; ok {
		return apperrors.ErrAttendanceExists
	}
	f.creates++
	f.insertLocked(a)
	return nil
}

func (f *fakeAttendanceStore) UpdateStatus(_ context.Context, id uuid.UUID, present bool, notes *string) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrAttendanceNotFound
	}
	if f.failFor[*row.UserID] {
		return nil, errStoreDown
	}
	f.updates++
	row.Present = present
	row.Notes = notes
	row.UpdatedAt = time.Now()
	return copyAttendance(row), nil
}

func (f *fakeAttendanceStore) ListByEvent(_ context.Context, eventID uuid.UUID) ([]*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Attendance
	for _, a := range f.rows {
		if a.EventID == eventID {
			out = append(out, copyAttendance(a))
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListWithEventDates(context.Context) ([]*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Attendance
	for _, a := range f.rows {
		c := copyAttendance(a)
		if d, ok := f.events[a.EventID]; ok {
			c.EventDate = &d
		}
		out = append(out, c)
	}
	return out, nil
}

// count returns how many rows exist for the pair
func (f *fakeAttendanceStore) count(userID, eventID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.rows {
		if *a.UserID == userID && a.EventID == eventID {
			n++
		}
	}
	return n
}

func (f *fakeAttendanceStore) get(userID, eventID uuid.UUID) *models.Attendance {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byPair[pairKey{userID, eventID}]
	if !ok {
		return nil
	}
	return copyAttendance(f.rows[id])
}

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*models.User
	order   []uuid.UUID
	listErr error
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		f.put(u)
	}
	return f
}

func (f *fakeUserStore) put(u *models.User) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if _, ok := f.users[u.ID]; !ok {
		f.order = append(f.order, u.ID)
	}
	c := *u
	f.users[u.ID] = &c
}

func (f *fakeUserStore) List(_ context.Context, filter models.UserFilter) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.User{}
	for i := len(f.order) - 1; i >= 0; i-- {
		u := f.users[f.order[i]]
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.DepartmentID != nil && (u.DepartmentID == nil || *u.DepartmentID != *filter.DepartmentID) {
			continue
		}
		if filter.FirstTimers && !u.IsFirstTimer {
			continue
		}
		c := *u
		out = append(out, &c)
	}
	if filter.OrderBySurname {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Surname < out[j].Surname })
	}
	return out, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrMemberNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.put(u)
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return apperrors.ErrMemberNotFound
	}
	f.put(u)
	return nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id uuid.UUID, role models.Role, pin *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrMemberNotFound
	}
	u.Role = role
	u.PIN = pin
	return nil
}

func (f *fakeUserStore) UpdatePIN(_ context.Context, id uuid.UUID, pin *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrMemberNotFound
	}
	u.PIN = pin
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrMemberNotFound
	}
	delete(f.users, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeUserStore) CountByRole(context.Context) (map[models.Role]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[models.Role]int)
	for _, u := range f.users {
		counts[u.Role]++
	}
	return counts, nil
}

type fakeEventStore struct {
	mu      sync.Mutex
	events  map[uuid.UUID]*models.Event
	listErr error
}

func newFakeEventStore(events ...*models.Event) *fakeEventStore {
	f := &fakeEventStore{events: make(map[uuid.UUID]*models.Event)}
	for _, e := range events {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeEventStore) List(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Event{}
	for _, e := range f.events {
		if filter.Type != nil && e.Type != *filter.Type {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.After(out[j].EventDate) })
	return out, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	c := *e
	return &c, nil
}

func (f *fakeEventStore) Create(_ context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	c := *e
	f.events[e.ID] = &c
	return nil
}

func (f *fakeEventStore) Update(_ context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[e.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	c := *e
	f.events[e.ID] = &c
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	evts []models.AttendanceMarked
	err  error
}

func (n *recordingNotifier) AttendanceMarked(_ context.Context, evt models.AttendanceMarked) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.evts = append(n.evts, evt)
	return n.err
}

func strPtr(s string) *string { return &s }

func newUser(name, surname string) *models.User {
	return &models.User{
		ID:      uuid.New(),
		Email:   name + "." + surname + "@cfcpretoriaeast.org",
		Name:    name,
		Surname: surname,
		Role:    models.RoleMember,
	}
}

type fakeParticipantStore struct {
	mu      sync.Mutex
	users   *fakeUserStore
	entries []*models.EventParticipant
}

func (f *fakeParticipantStore) ListByEvent(_ context.Context, eventID uuid.UUID) ([]*models.EventParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.EventParticipant{}
	for _, p := range f.entries {
		if p.EventID == eventID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].User.Surname < out[j].User.Surname })
	return out, nil
}

func (f *fakeParticipantStore) Add(ctx context.Context, eventID, userID uuid.UUID) (*models.EventParticipant, error) {
	u, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrResourceNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.entries {
		if p.EventID == eventID && p.UserID == userID {
			c := *p
			return &c, nil
		}
	}
	p := &models.EventParticipant{ID: uuid.New(), EventID: eventID, UserID: userID, CreatedAt: time.Now(), User: u}
	f.entries = append(f.entries, p)
	c := *p
	return &c, nil
}

func (f *fakeParticipantStore) Remove(_ context.Context, eventID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.entries {
		if p.EventID == eventID && p.UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrParticipantNotFound
}

type fakeDepartmentStore struct {
	mu          sync.Mutex
	departments map[uuid.UUID]*models.Department
	teams       map[uuid.UUID]*models.Team
}

func newFakeDepartmentStore() *fakeDepartmentStore {
	return &fakeDepartmentStore{
		departments: make(map[uuid.UUID]*models.Department),
		teams:       make(map[uuid.UUID]*models.Team),
	}
}

func (f *fakeDepartmentStore) GetAll(context.Context) ([]*models.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Department{}
	for _, d := range f.departments {
		c := *d
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDepartmentStore) GetByID(_ context.Context, id uuid.UUID) (*models.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	c := *d
	return &c, nil
}

func (f *fakeDepartmentStore) Create(_ context.Context, d *models.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.departments {
		if strings.EqualFold(existing.Name, d.Name) {
			return apperrors.ErrDepartmentAlreadyExists
		}
	}
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	c := *d
	f.departments[d.ID] = &c
	return nil
}

func (f *fakeDepartmentStore) Update(_ context.Context, d *models.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.departments[d.ID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	c := *d
	f.departments[d.ID] = &c
	return nil
}

func (f *fakeDepartmentStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.departments[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	for _, t := range f.teams {
		if t.DepartmentID == id {
			return apperrors.ErrDepartmentHasRelations
		}
	}
	delete(f.departments, id)
	return nil
}

func (f *fakeDepartmentStore) ListTeams(_ context.Context, departmentID uuid.UUID) ([]*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Team{}
	for _, t := range f.teams {
		if t.DepartmentID == departmentID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDepartmentStore) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teams[id]
	if !ok {
		return nil, apperrors.ErrTeamNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeDepartmentStore) CreateTeam(_ context.Context, t *models.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.teams {
		if existing.DepartmentID == t.DepartmentID && existing.Name == t.Name {
			return apperrors.ErrTeamAlreadyExists
		}
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	c := *t
	f.teams[t.ID] = &c
	return nil
}

func (f *fakeDepartmentStore) DeleteTeam(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.teams[id]; !ok {
		return apperrors.ErrTeamNotFound
	}
	delete(f.teams, id)
	return nil
}

type checklistKey struct {
	team, event uuid.UUID
	equipment   string
}

type fakeChecklistStore struct {
	mu      sync.Mutex
	items   map[checklistKey]*models.ChecklistItem
	order   []checklistKey
	upserts int
}

func newFakeChecklistStore() *fakeChecklistStore {
	return &fakeChecklistStore{items: make(map[checklistKey]*models.ChecklistItem)}
}

func (f *fakeChecklistStore) List(_ context.Context, teamID, eventID uuid.UUID) ([]*models.ChecklistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.ChecklistItem{}
	for _, k := range f.order {
		if k.team == teamID && k.event == eventID {
			c := *f.items[k]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeChecklistStore) Upsert(_ context.Context, items []*models.ChecklistItem) ([]*models.ChecklistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	out := make([]*models.ChecklistItem, 0, len(items))
	for _, it := range items {
		k := checklistKey{it.TeamID, it.EventID, it.EquipmentName}
		if existing, ok := f.items[k]; ok {
			it.ID = existing.ID
			it.CreatedAt = existing.CreatedAt
		} else {
			it.ID = uuid.New()
			it.CreatedAt = time.Now()
			f.order = append(f.order, k)
		}
		it.UpdatedAt = time.Now()
		c := *it
		f.items[k] = &c
		out = append(out, it)
	}
	return out, nil
}

type fakeCallStore struct {
	mu    sync.Mutex
	calls []*models.FirstTimerCall
}

func (f *fakeCallStore) Create(_ context.Context, c *models.FirstTimerCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	cp := *c
	f.calls = append(f.calls, &cp)
	return nil
}

func (f *fakeCallStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.FirstTimerCall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.FirstTimerCall{}
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].UserID == userID {
			c := *f.calls[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeCallStore) LatestPerUser(context.Context) ([]*models.FirstTimerCall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	latest := make(map[uuid.UUID]*models.FirstTimerCall)
	for _, c := range f.calls {
		latest[c.UserID] = c
	}
	out := make([]*models.FirstTimerCall, 0, len(latest))
	for _, c := range latest {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

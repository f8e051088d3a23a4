package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookwell/appointment-backend/internal/auth"
	"github.com/bookwell/appointment-backend/internal/timerange"
)

type memRepository struct {
	mu      sync.Mutex
	windows map[uuid.UUID]*Availability
}

func newMemRepository() *memRepository {
	return &memRepository{windows: make(map[uuid.UUID]*Availability)}
}

func (m *memRepository) GetByID(_ context.Context, id uuid.UUID) (*Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.windows[id]
	if !ok {
		return nil, ErrAvailabilityNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memRepository) Insert(_ context.Context, a *Availability) (*Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	m.windows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepository) Update(_ context.Context, a *Availability) (*Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[a.ID]; !ok {
		return nil, ErrAvailabilityNotFound
	}
	cp := *a
	m.windows[a.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepository) Disable(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.windows[id]
	if !ok {
		return ErrAvailabilityNotFound
	}
	a.IsAvailable = false
	return nil
}

func (m *memRepository) List(_ context.Context, filter ListFilter) ([]Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Availability
	for _, a := range m.windows {
		if filter.ProviderID != uuid.Nil && a.ProviderID != filter.ProviderID {
			continue
		}
		if filter.ActiveOnly && !a.IsAvailable {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (m *memRepository) HasOpenWindow(_ context.Context, providerID uuid.UUID, r timerange.TimeRange) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.windows {
		if a.ProviderID == providerID && a.IsAvailable && timerange.Contains(a.Window, r) {
			return true, nil
		}
	}
	return false, nil
}

func hours(t *testing.T, startHour, endHour int) timerange.TimeRange {
	t.Helper()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	r, err := timerange.New(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return r
}

func TestCreateForcesProviderOwnership(t *testing.T) {
	svc := NewService(newMemRepository(), zap.NewNop())
	ctx := context.Background()

	provider := auth.Principal{ID: uuid.New(), Role: auth.RoleProvider}
	created, err := svc.Create(ctx, provider, uuid.New(), hours(t, 9, 17))
	require.NoError(t, err)
	assert.Equal(t, provider.ID, created.ProviderID)
	assert.True(t, created.IsAvailable)

	client := auth.Principal{ID: uuid.New(), Role: auth.RoleClient}
	_, err = svc.Create(ctx, client, client.ID, hours(t, 9, 17))
	assert.ErrorIs(t, err, auth.ErrForbidden)

	admin := auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin}
	someProvider := uuid.New()
	forOther, err := svc.Create(ctx, admin, someProvider, hours(t, 9, 17))
	require.NoError(t, err)
	assert.Equal(t, someProvider, forOther.ProviderID)
}

func TestGetVisibility(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	owner := auth.Principal{ID: uuid.New(), Role: auth.RoleProvider}
	created, err := svc.Create(ctx, owner, owner.ID, hours(t, 9, 17))
	require.NoError(t, err)

	otherProvider := auth.Principal{ID: uuid.New(), Role: auth.RoleProvider}
	_, err = svc.Get(ctx, otherProvider, created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	client := auth.Principal{ID: uuid.New(), Role: auth.RoleClient}
	_, err = svc.Get(ctx, client, created.ID)
	assert.NoError(t, err)

	// clients lose visibility once the window is disabled
	require.NoError(t, svc.Disable(ctx, owner, created.ID))
	_, err = svc.Get(ctx, client, created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	// the owner still sees it
	_, err = svc.Get(ctx, owner, created.ID)
	assert.NoError(t, err)
}

func TestListPerRole(t *testing.T) {
	svc := NewService(newMemRepository(), zap.NewNop())
	ctx := context.Background()

	p1 := auth.Principal{ID: uuid.New(), Role: auth.RoleProvider}
	p2 := auth.Principal{ID: uuid.New(), Role: auth.RoleProvider}

	w1, err := svc.Create(ctx, p1, p1.ID, hours(t, 9, 12))
	require.NoError(t, err)
	_, err = svc.Create(ctx, p2, p2.ID, hours(t, 13, 17))
	require.NoError(t, err)

	require.NoError(t, svc.Disable(ctx, p1, w1.ID))

	admin := auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin}
	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(ctx, p1)
	require.NoError(t, err)
	assert.Len(t, own, 1) // disabled but still theirs

	client := auth.Principal{ID: uuid.New(), Role: auth.RoleClient}
	open, err := svc.List(ctx, client)
	require.NoError(t, err)
	assert.Len(t, open, 1)
	assert.Equal(t, p2.ID, open[0].ProviderID)
}

func TestDisabledWindowFailsContainment(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	owner := auth.Principal{ID: uuid.New(), Role: auth.RoleProvider}
	created, err := svc.Create(ctx, owner, owner.ID, hours(t, 9, 17))
	require.NoError(t, err)

	ok, err := svc.HasOpenWindow(ctx, owner.ID, hours(t, 10, 11))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Disable(ctx, owner, created.ID))

	ok, err = svc.HasOpenWindow(ctx, owner.ID, hours(t, 10, 11))
	require.NoError(t, err)
	assert.False(t, ok)
}

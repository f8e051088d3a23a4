package catalog

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookwell/appointment-backend/internal/auth"
)

type memRepository struct {
	mu        sync.Mutex
	services  map[uuid.UUID]*Service
	offerings map[uuid.UUID]*Offering
}

func newMemRepository() *memRepository {
	return &memRepository{
		services:  make(map[uuid.UUID]*Service),
		offerings: make(map[uuid.UUID]*Offering),
	}
}

func (m *memRepository) GetServiceByID(_ context.Context, id uuid.UUID) (*Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memRepository) ServiceNameInUse(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.services {
		if strings.EqualFold(s.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepository) InsertService(_ context.Context, s *Service) (*Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	m.services[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepository) UpdateService(_ context.Context, s *Service) (*Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[s.ID]; !ok {
		return nil, ErrServiceNotFound
	}
	cp := *s
	m.services[s.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepository) DeleteService(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *memRepository) ListServices(_ context.Context, activeOnly bool) ([]Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Service
	for _, s := range m.services {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *memRepository) GetOfferingByID(_ context.Context, id uuid.UUID) (*Offering, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offerings[id]
	if !ok {
		return nil, ErrOfferingNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memRepository) ActiveOfferingExists(_ context.Context, providerID, serviceID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.offerings {
		if o.ProviderID == providerID && o.ServiceID == serviceID && o.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepository) InsertOffering(_ context.Context, o *Offering) (*Offering, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	m.offerings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepository) UpdateOffering(_ context.Context, o *Offering) (*Offering, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.offerings[o.ID]; !ok {
		return nil, ErrOfferingNotFound
	}
	cp := *o
	m.offerings[o.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepository) DeactivateOffering(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offerings[id]
	if !ok {
		return ErrOfferingNotFound
	}
	o.IsActive = false
	return nil
}

func (m *memRepository) ListOfferings(_ context.Context, activeOnly bool) ([]Offering, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Offering
	for _, o := range m.offerings {
		if activeOnly && !o.IsActive {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

var (
	adminActor    = auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin}
	clientActor   = auth.Principal{ID: uuid.New(), Role: auth.RoleClient}
	providerActor = auth.Principal{ID: uuid.New(), Role: auth.RoleProvider}
)

func TestServiceCRUDIsAdminOnly(t *testing.T) {
	c := New(newMemRepository(), zap.NewNop())
	ctx := context.Background()

	_, err := c.CreateService(ctx, providerActor, ServiceInput{Name: "Massage", IsActive: true})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	created, err := c.CreateService(ctx, adminActor, ServiceInput{Name: "Massage", IsActive: true})
	require.NoError(t, err)

	_, err = c.UpdateService(ctx, clientActor, created.ID, ServiceInput{Name: "Massage", IsActive: false})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	err = c.DeleteService(ctx, adminActor, created.ID)
	assert.NoError(t, err)
}

func TestDuplicateServiceNameIsCaseInsensitive(t *testing.T) {
	c := New(newMemRepository(), zap.NewNop())
	ctx := context.Background()

	_, err := c.CreateService(ctx, adminActor, ServiceInput{Name: "Dental Cleaning", IsActive: true})
	require.NoError(t, err)

	_, err = c.CreateService(ctx, adminActor, ServiceInput{Name: "dental cleaning", IsActive: true})
	assert.ErrorIs(t, err, ErrServiceExists)
}

func TestListServicesHidesInactiveFromNonAdmins(t *testing.T) {
	c := New(newMemRepository(), zap.NewNop())
	ctx := context.Background()

	_, err := c.CreateService(ctx, adminActor, ServiceInput{Name: "Visible", IsActive: true})
	require.NoError(t, err)
	_, err = c.CreateService(ctx, adminActor, ServiceInput{Name: "Hidden", IsActive: false})
	require.NoError(t, err)

	all, err := c.ListServices(ctx, adminActor)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := c.ListServices(ctx, clientActor)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, "Visible", visible[0].Name)
}

func TestCreateOffering(t *testing.T) {
	c := New(newMemRepository(), zap.NewNop())
	ctx := context.Background()
	serviceID := uuid.New()

	// providers always create for themselves, whatever the request says
	created, err := c.CreateOffering(ctx, providerActor, OfferingInput{
		ProviderID: uuid.New(), ServiceID: serviceID, Price: 50, DurationMinutes: 30, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, providerActor.ID, created.ProviderID)

	// clients cannot offer anything
	_, err = c.CreateOffering(ctx, clientActor, OfferingInput{
		ProviderID: clientActor.ID, ServiceID: serviceID, Price: 50, DurationMinutes: 30, IsActive: true,
	})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	// duplicate active pair conflicts
	_, err = c.CreateOffering(ctx, providerActor, OfferingInput{
		ServiceID: serviceID, Price: 60, DurationMinutes: 45, IsActive: true,
	})
	assert.ErrorIs(t, err, ErrOfferingExists)

	// non-positive price rejected
	_, err = c.CreateOffering(ctx, providerActor, OfferingInput{
		ServiceID: uuid.New(), Price: 0, DurationMinutes: 30, IsActive: true,
	})
	assert.ErrorIs(t, err, ErrInvalidOffering)
}

func TestReofferAfterDeactivation(t *testing.T) {
	c := New(newMemRepository(), zap.NewNop())
	ctx := context.Background()
	serviceID := uuid.New()

	created, err := c.CreateOffering(ctx, providerActor, OfferingInput{
		ServiceID: serviceID, Price: 50, DurationMinutes: 30, IsActive: true,
	})
	require.NoError(t, err)

	offered, err := c.IsOffered(ctx, providerActor.ID, serviceID)
	require.NoError(t, err)
	assert.True(t, offered)

	require.NoError(t, c.DeleteOffering(ctx, providerActor, created.ID))

	offered, err = c.IsOffered(ctx, providerActor.ID, serviceID)
	require.NoError(t, err)
	assert.False(t, offered)

	// the pair can be offered again once the old row is inactive
	_, err = c.CreateOffering(ctx, providerActor, OfferingInput{
		ServiceID: serviceID, Price: 70, DurationMinutes: 30, IsActive: true,
	})
	assert.NoError(t, err)
}

func TestOfferingOwnership(t *testing.T) {
	c := New(newMemRepository(), zap.NewNop())
	ctx := context.Background()

	created, err := c.CreateOffering(ctx, providerActor, OfferingInput{
		ServiceID: uuid.New(), Price: 50, DurationMinutes: 30, IsActive: true,
	})
	require.NoError(t, err)

	other := auth.Principal{ID: uuid.New(), Role: auth.RoleProvider}
	_, err = c.UpdateOffering(ctx, other, created.ID, OfferingInput{
		ServiceID: created.ServiceID, Price: 10, DurationMinutes: 30, IsActive: true,
	})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	err = c.DeleteOffering(ctx, other, created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	// admin may edit anyone's offering
	_, err = c.UpdateOffering(ctx, adminActor, created.ID, OfferingInput{
		ServiceID: created.ServiceID, Price: 10, DurationMinutes: 30, IsActive: true,
	})
	assert.NoError(t, err)
}

package user

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
	mu    sync.Mutex
	users map[uuid.UUID]*User
}

func newMemRepository() *memRepository {
	return &memRepository{users: make(map[uuid.UUID]*User)}
}

func (m *memRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memRepository) EmailInUse(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepository) Insert(_ context.Context, u *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	cp.ID = uuid.New()
	cp.IsActive = true
	cp.CreatedAt = time.Now()
	m.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepository) Update(_ context.Context, u *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[u.ID]
	if !ok {
		return nil, ErrUserNotFound
	}
	existing.Email = u.Email
	existing.FullName = u.FullName
	existing.PasswordHash = u.PasswordHash
	cp := *existing
	return &cp, nil
}

func (m *memRepository) Deactivate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = false
	return nil
}

func (m *memRepository) List(_ context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func newTestService() (*Service, *memRepository) {
	repo := newMemRepository()
	hasher := auth.NewPasswordHasher(4)
	tokens := auth.NewTokenIssuer("test-secret", 5*time.Minute, time.Hour)
	return NewService(repo, hasher, tokens, zap.NewNop()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterInput{
		Email:    "Jane.Doe@Example.com",
		Password: "hunter22",
		FullName: "Jane Doe",
		Role:     auth.RoleClient,
	})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", created.Email)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsSuperuser)

	pair, err := svc.Login(ctx, "jane.doe@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, err = svc.Login(ctx, "jane.doe@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "pw", Role: auth.RoleClient})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "A@B.com", Password: "pw", Role: auth.RoleProvider})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAdminGetsSuperuser(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Register(context.Background(), RegisterInput{
		Email: "root@example.com", Password: "pw", Role: auth.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, created.IsSuperuser)
}

func TestRefreshFlow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterInput{Email: "r@x.com", Password: "pw", Role: auth.RoleClient})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "r@x.com", "pw")
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	// an access token is not accepted as a refresh token
	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestAuthenticateRejectsDeactivated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterInput{Email: "gone@x.com", Password: "pw", Role: auth.RoleClient})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "gone@x.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.Principal(), created.ID))

	_, err = svc.Authenticate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestUpdateChecksOwnershipAndEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Role: auth.RoleClient})
	require.NoError(t, err)
	b, err := svc.Register(ctx, RegisterInput{Email: "b@x.com", Password: "pw", Role: auth.RoleClient})
	require.NoError(t, err)

	// not your account
	_, err = svc.Update(ctx, a.Principal(), b.ID, UpdateInput{Email: "new@x.com", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	// email collision with another user
	_, err = svc.Update(ctx, a.Principal(), a.ID, UpdateInput{Email: "b@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// keeping your own email is fine
	updated, err := svc.Update(ctx, a.Principal(), a.ID, UpdateInput{Email: "A@X.com", Password: "pw2", FullName: "Aye"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", updated.Email)
}

func TestListIsAdminOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	client, err := svc.Register(ctx, RegisterInput{Email: "c@x.com", Password: "pw", Role: auth.RoleClient})
	require.NoError(t, err)
	admin, err := svc.Register(ctx, RegisterInput{Email: "admin@x.com", Password: "pw", Role: auth.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.List(ctx, client.Principal())
	assert.ErrorIs(t, err, auth.ErrForbidden)

	users, err := svc.List(ctx, admin.Principal())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	for _, u := range users {
		assert.Equal(t, strings.ToLower(u.Email), u.Email)
	}
}

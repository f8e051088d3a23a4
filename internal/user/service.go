package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookwell/appointment-backend/internal/auth"
)

var ErrInvalidCredentials = errors.New("email or password invalid")

type Service struct {
	repo   Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenIssuer
	logger *zap.Logger
}

func NewService(repo Repository, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     auth.Role
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates an account. Emails are stored lowercase and must be
// unique. Role is fixed at registration; there is no role-change path.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.repo.EmailInUse(ctx, email, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.ToLower(in.FullName),
		Role:         in.Role,
		IsSuperuser:  in.Role == auth.RoleAdmin,
	}

	created, err := s.repo.Insert(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", created.ID.String()),
		zap.String("role", string(created.Role)),
	)

	return created, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	// The account must still exist.
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", auth.ErrTokenInvalid
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	return s.tokens.GenerateAccessToken(userID)
}

// Authenticate resolves a raw access token into the user it belongs to.
// Used by the API middleware on every request.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*User, error) {
	userID, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, auth.ErrTokenInvalid
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.IsActive {
		return nil, auth.ErrTokenInvalid
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, actor auth.Principal, id uuid.UUID) (*User, error) {
	if !auth.Allows(actor, auth.ActionUserRead, id) {
		return nil, auth.ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

type UpdateInput struct {
	Email    string
	Password string
	FullName string
}

func (s *Service) Update(ctx context.Context, actor auth.Principal, id uuid.UUID, in UpdateInput) (*User, error) {
	if !auth.Allows(actor, auth.ActionUserUpdate, id) {
		return nil, auth.ErrForbidden
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	taken, err := s.repo.EmailInUse(ctx, email, u.ID)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u.Email = email
	u.FullName = in.FullName
	u.PasswordHash = hash

	return s.repo.Update(ctx, u)
}

// Deactivate soft-deletes an account. Existing appointments are untouched.
func (s *Service) Deactivate(ctx context.Context, actor auth.Principal, id uuid.UUID) error {
	if !auth.Allows(actor, auth.ActionUserDeactivate, id) {
		return auth.ErrForbidden
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context, actor auth.Principal) ([]User, error) {
	if !auth.Allows(actor, auth.ActionUserList, uuid.Nil) {
		return nil, auth.ErrForbidden
	}
	return s.repo.List(ctx)
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenType    = errors.New("unexpected token type")
)

// TokenIssuer mints and verifies the HS256 bearer tokens used by the API.
// Access tokens authenticate requests; refresh tokens may only be exchanged
// for a new access token. The two are distinguished by a "type" claim.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

func (ti *TokenIssuer) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return ti.generate(userID, TokenTypeAccess, ti.accessTTL)
}

func (ti *TokenIssuer) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return ti.generate(userID, TokenTypeRefresh, ti.refreshTTL)
}

func (ti *TokenIssuer) generate(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// VerifyAccessToken validates an access token and returns the user id it
// was issued for.
func (ti *TokenIssuer) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	return ti.verify(tokenString, TokenTypeAccess)
}

// VerifyRefreshToken validates a refresh token and returns the user id it
// was issued for.
func (ti *TokenIssuer) VerifyRefreshToken(tokenString string) (uuid.UUID, error) {
	return ti.verify(tokenString, TokenTypeRefresh)
}

func (ti *TokenIssuer) verify(tokenString, wantType string) (uuid.UUID, error) {
	var c claims

	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}
	if !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}
	if c.Type != wantType {
		return uuid.Nil, ErrTokenType
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return userID, nil
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwell/appointment-backend/internal/auth"
	"github.com/bookwell/appointment-backend/internal/booking"
	redisclient "github.com/bookwell/appointment-backend/internal/redis"
	"github.com/bookwell/appointment-backend/internal/user"
)

type stubAuthenticator struct {
	user *user.User
	err  error
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, accessToken string) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Helper()
		_, ok := GetPrincipal(r.Context())
		assert.True(t, ok, "principal should be set for authenticated requests")
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	authn := &stubAuthenticator{}
	h := AuthMiddleware(authn)(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	authn := &stubAuthenticator{}
	h := AuthMiddleware(authn)(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectedToken(t *testing.T) {
	authn := &stubAuthenticator{err: auth.ErrTokenInvalid}
	h := AuthMiddleware(authn)(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareSetsPrincipal(t *testing.T) {
	u := &user.User{ID: uuid.New(), Role: auth.RoleClient, IsActive: true}
	authn := &stubAuthenticator{user: u}

	var seen auth.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r.Context())
		require.True(t, ok)
		seen = p
		w.WriteHeader(http.StatusNoContent)
	})

	h := AuthMiddleware(authn)(next)
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, u.ID, seen.ID)
	assert.Equal(t, auth.RoleClient, seen.Role)
}

func TestRequestIDMiddlewareGeneratesAndEchoes(t *testing.T) {
	var ctxID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	require.NotEmpty(t, ctxID)
	assert.Equal(t, ctxID, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddlewareKeepsIncomingID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestBookingErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{booking.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
		{booking.ErrOfferingNotFound, http.StatusBadRequest, "offering_not_found"},
		{booking.ErrOutsideAvailability, http.StatusBadRequest, "outside_availability"},
		{booking.ErrSlotConflict, http.StatusConflict, "slot_conflict"},
		{redisclient.ErrLockNotAcquired, http.StatusConflict, "slot_contended"},
		{booking.ErrAppointmentNotFound, http.StatusNotFound, "appointment_not_found"},
		{auth.ErrForbidden, http.StatusForbidden, "forbidden"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleBookingError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.code)
		})
	}
}

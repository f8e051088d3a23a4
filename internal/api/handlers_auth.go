package api

import (
	"errors"
	"net/http"

	"github.com/bookwell/appointment-backend/internal/auth"
	"github.com/bookwell/appointment-backend/internal/user"
)

func registerHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
			return
		}
		if req.Password != req.PasswordConfirm {
			writeError(w, http.StatusBadRequest, "password_mismatch", "password confirmation does not match")
			return
		}

		role := req.Role
		if role == "" {
			role = string(auth.RoleClient)
		}
		parsedRole, ok := auth.ParseRole(role)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_role", "role must be client, provider or admin")
			return
		}

		created, err := users.Register(r.Context(), user.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
			Role:     parsedRole,
		})
		if err != nil {
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(created))
	}
}

func loginHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		pair, err := users.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}

func refreshTokenHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		access, err := users.Refresh(r.Context(), req.Token)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{AccessToken: access})
	}
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "invalid_credentials", err.Error())
	case errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenType):
		writeError(w, http.StatusUnauthorized, "invalid_token", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

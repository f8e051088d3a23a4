package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/availability"
	"github.com/bookwell/appointment-backend/internal/booking"
	"github.com/bookwell/appointment-backend/internal/catalog"
	"github.com/bookwell/appointment-backend/internal/user"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// auth

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Token string `json:"token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// users

type UpdateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// services

type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

// offerings

type OfferingRequest struct {
	ProviderID      string `json:"provider_id,omitempty"`
	ServiceID       string `json:"service_id"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
}

type OfferingResponse struct {
	ID              uuid.UUID `json:"id"`
	ProviderID      uuid.UUID `json:"provider_id"`
	ServiceID       uuid.UUID `json:"service_id"`
	Price           int       `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func toOfferingResponse(o *catalog.Offering) OfferingResponse {
	return OfferingResponse{
		ID:              o.ID,
		ProviderID:      o.ProviderID,
		ServiceID:       o.ServiceID,
		Price:           o.Price,
		DurationMinutes: o.DurationMinutes,
		IsActive:        o.IsActive,
		CreatedAt:       o.CreatedAt,
	}
}

// availability

type AvailabilityRequest struct {
	ProviderID string    `json:"provider_id,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

type AvailabilityResponse struct {
	ID          uuid.UUID `json:"id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAvailabilityResponse(a *availability.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:          a.ID,
		ProviderID:  a.ProviderID,
		StartTime:   a.Window.Start,
		EndTime:     a.Window.End,
		IsAvailable: a.IsAvailable,
		CreatedAt:   a.CreatedAt,
	}
}

// appointments

type CreateAppointmentRequest struct {
	ProviderID string    `json:"provider_id"`
	ServiceID  string    `json:"service_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

type AppointmentResponse struct {
	ID         uuid.UUID `json:"id"`
	PatientID  uuid.UUID `json:"patient_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	ServiceID  uuid.UUID `json:"service_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAppointmentResponse(a *booking.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		PatientID:  a.PatientID,
		ProviderID: a.ProviderID,
		ServiceID:  a.ServiceID,
		StartTime:  a.Window.Start,
		EndTime:    a.Window.End,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
	}
}

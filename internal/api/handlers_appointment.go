package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/auth"
	"github.com/bookwell/appointment-backend/internal/booking"
	redisclient "github.com/bookwell/appointment-backend/internal/redis"
	"github.com/bookwell/appointment-backend/internal/timerange"
)

func listAppointmentsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		list, err := svc.List(r.Context(), p)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		resp := make([]AppointmentResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toAppointmentResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		var req CreateAppointmentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		providerID, err := uuid.Parse(req.ProviderID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid provider_id")
			return
		}
		serviceID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid service_id")
			return
		}

		window, err := timerange.New(req.StartTime, req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
			return
		}

		created, err := svc.Book(r.Context(), p, providerID, serviceID, window)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(created))
	}
}

func getAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		a, err := svc.Get(r.Context(), p, id)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func updateAppointmentStatusHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req UpdateAppointmentStatusRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		status, ok := booking.ParseStatus(req.Status)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_status", "unknown appointment status")
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), p, id, status)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(updated))
	}
}

func cancelAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		cancelled, err := svc.Cancel(r.Context(), p, id)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(cancelled))
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
	case errors.Is(err, booking.ErrOfferingNotFound):
		writeError(w, http.StatusBadRequest, "offering_not_found", err.Error())
	case errors.Is(err, booking.ErrOutsideAvailability):
		writeError(w, http.StatusBadRequest, "outside_availability", err.Error())
	case errors.Is(err, booking.ErrSlotConflict):
		writeError(w, http.StatusConflict, "slot_conflict", err.Error())
	case errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "slot_contended", "could not reserve the slot, try again")
	case errors.Is(err, booking.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "you have no permission")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/auth"
	"github.com/bookwell/appointment-backend/internal/availability"
	"github.com/bookwell/appointment-backend/internal/timerange"
)

func listAvailabilitiesHandler(svc *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		list, err := svc.List(r.Context(), p)
		if err != nil {
			handleAvailabilityError(w, err)
			return
		}

		resp := make([]AvailabilityResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toAvailabilityResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createAvailabilityHandler(svc *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		var req AvailabilityRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		window, err := timerange.New(req.StartTime, req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
			return
		}

		providerID := p.ID
		if req.ProviderID != "" {
			providerID, err = uuid.Parse(req.ProviderID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_request", "invalid provider_id")
				return
			}
		}

		created, err := svc.Create(r.Context(), p, providerID, window)
		if err != nil {
			handleAvailabilityError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAvailabilityResponse(created))
	}
}

func getAvailabilityHandler(svc *availability.Service) http.HandlerFunc {
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
			handleAvailabilityError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAvailabilityResponse(a))
	}
}

func updateAvailabilityHandler(svc *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req AvailabilityRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		window, err := timerange.New(req.StartTime, req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
			return
		}

		providerID := uuid.Nil
		if req.ProviderID != "" {
			providerID, err = uuid.Parse(req.ProviderID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_request", "invalid provider_id")
				return
			}
		}

		updated, err := svc.Update(r.Context(), p, id, providerID, window)
		if err != nil {
			handleAvailabilityError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAvailabilityResponse(updated))
	}
}

func disableAvailabilityHandler(svc *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.Disable(r.Context(), p, id); err != nil {
			handleAvailabilityError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "availability successfully deleted"})
	}
}

func handleAvailabilityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, availability.ErrAvailabilityNotFound):
		writeError(w, http.StatusNotFound, "availability_not_found", err.Error())
	case errors.Is(err, timerange.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "you have no permission")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

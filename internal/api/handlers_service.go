package api

import (
	"errors"
	"net/http"

	"github.com/bookwell/appointment-backend/internal/auth"
	"github.com/bookwell/appointment-backend/internal/catalog"
)

func listServicesHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		list, err := cat.ListServices(r.Context(), p)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		resp := make([]ServiceResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toServiceResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createServiceHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		var req ServiceRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
			return
		}

		created, err := cat.CreateService(r.Context(), p, catalog.ServiceInput{
			Name:        req.Name,
			Description: req.Description,
			IsActive:    req.IsActive,
		})
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toServiceResponse(created))
	}
}

func getServiceHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		s, err := cat.GetService(r.Context(), id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toServiceResponse(s))
	}
}

func updateServiceHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req ServiceRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		updated, err := cat.UpdateService(r.Context(), p, id, catalog.ServiceInput{
			Name:        req.Name,
			Description: req.Description,
			IsActive:    req.IsActive,
		})
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toServiceResponse(updated))
	}
}

func deleteServiceHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := cat.DeleteService(r.Context(), p, id); err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "service successfully deleted"})
	}
}

func handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		writeError(w, http.StatusNotFound, "service_not_found", err.Error())
	case errors.Is(err, catalog.ErrOfferingNotFound):
		writeError(w, http.StatusNotFound, "offering_not_found", err.Error())
	case errors.Is(err, catalog.ErrServiceExists):
		writeError(w, http.StatusConflict, "service_exists", err.Error())
	case errors.Is(err, catalog.ErrOfferingExists):
		writeError(w, http.StatusConflict, "offering_exists", err.Error())
	case errors.Is(err, catalog.ErrInvalidOffering):
		writeError(w, http.StatusBadRequest, "invalid_offering", err.Error())
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "you have no permission")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

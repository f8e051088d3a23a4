package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/catalog"
)

func listOfferingsHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		list, err := cat.ListOfferings(r.Context(), p)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		resp := make([]OfferingResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toOfferingResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createOfferingHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		var req OfferingRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		serviceID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid service_id")
			return
		}

		var providerID uuid.UUID
		if req.ProviderID != "" {
			providerID, err = uuid.Parse(req.ProviderID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_request", "invalid provider_id")
				return
			}
		}

		created, err := cat.CreateOffering(r.Context(), p, catalog.OfferingInput{
			ProviderID:      providerID,
			ServiceID:       serviceID,
			Price:           req.Price,
			DurationMinutes: req.DurationMinutes,
			IsActive:        req.IsActive,
		})
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toOfferingResponse(created))
	}
}

func getOfferingHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		o, err := cat.GetOffering(r.Context(), id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOfferingResponse(o))
	}
}

func updateOfferingHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req OfferingRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		serviceID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid service_id")
			return
		}

		var providerID uuid.UUID
		if req.ProviderID != "" {
			providerID, err = uuid.Parse(req.ProviderID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_request", "invalid provider_id")
				return
			}
		}

		updated, err := cat.UpdateOffering(r.Context(), p, id, catalog.OfferingInput{
			ProviderID:      providerID,
			ServiceID:       serviceID,
			Price:           req.Price,
			DurationMinutes: req.DurationMinutes,
			IsActive:        req.IsActive,
		})
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOfferingResponse(updated))
	}
}

func deleteOfferingHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := cat.DeleteOffering(r.Context(), p, id); err != nil {
			handleCatalogError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "offering successfully deleted"})
	}
}

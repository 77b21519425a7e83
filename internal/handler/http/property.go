package http

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// searchParamKeys switch listing to search when present in the query
// string, even with a blank value.
var searchParamKeys = []string{"city", "type", "minPrice", "maxPrice"}

// listProperties searches when any filter parameter is present and lists
// the whole catalog otherwise. A present but blank parameter still means
// search, which returns AVAILABLE listings only.
func (h *Handler) listProperties(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := models.SearchParams{
		City:     query.Get("city"),
		Type:     query.Get("type"),
		MinPrice: query.Get("minPrice"),
		MaxPrice: query.Get("maxPrice"),
	}

	var (
		properties []models.Property
		err        error
	)
	if !slices.ContainsFunc(searchParamKeys, query.Has) {
		properties, err = h.services.PropertyService.ListAll(r.Context())
	} else {
		properties, err = h.services.PropertyService.Search(r.Context(), params)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeProperties(w, r, properties)
}

func (h *Handler) listFeaturedProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.services.PropertyService.ListFeatured(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeProperties(w, r, properties)
}

func (h *Handler) getProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	property, err := h.services.PropertyService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, property, http.StatusOK)
}

func (h *Handler) createProperty(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var request models.PropertyRequest
	if err = utils.DecodeJSON(r, &request); err != nil {
		h.writeBadRequest(w, r, err, app.MsgInvalidJSON)
		return
	}

	property, err := h.services.PropertyService.Create(r.Context(), request, principal)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/properties/"+property.ID.String())
	h.writeJSON(w, r, property, http.StatusCreated)
}

func (h *Handler) updateProperty(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var request models.PropertyRequest
	if err = utils.DecodeJSON(r, &request); err != nil {
		h.writeBadRequest(w, r, err, app.MsgInvalidJSON)
		return
	}

	property, err := h.services.PropertyService.Update(r.Context(), id, request, principal)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, property, http.StatusOK)
}

func (h *Handler) deleteProperty(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err = h.services.PropertyService.Delete(r.Context(), id, principal); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeProperties renders a list, never as JSON null.
func (h *Handler) writeProperties(w http.ResponseWriter, r *http.Request, properties []models.Property) {
	if properties == nil {
		properties = []models.Property{}
	}
	h.writeJSON(w, r, properties, http.StatusOK)
}

// pathID parses a UUID path parameter, answering 400 when it is malformed.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		h.writeBadRequest(w, r, err, ErrInvalidPathID.Error())
		return uuid.Nil, false
	}
	return id, true
}

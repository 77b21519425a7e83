package http

import (
	"net/http"
)

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	properties, err := h.services.FavoriteService.List(r.Context(), principal)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeProperties(w, r, properties)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	propertyID, ok := h.pathID(w, r, "propertyId")
	if !ok {
		return
	}

	if err = h.services.FavoriteService.Add(r.Context(), principal, propertyID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	propertyID, ok := h.pathID(w, r, "propertyId")
	if !ok {
		return
	}

	if err = h.services.FavoriteService.Remove(r.Context(), principal, propertyID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

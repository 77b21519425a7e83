package http

import (
	"net/http"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var request models.RegisterRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		h.writeBadRequest(w, r, err, app.MsgInvalidJSON)
		return
	}

	result, err := h.services.AuthService.Register(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", result.User.UserID.String()).Msg("user registered")
	h.writeJSON(w, r, models.NewAuthResponse(result), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var request models.LoginRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		h.writeBadRequest(w, r, err, app.MsgInvalidJSON)
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewAuthResponse(result), http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var request models.RefreshRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		h.writeBadRequest(w, r, err, app.MsgInvalidJSON)
		return
	}

	result, err := h.services.AuthService.RefreshAccessToken(r.Context(), request.RefreshToken)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewAuthResponse(result), http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.AuthService.Logout(r.Context(), principal.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/service"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

func statusFromKind(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindUnauthenticated, service.KindTokenExpired:
		return http.StatusUnauthorized
	case service.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func statusFromError(err error) int {
	return statusFromKind(service.KindOf(err))
}

// writeError renders err as an ErrorResponse. Internal failures are logged
// and reported without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	kind := service.KindOf(err)

	if kind == service.KindInternal {
		log.Err(err).Msg("request failed with internal error")
		h.writeErrorResponse(w, r, http.StatusInternalServerError, app.MsgInternalServerError, nil)
		return
	}

	var domainErr *service.Error
	errors.As(err, &domainErr)

	log.Debug().Err(err).Str("kind", kind.String()).Msg("request rejected")
	h.writeErrorResponse(w, r, statusFromKind(kind), domainErr.Message, domainErr.Fields)
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string, fields map[string]string) {
	body := models.ErrorResponse{
		Status:    status,
		Message:   message,
		Timestamp: h.now().UTC(),
		Path:      r.URL.Path,
		Fields:    fields,
	}

	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing error response")
	}
}

// writeBadRequest reports a body or path that could not be decoded.
func (h *Handler) writeBadRequest(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger.FromRequest(r).Debug().Err(err).Msg(message)
	h.writeErrorResponse(w, r, http.StatusBadRequest, message, nil)
}

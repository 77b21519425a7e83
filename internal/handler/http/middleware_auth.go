package http

import (
	"net/http"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/utils"
	"github.com/MKhiriev/rent-pe-easy/models"
)

// auth is an HTTP middleware that resolves the acting principal from the
// bearer token in the "Authorization" header.
//
// On success the principal is stored in the request context (see
// [utils.GetPrincipalFromContext]) and the request logger gains a user_id
// field. Requests without a usable token get 401; a disabled account or an
// unknown subject is reported the way the session manager classifies it.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			h.writeErrorResponse(w, r, http.StatusUnauthorized, app.MsgAuthenticationRequired, nil)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			h.writeErrorResponse(w, r, http.StatusUnauthorized, app.MsgInvalidAuthHeader, nil)
			return
		}

		ctx := r.Context()
		principal, err := h.services.AuthService.ResolvePrincipal(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx = utils.WithPrincipal(ctx, principal)
		ctx = log.WithField("user_id", principal.UserID.String()).WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFromRequest returns the principal stored by auth. A missing
// principal is an internal wiring error.
func principalFromRequest(r *http.Request) (models.Principal, error) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		return models.Principal{}, ErrNoPrincipalInContext
	}
	return principal, nil
}

package http

import (
	"net/http"
)

// ping is the liveness probe. Database reachability is reported by the
// gRPC health service.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	writePlainText(w, http.StatusOK, "pong")
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Cache-Control", "no-store")
	writePlainText(w, http.StatusOK, serverVersion)
}

func writePlainText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

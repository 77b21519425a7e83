// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/rent-pe-easy/internal/app"
)

// notFound answers unknown paths with a JSON ErrorResponse.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeErrorResponse(w, r, http.StatusNotFound, app.MsgResourceNotFound, nil)
}

// methodNotAllowed answers known paths requested with an unregistered
// method.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeErrorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(app.MsgMethodNotAllowed, r.Method), nil)
}

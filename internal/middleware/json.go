// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every JSON API error. RequestID matches
// the X-Request-ID response header so a failure can be found in the logs.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(r.Context(), "writing json response", "error", err)
	}
}

// WriteJSONError writes an ErrorResponse.
func WriteJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, r, status, ErrorResponse{
		Status:    status,
		Error:     message,
		RequestID: GetRequestID(r.Context()),
	})
}

// WriteJSONSuccess writes data with "success": true merged in.
func WriteJSONSuccess(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if data == nil {
		data = make(map[string]any, 1)
	}
	data["success"] = true
	WriteJSON(w, r, http.StatusOK, data)
}

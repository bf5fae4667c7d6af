// Package api defines the JSON envelope every handler responds with.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope wraps every response body. Data and Error are mutually
// exclusive; RequestID echoes the request's correlation id.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error carries a stable machine-readable code next to the human message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(w http.ResponseWriter, data any, requestID string) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	write(w, status, Envelope{
		Success:   false,
		Error:     &Error{Code: code, Message: message},
		RequestID: requestID,
	})
}

func write(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Warn("encode response envelope failed", "err", err)
	}
}

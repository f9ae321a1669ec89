// Package response provides JSON response helpers.
// Error bodies always carry a "message" field.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON response.
func Success(w http.ResponseWriter, v interface{}) { JSON(w, http.StatusOK, v) }

// Created sends a 201 JSON response.
func Created(w http.ResponseWriter, v interface{}) { JSON(w, http.StatusCreated, v) }

// Error sends a JSON error response with a message field.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Message: message})
}

// ErrorWithStack sends a 500 including the stack trace.
// Only call outside production mode.
func ErrorWithStack(w http.ResponseWriter, message, stack string) {
	JSON(w, http.StatusInternalServerError, errorBody{Message: message, Stack: stack})
}

// BadRequest sends a 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

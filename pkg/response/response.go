// Package response writes the API's JSON bodies.
//
// Success bodies are written as-is (the wire shapes are part of the API
// contract), errors always as {"message": "..."}.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/glowmart/pkg/apperr"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Message writes {"message": msg} with the given status code.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Err maps a service error to its status code and client-safe message.
func Err(w http.ResponseWriter, err error) {
	Message(w, apperr.Status(err), apperr.ClientMessage(err))
}

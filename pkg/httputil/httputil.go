// Package httputil holds small response helpers shared by HTTP handlers.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/eksiir/risk-categories-microservice/pkg/domainerrors"
)

// WriteJSON encodes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteText writes a plain text response with the given status code.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if body != "" {
		_, _ = w.Write([]byte(body))
	}
}

// WriteError translates a domain error into the documented status code and
// plain text body. Not-found responses have an empty body.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.HTTPStatus(err)
	msg := dErrors.ClientMessage(err)
	if msg == "" {
		w.WriteHeader(status)
		return
	}
	WriteText(w, status, msg)
}

// Package status holds the process readiness registry consumed by
// orchestration health checks. The registry is an explicit, injectable
// struct owned by the process entry point; components that report status
// receive a handle rather than touching shared globals.
package status

import (
	"net/http"
	"sync"
)

// Field names written by initialization and connection events.
const (
	FieldName        = "Name"
	FieldVersion     = "Version"
	FieldDescription = "Description"
	FieldAWSRegion   = "AWS Region"
	FieldAPI         = "API"
	FieldMongoDB     = "MongoDB"
)

// Registry aggregates subsystem health into one HTTP-facing signal.
// Readiness is the conjunction of "HTTP layer is listening" and "store
// connection succeeded"; both report into the same record, so the aggregate
// code only reaches 200 once the last subsystem to come up flips it.
type Registry struct {
	mu     sync.RWMutex
	code   int
	fields map[string]string
}

// New returns a registry in the not-ready state, populated with the given
// build metadata. The API and MongoDB fields start with their failure
// messages so a snapshot taken before startup completes is truthful.
func New(name, version, description string) *Registry {
	return &Registry{
		code: http.StatusInternalServerError,
		fields: map[string]string{
			FieldName:        name,
			FieldVersion:     version,
			FieldDescription: description,
			FieldAWSRegion:   "",
			FieldAPI:         "Failed to start the server.",
			FieldMongoDB:     "No connection.",
		},
	}
}

// Set overwrites one named status field.
func (r *Registry) Set(name, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[name] = message
}

// SetWithCode overwrites one named status field and the aggregate status code.
func (r *Registry) SetWithCode(name, message string, code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[name] = message
	r.code = code
}

// Code returns the aggregate numeric status code.
func (r *Registry) Code() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.code
}

// Snapshot returns the aggregate code plus all fields verbatim, with the
// distinguished Status field rendered as "Ready" when the code is 200 and
// "Not Ready" otherwise. The caller uses the returned code as the HTTP
// response status.
func (r *Registry) Snapshot() (int, map[string]string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.fields)+1)
	for k, v := range r.fields {
		out[k] = v
	}
	if r.code == http.StatusOK {
		out["Status"] = "Ready"
	} else {
		out["Status"] = "Not Ready"
	}
	return r.code, out
}

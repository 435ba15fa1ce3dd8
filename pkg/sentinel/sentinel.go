package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the service layer can translate them into domain errors with the
// documented status codes.
//
// These represent factual states about stored documents, not validation
// failures. For validation errors use pkg/domainerrors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)

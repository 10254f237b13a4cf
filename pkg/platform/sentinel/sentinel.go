package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrConflict: a record with the same identifier already exists
// - ErrInvalidTransition: record is in a state the requested operation cannot leave
// - ErrUnavailable: collaborator (extraction, advisory) failed or timed out
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnavailable       = errors.New("unavailable")
)

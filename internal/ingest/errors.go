package ingest

import "errors"

// Ingestion failures. Each is terminal for the load attempt.
var (
	ErrMissingDocument      = errors.New("missing simulation document")
	ErrMissingInitOrFrames  = errors.New("document has no init.machines or frames")
	ErrActorIndexOutOfRange = errors.New("actor index out of range")
	ErrRosterSizeMismatch   = errors.New("roster smaller than referenced actor indices")
	ErrMalformedVector      = errors.New("malformed position vector")
)

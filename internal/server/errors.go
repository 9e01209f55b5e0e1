package server

import "errors"

// Submission and sync failures are surfaced to the UI as recoverable,
// user-visible conditions, never silently dropped.
var (
	errGameNotFound     = errors.New("game not found")
	errGameOver         = errors.New("game is over")
	errEmptyDecision    = errors.New("decision is empty")
	errWrongPhase       = errors.New("action not allowed in current phase")
	errDeadSubmitter    = errors.New("submitter is not alive")
	errUnknownSubmitter = errors.New("submitter not found")
	errInvalidTarget    = errors.New("target is not a living player")
	errDoubleSubmission = errors.New("decision already submitted this window")
	errMalformedSync    = errors.New("malformed state sync")
)

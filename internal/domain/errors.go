package domain

import "errors"

var (
	// ErrInvalidInput marks filename, path or content validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownAction is returned by handlers for actions they do not serve.
	ErrUnknownAction = errors.New("unknown action")
	// ErrConfirmationPending rejects a second destructive action while one awaits an answer.
	ErrConfirmationPending = errors.New("another action is awaiting confirmation")
	// ErrNothingPending is returned when resolving without a pending confirmation.
	ErrNothingPending = errors.New("nothing to confirm")
	// ErrBackendUnavailable means a completion backend cannot be used (missing key, bad config).
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrNotFound means a lookup service has no page or place for the request.
	ErrNotFound = errors.New("not found")
)

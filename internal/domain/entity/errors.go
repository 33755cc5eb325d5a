package entity

import "errors"

// Error taxonomy for the envelope wizard. Validation errors never
// reach the network; storage and send failures preserve all staged
// state for retry.
var (
	// ErrValidation covers locally detected bad input: missing
	// recipient fields, malformed email, unsupported or oversized
	// uploads. Wrap with context via fmt.Errorf("...: %w", ...).
	ErrValidation = errors.New("validation failed")

	// ErrMissingRecipient is returned when a field placement is
	// attempted without a selected recipient.
	ErrMissingRecipient = errors.New("no recipient selected")

	// ErrMissingDocument is returned when an operation references a
	// document that is not staged.
	ErrMissingDocument = errors.New("document not staged")

	// ErrIncompleteEnvelope rejects a send attempted without the
	// minimum document/recipient prerequisites, before any network
	// call.
	ErrIncompleteEnvelope = errors.New("envelope is incomplete")

	// ErrStorageFailure wraps staging-store read/write failures. The
	// upload is not considered staged; the caller may retry.
	ErrStorageFailure = errors.New("staging storage failure")

	// ErrSendFailed wraps transport failures during send. Staged data
	// stays intact and the send may be retried.
	ErrSendFailed = errors.New("envelope send failed")

	// ErrSendInFlight rejects a duplicate send while one is already
	// running for the same session.
	ErrSendInFlight = errors.New("send already in progress")

	// ErrSessionNotFound is returned for unknown wizard session ids.
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrSessionLocked is returned when a caller that does not hold
	// the session's writer token attempts a mutation.
	ErrSessionLocked = errors.New("wizard session owned by another writer")
)

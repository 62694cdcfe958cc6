package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no transaction exists for a given id.
	ErrNotFound = errors.New("transaction not found")
)

// ValidationError reports malformed input. No gateway call was made and
// nothing was written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Reason
}

// PreconditionError reports a business rule violation (membership, capacity,
// ownership). No gateway call was made and nothing was written.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// GatewayError wraps a gateway call that failed or timed out. Retryable by
// the caller; no ledger record was written during initiation.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// InconsistentStateError reports that activation found the linked entity
// missing or in a conflicting state. The transaction stays completed; the
// money moved even if activation could not fully apply.
type InconsistentStateError struct {
	Purpose       Purpose
	TransactionID string
	Reason        string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("inconsistent %s state for transaction %s: %s", e.Purpose, e.TransactionID, e.Reason)
}

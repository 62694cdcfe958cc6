package payment

import (
	"time"

	"github.com/google/uuid"
)

// Purpose identifies what a payment is for. It is set at initiation and
// carried on the transaction itself, never re-derived from the account
// reference string.
type Purpose string

const (
	PurposeRent        Purpose = "rent"
	PurposeSale        Purpose = "sale"
	PurposeToken       Purpose = "token"
	PurposeMembership  Purpose = "membership"
	PurposeInvestment  Purpose = "investment"
	PurposePartnership Purpose = "partnership"
)

// Status represents the lifecycle state of a payment attempt.
// Transitions are pending -> completed or pending -> failed, never reversed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transaction is the durable record of one payment attempt. The gateway's
// CheckoutRequestID (TransactionID) is the idempotency key for the whole
// settlement flow.
type Transaction struct {
	ID             uuid.UUID
	TransactionID  string
	Purpose        Purpose
	OwnerID        uuid.UUID
	LinkedEntityID uuid.UUID
	Amount         int64 // Whole shillings, as required by the gateway.
	Phone          string
	// AccountReference is the human-readable reference sent to the gateway,
	// kept for audit only.
	AccountReference string
	Description      string
	Status           Status
	ReceiptNumber    *string
	FailureReason    *string
	CreatedAt        time.Time
	SettledAt        *time.Time
	ActivatedAt      *time.Time
}

// Terminal reports whether the transaction has reached a final status.
func (t *Transaction) Terminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

// StatusResult is the gateway's answer to a status query for a pending
// transaction.
type StatusResult struct {
	ResultCode int
	ResultDesc string
	Receipt    string
	// Pending is set when the gateway reports the transaction as still
	// being processed.
	Pending bool
}

// GatewayResult carries the settlement outcome delivered by a callback.
// ResultCode 0 means the payment went through.
type GatewayResult struct {
	TransactionID string
	ResultCode    int
	ResultDesc    string
	Receipt       string
	Amount        int64
	Phone         string
}

package lease

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("lease not found")
	ErrPaymentNotFound = errors.New("lease payment not found")
)

type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
	StatusCompleted  Status = "completed"
)

// Lease is a rental agreement between a landlord and a tenant.
type Lease struct {
	ID            uuid.UUID
	PropertyID    uuid.UUID
	LandlordID    uuid.UUID
	TenantID      uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	MonthlyRent   int64
	PaymentDueDay int
	Status        Status
	Terms         string
	CreatedAt     time.Time
}

// PaymentStatus mirrors the settlement state of one rent payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentRecord is one entry in a lease's payment history, created pending
// at initiation and settled by reconciliation.
type PaymentRecord struct {
	ID            uuid.UUID
	LeaseID       uuid.UUID
	TransactionID string
	Amount        int64
	Status        PaymentStatus
	FailureReason *string
	PaidAt        *time.Time
	CreatedAt     time.Time
}

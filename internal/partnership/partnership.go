package partnership

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("partnership not found")

// Type is the kind of partner joining the platform.
type Type string

const (
	TypeFinancialInstitution Type = "financial_institution"
	TypeDeveloper            Type = "developer"
	TypeOther                Type = "other"
)

func ValidType(t Type) bool {
	switch t {
	case TypeFinancialInstitution, TypeDeveloper, TypeOther:
		return true
	}

	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Partnership is a paid commercial arrangement with the platform, activated
// for one year once the fee payment settles.
type Partnership struct {
	ID            uuid.UUID
	PartnerID     uuid.UUID
	Type          Type
	Name          string
	Fee           int64
	Status        Status
	StartDate     *time.Time
	EndDate       *time.Time
	TransactionID string
	FailureReason *string
	CreatedAt     time.Time
}

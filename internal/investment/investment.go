package investment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("investment not found")
	// ErrCapacityExceeded is returned when a reservation would push the
	// property past its investment capacity.
	ErrCapacityExceeded = errors.New("property investment capacity exceeded")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Investment is one user's stake in a property, reserved at payment
// initiation and confirmed when the payment settles.
type Investment struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	PropertyID uuid.UUID
	Amount     int64
	// ReturnRate is the annual percentage promised for this stake, fixed at
	// initiation from the tier table.
	ReturnRate    float64
	MaturityDate  time.Time
	Status        Status
	TransactionID string
	FailureReason *string
	CreatedAt     time.Time
}

// Tier maps an investment's share of the property base price to its annual
// return rate. A proportion at or above From (and below the next tier's
// From) earns Rate.
type Tier struct {
	From float64
	Rate float64
}

// ReturnTiers is ordered by proportion: below 10% earns 5%, 10% up to and
// including 25% earns 7%, above 25% earns 10%.
var ReturnTiers = []Tier{
	{From: 0, Rate: 5},
	{From: 0.10, Rate: 7},
	{From: 0.25, Rate: 10},
}

// ReturnRateFor looks up the annual return rate for an investment of the
// given amount against a property base price.
func ReturnRateFor(amount, basePrice int64) float64 {
	if basePrice <= 0 {
		return ReturnTiers[0].Rate
	}

	proportion := float64(amount) / float64(basePrice)

	switch {
	case proportion < ReturnTiers[1].From:
		return ReturnTiers[0].Rate
	case proportion <= ReturnTiers[2].From:
		// A stake of exactly 25% still earns the middle rate.
		return ReturnTiers[1].Rate
	default:
		return ReturnTiers[2].Rate
	}
}

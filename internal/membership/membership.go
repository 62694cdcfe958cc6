package membership

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("membership not found")

// PaymentStatus mirrors the settlement state of the upgrade payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Membership is one user's subscription to a plan. At most one membership
// per user is active at a time.
type Membership struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Plan          string
	Price         int64
	StartDate     time.Time
	EndDate       time.Time
	Features      []string
	IsActive      bool
	PaymentStatus PaymentStatus
	TransactionID *string
	FailureReason *string
	CreatedAt     time.Time
}

// Plan describes a subscription tier. The ordered Plans table is the single
// source for pricing and entitlements.
type Plan struct {
	Name     string
	Price    int64
	Term     time.Duration
	Features []string
}

const yearTerm = 365 * 24 * time.Hour

// Plans is ordered from cheapest to most expensive. Basic is the free tier
// every user starts on; only the paid tiers can be upgraded to.
var Plans = []Plan{
	{Name: "Basic", Price: 0, Term: yearTerm, Features: []string{"3 Listings"}},
	{Name: "Pro", Price: 5, Term: yearTerm, Features: []string{"Basic Support", "5 Listings"}},
	{Name: "Premium", Price: 10, Term: yearTerm, Features: []string{"Priority Support", "Unlimited Listings"}},
}

// PlanByName returns the plan definition, or false when the name is unknown.
func PlanByName(name string) (Plan, bool) {
	for _, p := range Plans {
		if p.Name == name {
			return p, true
		}
	}

	return Plan{}, false
}

// CanTransact reports whether the plan allows paid platform features
// (investing, token purchases).
func CanTransact(plan string) bool {
	return plan != "" && plan != "Basic"
}

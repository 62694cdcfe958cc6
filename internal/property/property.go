package property

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("property not found")
	// ErrConflict is returned when a counter update would violate one of the
	// property's guards (already sold, not enough tokens, capacity reached).
	ErrConflict = errors.New("property state conflict")
)

// ListingType says how the property is offered on the platform.
type ListingType string

const (
	ListingRental ListingType = "rental"
	ListingSale   ListingType = "sale"
	ListingLease  ListingType = "lease"
)

// Status is the property's occupancy state.
type Status string

const (
	StatusAvailable Status = "available"
	StatusRented    Status = "rented"
	StatusSold      Status = "sold"
	StatusLeased    Status = "leased"
)

type Property struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	Description  string
	Price        int64
	RentalPrice  int64
	Location     string
	PropertyType string
	Status       Status
	ListingType  ListingType
	IsTokenized  bool
	TotalTokens  int64
	// AvailableTokens counts tokens not yet bought; decremented only by
	// settled token purchases.
	AvailableTokens int64
	TokenPrice      int64
	// MaxInvestmentCapacity caps the sum of investments accepted for this
	// property. When nil, half the base price applies.
	MaxInvestmentCapacity *int64
	TotalInvestedAmount   int64
	CreatedAt             time.Time
}

// BasePrice is the price investments are measured against: the sale price,
// or the rental price for properties that are not for sale.
func (p *Property) BasePrice() int64 {
	if p.Price > 0 {
		return p.Price
	}

	return p.RentalPrice
}

// InvestmentCapacity returns the configured cap, defaulting to 50% of the
// base price.
func (p *Property) InvestmentCapacity() int64 {
	if p.MaxInvestmentCapacity != nil {
		return *p.MaxInvestmentCapacity
	}

	return p.BasePrice() / 2
}

// TokenizedAsset is one fractional share of a tokenized property, minted
// when a token purchase settles.
type TokenizedAsset struct {
	ID             uuid.UUID
	PropertyID     uuid.UUID
	TokenID        string
	OwnerID        uuid.UUID
	CurrentOwnerID uuid.UUID
	PurchasePrice  int64
	PurchaseDate   time.Time
	// TransactionHash holds the gateway receipt until on-chain minting
	// attaches a real hash.
	TransactionHash string
	TransactionID   string
	CreatedAt       time.Time
}

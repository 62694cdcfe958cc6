package property

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=property
type Repository interface {
	GetProperty(ctx context.Context, id uuid.UUID) (*Property, error)

	// MarkSoldBy flips an available sale property to sold and records which
	// transaction did it. Re-running with the same transaction id reports
	// true; a property sold by a different transaction reports false.
	MarkSoldBy(ctx context.Context, id uuid.UUID, transactionID string) (bool, error)

	// RecordTokenSale decrements the available token count and creates the
	// asset rows in one database transaction. Returns false without writing
	// when assets for the transaction already exist.
	RecordTokenSale(ctx context.Context, propertyID uuid.UUID, transactionID string, tokens int64, assets []*TokenizedAsset) (bool, error)

	ListAssetsForOwner(ctx context.Context, ownerID uuid.UUID) ([]*TokenizedAsset, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	return s.repo.GetProperty(ctx, id)
}

func (s *Service) ListAssetsForOwner(ctx context.Context, ownerID uuid.UUID) ([]*TokenizedAsset, error) {
	return s.repo.ListAssetsForOwner(ctx, ownerID)
}

// ConfirmSale marks the property sold for a settled purchase payment.
// Idempotent per transaction id.
func (s *Service) ConfirmSale(ctx context.Context, propertyID uuid.UUID, transactionID string) error {
	ok, err := s.repo.MarkSoldBy(ctx, propertyID, transactionID)
	if err != nil {
		return fmt.Errorf("marking property sold: %w", err)
	}

	if !ok {
		return fmt.Errorf("property %s: %w", propertyID, ErrConflict)
	}

	return nil
}

// MintTokens converts a settled token payment into asset records and
// decrements the property's available tokens. The token count is
// floor(amount / tokenPrice). Idempotent per transaction id.
func (s *Service) MintTokens(ctx context.Context, propertyID, buyerID uuid.UUID, transactionID string, amount int64, receipt string) error {
	p, err := s.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	if !p.IsTokenized || p.TokenPrice <= 0 {
		return fmt.Errorf("property %s is not tokenized: %w", propertyID, ErrConflict)
	}

	tokens := amount / p.TokenPrice
	if tokens <= 0 {
		return fmt.Errorf("amount %d buys no tokens at price %d: %w", amount, p.TokenPrice, ErrConflict)
	}

	now := time.Now()
	assets := make([]*TokenizedAsset, tokens)

	for i := range assets {
		assets[i] = &TokenizedAsset{
			PropertyID:      propertyID,
			TokenID:         fmt.Sprintf("TOKEN-%s-%d-%d", propertyID, now.UnixNano(), i),
			OwnerID:         buyerID,
			CurrentOwnerID:  buyerID,
			PurchasePrice:   p.TokenPrice,
			PurchaseDate:    now,
			TransactionHash: receipt,
			TransactionID:   transactionID,
		}
	}

	// A false result means assets for this transaction already exist; that
	// replay is a no-op.
	if _, err := s.repo.RecordTokenSale(ctx, propertyID, transactionID, tokens, assets); err != nil {
		return fmt.Errorf("recording token sale: %w", err)
	}

	return nil
}

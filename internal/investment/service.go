package investment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=investment
type Repository interface {
	// ReservePending writes a pending investment while holding the property
	// row lock, re-checking capacity inside the same database transaction.
	// Returns ErrCapacityExceeded when the stake no longer fits.
	ReservePending(ctx context.Context, inv *Investment) error

	GetByTransactionID(ctx context.Context, transactionID string) (*Investment, error)

	// SumActive returns the total of pending and confirmed investment
	// amounts for a property.
	SumActive(ctx context.Context, propertyID uuid.UUID) (int64, error)

	// ConfirmAndCredit flips the investment to confirmed and adds its amount
	// to the property's invested-amount counter in one database
	// transaction. Returns false when the investment was not pending.
	ConfirmAndCredit(ctx context.Context, transactionID string) (bool, error)

	MarkFailed(ctx context.Context, transactionID, reason string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Reserve creates the pending investment that a settling payment will later
// confirm. The return rate and maturity date are fixed here, at initiation.
func (s *Service) Reserve(ctx context.Context, userID, propertyID uuid.UUID, amount, basePrice int64, transactionID string) (*Investment, error) {
	inv := &Investment{
		UserID:        userID,
		PropertyID:    propertyID,
		Amount:        amount,
		ReturnRate:    ReturnRateFor(amount, basePrice),
		MaturityDate:  time.Now().AddDate(1, 0, 0),
		Status:        StatusPending,
		TransactionID: transactionID,
	}

	if err := s.repo.ReservePending(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// SumActive exposes the reserved-plus-confirmed total for capacity checks.
func (s *Service) SumActive(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	return s.repo.SumActive(ctx, propertyID)
}

// Confirm applies a settled investment payment. Replays against an already
// confirmed investment are no-ops.
func (s *Service) Confirm(ctx context.Context, transactionID string) error {
	flipped, err := s.repo.ConfirmAndCredit(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("confirming investment: %w", err)
	}

	if flipped {
		return nil
	}

	inv, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}

	if inv.Status != StatusConfirmed {
		return fmt.Errorf("investment %s is %s, not confirmable", inv.ID, inv.Status)
	}

	return nil
}

// Fail marks the pending investment failed, releasing its capacity
// reservation.
func (s *Service) Fail(ctx context.Context, transactionID, reason string) error {
	if _, err := s.repo.MarkFailed(ctx, transactionID, reason); err != nil {
		return fmt.Errorf("failing investment: %w", err)
	}

	return nil
}

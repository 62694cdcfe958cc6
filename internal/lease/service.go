package lease

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=lease
type Repository interface {
	GetLease(ctx context.Context, id uuid.UUID) (*Lease, error)
	AppendPayment(ctx context.Context, rec *PaymentRecord) error
	GetPayment(ctx context.Context, transactionID string) (*PaymentRecord, error)

	// CompletePayment and FailPayment settle the pending history entry with
	// a conditional write; false means the entry was already terminal.
	CompletePayment(ctx context.Context, transactionID string, paidAt time.Time) (bool, error)
	FailPayment(ctx context.Context, transactionID, reason string) (bool, error)

	ListPayments(ctx context.Context, leaseID uuid.UUID) ([]*PaymentRecord, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Lease, error) {
	return s.repo.GetLease(ctx, id)
}

func (s *Service) Payments(ctx context.Context, leaseID uuid.UUID) ([]*PaymentRecord, error) {
	return s.repo.ListPayments(ctx, leaseID)
}

// RecordPendingPayment appends the pending history entry a rent payment
// will settle into.
func (s *Service) RecordPendingPayment(ctx context.Context, leaseID uuid.UUID, transactionID string, amount int64) (*PaymentRecord, error) {
	rec := &PaymentRecord{
		LeaseID:       leaseID,
		TransactionID: transactionID,
		Amount:        amount,
		Status:        PaymentPending,
	}

	if err := s.repo.AppendPayment(ctx, rec); err != nil {
		return nil, fmt.Errorf("recording pending rent payment: %w", err)
	}

	return rec, nil
}

// ConfirmPayment settles the history entry for a completed rent payment.
// Replays are no-ops.
func (s *Service) ConfirmPayment(ctx context.Context, transactionID string) error {
	flipped, err := s.repo.CompletePayment(ctx, transactionID, time.Now())
	if err != nil {
		return fmt.Errorf("completing rent payment: %w", err)
	}

	if flipped {
		return nil
	}

	rec, err := s.repo.GetPayment(ctx, transactionID)
	if err != nil {
		return err
	}

	if rec.Status != PaymentCompleted {
		return fmt.Errorf("rent payment %s is %s, not completable", rec.ID, rec.Status)
	}

	return nil
}

// FailPaymentRecord stores the gateway's failure reason on the pending
// history entry. The lease itself is untouched.
func (s *Service) FailPaymentRecord(ctx context.Context, transactionID, reason string) error {
	if _, err := s.repo.FailPayment(ctx, transactionID, reason); err != nil {
		return fmt.Errorf("failing rent payment: %w", err)
	}

	return nil
}

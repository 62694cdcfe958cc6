package partnership

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=partnership
type Repository interface {
	CreatePartnership(ctx context.Context, p *Partnership) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Partnership, error)

	// Activate flips a pending partnership to active. Returns false when the
	// row was not pending anymore.
	Activate(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error)
	MarkInactive(ctx context.Context, id uuid.UUID, reason string) error

	ListActive(ctx context.Context) ([]*Partnership, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreatePending writes the partnership row that the fee payment will later
// activate.
func (s *Service) CreatePending(ctx context.Context, partnerID uuid.UUID, pType Type, name string, fee int64, transactionID string) (*Partnership, error) {
	p := &Partnership{
		PartnerID:     partnerID,
		Type:          pType,
		Name:          name,
		Fee:           fee,
		Status:        StatusPending,
		TransactionID: transactionID,
	}

	if err := s.repo.CreatePartnership(ctx, p); err != nil {
		return nil, fmt.Errorf("creating pending partnership: %w", err)
	}

	return p, nil
}

func (s *Service) ListActive(ctx context.Context) ([]*Partnership, error) {
	return s.repo.ListActive(ctx)
}

// Activate applies a settled fee payment for a one-year term. Replays
// against an already active partnership are no-ops.
func (s *Service) Activate(ctx context.Context, transactionID string) error {
	p, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}

	if p.Status == StatusActive {
		return nil
	}

	start := time.Now()

	flipped, err := s.repo.Activate(ctx, p.ID, start, start.AddDate(1, 0, 0))
	if err != nil {
		return fmt.Errorf("activating partnership: %w", err)
	}

	if !flipped {
		current, err := s.repo.GetByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}

		if current.Status != StatusActive {
			return fmt.Errorf("partnership %s is %s, not activatable", current.ID, current.Status)
		}
	}

	return nil
}

// Fail marks the pending partnership inactive with the gateway's reason.
func (s *Service) Fail(ctx context.Context, transactionID, reason string) error {
	p, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}

	if p.Status != StatusPending {
		return nil
	}

	return s.repo.MarkInactive(ctx, p.ID, reason)
}

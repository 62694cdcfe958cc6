package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=membership
type Repository interface {
	CreateMembership(ctx context.Context, m *Membership) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Membership, error)
	ActiveForUser(ctx context.Context, userID uuid.UUID) (*Membership, error)

	// Activate flips a pending membership to active/paid. Returns false when
	// the row was not pending anymore.
	Activate(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error)
	DeactivateOthers(ctx context.Context, userID, keep uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// UserLinker records the user's current membership on the user row.
type UserLinker interface {
	SetMembership(ctx context.Context, userID, membershipID uuid.UUID) error
}

type Service struct {
	repo  Repository
	users UserLinker
}

func NewService(repo Repository, users UserLinker) *Service {
	return &Service{repo: repo, users: users}
}

// ActiveForUser returns the user's active membership, or ErrNotFound.
func (s *Service) ActiveForUser(ctx context.Context, userID uuid.UUID) (*Membership, error) {
	return s.repo.ActiveForUser(ctx, userID)
}

// CreatePending writes the inactive membership row that an upgrade payment
// will later activate.
func (s *Service) CreatePending(ctx context.Context, userID uuid.UUID, plan Plan, transactionID string) (*Membership, error) {
	now := time.Now()
	m := &Membership{
		UserID:        userID,
		Plan:          plan.Name,
		Price:         plan.Price,
		StartDate:     now,
		EndDate:       now.Add(plan.Term),
		Features:      plan.Features,
		IsActive:      false,
		PaymentStatus: PaymentPending,
		TransactionID: &transactionID,
	}

	if err := s.repo.CreateMembership(ctx, m); err != nil {
		return nil, fmt.Errorf("creating pending membership: %w", err)
	}

	return m, nil
}

// ActivatePaid applies a settled upgrade payment: any other active
// membership for the user is deactivated first, the pending one becomes
// active and paid, and the user row is pointed at it. Re-running against an
// already activated membership is a no-op.
func (s *Service) ActivatePaid(ctx context.Context, transactionID string) error {
	m, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}

	if m.IsActive && m.PaymentStatus == PaymentPaid {
		return nil
	}

	if err := s.repo.DeactivateOthers(ctx, m.UserID, m.ID); err != nil {
		return fmt.Errorf("deactivating previous memberships: %w", err)
	}

	plan, ok := PlanByName(m.Plan)
	if !ok {
		return fmt.Errorf("membership %s has unknown plan %q", m.ID, m.Plan)
	}

	now := time.Now()

	flipped, err := s.repo.Activate(ctx, m.ID, now, now.Add(plan.Term))
	if err != nil {
		return fmt.Errorf("activating membership: %w", err)
	}

	if !flipped {
		// Lost a race with another activation of the same row; the link
		// below still converges.
		current, err := s.repo.GetByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}

		if current.PaymentStatus != PaymentPaid {
			return errors.New("membership is not pending and not paid")
		}
	}

	if err := s.users.SetMembership(ctx, m.UserID, m.ID); err != nil {
		return fmt.Errorf("linking membership to user: %w", err)
	}

	return nil
}

// FailPending marks the pending membership as failed with the gateway's
// reason.
func (s *Service) FailPending(ctx context.Context, transactionID, reason string) error {
	m, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}

	if m.PaymentStatus != PaymentPending {
		return nil
	}

	return s.repo.MarkFailed(ctx, m.ID, reason)
}

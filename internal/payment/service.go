package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/investment"
	"github.com/CharlesOsang017/keja-hook/internal/lease"
	"github.com/CharlesOsang017/keja-hook/internal/membership"
	"github.com/CharlesOsang017/keja-hook/internal/partnership"
	"github.com/CharlesOsang017/keja-hook/internal/property"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=payment
type Ledger interface {
	CreatePayment(ctx context.Context, tx *Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)
	MarkCompleted(ctx context.Context, transactionID, receipt string, settledAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, transactionID, reason string, settledAt time.Time) (bool, error)
	MarkActivated(ctx context.Context, transactionID string) error
	ListUnactivated(ctx context.Context, olderThan time.Duration) ([]*Transaction, error)
	ListPendingOlderThan(ctx context.Context, age time.Duration) ([]*Transaction, error)
}

// Gateway sends push-payment requests and status queries. Implementations
// must not retry; a timeout does not mean the push died, and a failure does
// not mean the callback will never come.
type Gateway interface {
	RequestPush(ctx context.Context, phone string, amount int64, reference, description string) (string, error)
	QueryStatus(ctx context.Context, transactionID string) (StatusResult, error)
}

type Properties interface {
	Get(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

type Memberships interface {
	ActiveForUser(ctx context.Context, userID uuid.UUID) (*membership.Membership, error)
	CreatePending(ctx context.Context, userID uuid.UUID, plan membership.Plan, transactionID string) (*membership.Membership, error)
}

type Investments interface {
	SumActive(ctx context.Context, propertyID uuid.UUID) (int64, error)
	Reserve(ctx context.Context, userID, propertyID uuid.UUID, amount, basePrice int64, transactionID string) (*investment.Investment, error)
}

type Leases interface {
	Get(ctx context.Context, id uuid.UUID) (*lease.Lease, error)
	RecordPendingPayment(ctx context.Context, leaseID uuid.UUID, transactionID string, amount int64) (*lease.PaymentRecord, error)
}

type Partnerships interface {
	CreatePending(ctx context.Context, partnerID uuid.UUID, pType partnership.Type, name string, fee int64, transactionID string) (*partnership.Partnership, error)
}

// Service initiates payments: it validates the business preconditions for
// each purpose, pushes the payment to the gateway, and records the pending
// transaction together with its pending domain aggregate.
type Service struct {
	ledger         Ledger
	gateway        Gateway
	properties     Properties
	memberships    Memberships
	investments    Investments
	leases         Leases
	partnerships   Partnerships
	partnershipFee int64
}

func NewService(
	ledger Ledger,
	gateway Gateway,
	properties Properties,
	memberships Memberships,
	investments Investments,
	leases Leases,
	partnerships Partnerships,
	partnershipFee int64,
) *Service {
	return &Service{
		ledger:         ledger,
		gateway:        gateway,
		properties:     properties,
		memberships:    memberships,
		investments:    investments,
		leases:         leases,
		partnerships:   partnerships,
		partnershipFee: partnershipFee,
	}
}

func accountReference(purpose Purpose, entity, owner string) string {
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(string(purpose)), entity, owner)
}

func (s *Service) record(ctx context.Context, tx *Transaction) error {
	if err := s.ledger.CreatePayment(ctx, tx); err != nil {
		// The push went out but the ledger write failed; a callback for this
		// id will be reported as unknown until operators reconcile it.
		slog.Error("pending payment not recorded after push",
			"transaction_id", tx.TransactionID, "purpose", tx.Purpose, "error", err)

		return fmt.Errorf("recording pending payment: %w", err)
	}

	return nil
}

// InitiateRent starts a rent payment for the lease's monthly rent. Only the
// tenant on the lease may pay.
func (s *Service) InitiateRent(ctx context.Context, userID, leaseID uuid.UUID, phone string) (string, error) {
	l, err := s.leases.Get(ctx, leaseID)
	if err != nil {
		return "", err
	}

	if l.TenantID != userID {
		return "", &PreconditionError{Reason: "only the tenant can pay rent on this lease"}
	}

	if l.Status != lease.StatusActive {
		return "", &PreconditionError{Reason: "lease is not active"}
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	ref := accountReference(PurposeRent, leaseID.String(), userID.String())
	desc := "Monthly rent payment"

	txID, err := s.gateway.RequestPush(ctx, normalized, l.MonthlyRent, ref, desc)
	if err != nil {
		return "", err
	}

	tx := &Transaction{
		TransactionID:    txID,
		Purpose:          PurposeRent,
		OwnerID:          userID,
		LinkedEntityID:   leaseID,
		Amount:           l.MonthlyRent,
		Phone:            normalized,
		AccountReference: ref,
		Description:      desc,
		Status:           StatusPending,
	}
	if err := s.record(ctx, tx); err != nil {
		return "", err
	}

	if _, err := s.leases.RecordPendingPayment(ctx, leaseID, txID, l.MonthlyRent); err != nil {
		slog.Error("pending rent history entry not recorded", "transaction_id", txID, "error", err)
	}

	return txID, nil
}

// InitiatePurchase starts a full property purchase.
func (s *Service) InitiatePurchase(ctx context.Context, userID, propertyID uuid.UUID, phone string) (string, error) {
	p, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return "", err
	}

	if p.ListingType != property.ListingSale || p.Status != property.StatusAvailable {
		return "", &PreconditionError{Reason: "property is not available for purchase"}
	}

	if p.Price <= 0 {
		return "", &PreconditionError{Reason: "property has no sale price"}
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	ref := accountReference(PurposeSale, propertyID.String(), userID.String())
	desc := fmt.Sprintf("Purchase of %s", p.Title)

	txID, err := s.gateway.RequestPush(ctx, normalized, p.Price, ref, desc)
	if err != nil {
		return "", err
	}

	tx := &Transaction{
		TransactionID:    txID,
		Purpose:          PurposeSale,
		OwnerID:          userID,
		LinkedEntityID:   propertyID,
		Amount:           p.Price,
		Phone:            normalized,
		AccountReference: ref,
		Description:      desc,
		Status:           StatusPending,
	}
	if err := s.record(ctx, tx); err != nil {
		return "", err
	}

	return txID, nil
}

// InitiateTokenPurchase starts a purchase of fractional tokens in a
// tokenized property. Requires a paid membership.
func (s *Service) InitiateTokenPurchase(ctx context.Context, userID, propertyID uuid.UUID, tokens int64, phone string) (string, error) {
	if tokens <= 0 {
		return "", &ValidationError{Reason: "token count must be positive"}
	}

	p, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return "", err
	}

	if !p.IsTokenized || p.TokenPrice <= 0 {
		return "", &PreconditionError{Reason: "property is not tokenized"}
	}

	if tokens > p.AvailableTokens {
		return "", &PreconditionError{Reason: "not enough tokens available"}
	}

	if err := s.requirePaidMembership(ctx, userID); err != nil {
		return "", err
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	amount := tokens * p.TokenPrice
	ref := accountReference(PurposeToken, propertyID.String(), userID.String())
	desc := fmt.Sprintf("Purchase of %d tokens in %s", tokens, p.Title)

	txID, err := s.gateway.RequestPush(ctx, normalized, amount, ref, desc)
	if err != nil {
		return "", err
	}

	tx := &Transaction{
		TransactionID:    txID,
		Purpose:          PurposeToken,
		OwnerID:          userID,
		LinkedEntityID:   propertyID,
		Amount:           amount,
		Phone:            normalized,
		AccountReference: ref,
		Description:      desc,
		Status:           StatusPending,
	}
	if err := s.record(ctx, tx); err != nil {
		return "", err
	}

	return txID, nil
}

// InitiateInvestment starts a capital investment in a property. The stake is
// reserved against the property's investment capacity before the pending
// transaction is recorded.
func (s *Service) InitiateInvestment(ctx context.Context, userID, propertyID uuid.UUID, amount int64, phone string) (string, error) {
	if amount <= 0 {
		return "", &ValidationError{Reason: "investment amount must be positive"}
	}

	p, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return "", err
	}

	if err := s.requirePaidMembership(ctx, userID); err != nil {
		return "", err
	}

	// Cheap early check; the authoritative one runs under the property row
	// lock when the reservation is written.
	reserved, err := s.investments.SumActive(ctx, propertyID)
	if err != nil {
		return "", err
	}

	if reserved+amount > p.InvestmentCapacity() {
		return "", &PreconditionError{Reason: "investment exceeds the property's remaining capacity"}
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	ref := accountReference(PurposeInvestment, propertyID.String(), userID.String())
	desc := fmt.Sprintf("Investment in %s", p.Title)

	txID, err := s.gateway.RequestPush(ctx, normalized, amount, ref, desc)
	if err != nil {
		return "", err
	}

	inv, err := s.investments.Reserve(ctx, userID, propertyID, amount, p.BasePrice(), txID)
	if err != nil {
		if errors.Is(err, investment.ErrCapacityExceeded) {
			return "", &PreconditionError{Reason: "investment exceeds the property's remaining capacity"}
		}

		return "", err
	}

	tx := &Transaction{
		TransactionID:    txID,
		Purpose:          PurposeInvestment,
		OwnerID:          userID,
		LinkedEntityID:   inv.ID,
		Amount:           amount,
		Phone:            normalized,
		AccountReference: ref,
		Description:      desc,
		Status:           StatusPending,
	}
	if err := s.record(ctx, tx); err != nil {
		return "", err
	}

	return txID, nil
}

// InitiateMembershipUpgrade starts an upgrade to one of the paid plans.
func (s *Service) InitiateMembershipUpgrade(ctx context.Context, userID uuid.UUID, planName, phone string) (string, error) {
	plan, ok := membership.PlanByName(planName)
	if !ok || plan.Price == 0 {
		return "", &ValidationError{Reason: "invalid membership plan selected"}
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	ref := accountReference(PurposeMembership, plan.Name, userID.String())
	desc := fmt.Sprintf("Upgrade to %s plan", plan.Name)

	txID, err := s.gateway.RequestPush(ctx, normalized, plan.Price, ref, desc)
	if err != nil {
		return "", err
	}

	m, err := s.memberships.CreatePending(ctx, userID, plan, txID)
	if err != nil {
		return "", err
	}

	tx := &Transaction{
		TransactionID:    txID,
		Purpose:          PurposeMembership,
		OwnerID:          userID,
		LinkedEntityID:   m.ID,
		Amount:           plan.Price,
		Phone:            normalized,
		AccountReference: ref,
		Description:      desc,
		Status:           StatusPending,
	}
	if err := s.record(ctx, tx); err != nil {
		return "", err
	}

	return txID, nil
}

// InitiatePartnership starts a partnership fee payment. Only investors and
// admins may register partnerships.
func (s *Service) InitiatePartnership(ctx context.Context, userID uuid.UUID, role string, pType partnership.Type, name, phone string) (string, error) {
	if role != "investor" && role != "admin" {
		return "", &PreconditionError{Reason: "only investors can register partnerships"}
	}

	if name == "" {
		return "", &ValidationError{Reason: "partnership name is required"}
	}

	if !partnership.ValidType(pType) {
		return "", &ValidationError{Reason: "invalid partnership type"}
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	ref := accountReference(PurposePartnership, name, userID.String())
	desc := fmt.Sprintf("Partnership: %s", name)

	txID, err := s.gateway.RequestPush(ctx, normalized, s.partnershipFee, ref, desc)
	if err != nil {
		return "", err
	}

	p, err := s.partnerships.CreatePending(ctx, userID, pType, name, s.partnershipFee, txID)
	if err != nil {
		return "", err
	}

	tx := &Transaction{
		TransactionID:    txID,
		Purpose:          PurposePartnership,
		OwnerID:          userID,
		LinkedEntityID:   p.ID,
		Amount:           s.partnershipFee,
		Phone:            normalized,
		AccountReference: ref,
		Description:      desc,
		Status:           StatusPending,
	}
	if err := s.record(ctx, tx); err != nil {
		return "", err
	}

	return txID, nil
}

func (s *Service) requirePaidMembership(ctx context.Context, userID uuid.UUID) error {
	m, err := s.memberships.ActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, membership.ErrNotFound) {
			return &PreconditionError{Reason: "an active membership is required"}
		}

		return err
	}

	if !membership.CanTransact(m.Plan) {
		return &PreconditionError{Reason: "a paid membership plan is required"}
	}

	return nil
}

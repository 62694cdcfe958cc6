// Package activation wires the per-purpose downstream effects of settled
// payments onto the domain services. Each dispatcher translates a ledger
// transaction into its aggregate's mutation and maps domain conflicts to
// the inconsistent-state error the reconciler reports to operators.
package activation

import (
	"context"
	"errors"

	"github.com/CharlesOsang017/keja-hook/internal/investment"
	"github.com/CharlesOsang017/keja-hook/internal/lease"
	"github.com/CharlesOsang017/keja-hook/internal/membership"
	"github.com/CharlesOsang017/keja-hook/internal/partnership"
	"github.com/CharlesOsang017/keja-hook/internal/payment"
	"github.com/CharlesOsang017/keja-hook/internal/property"
)

// Registry builds the dispatcher table the reconciler routes settled
// payments through.
func Registry(
	memberships *membership.Service,
	investments *investment.Service,
	properties *property.Service,
	leases *lease.Service,
	partnerships *partnership.Service,
) map[payment.Purpose]payment.Dispatcher {
	return map[payment.Purpose]payment.Dispatcher{
		payment.PurposeMembership:  &membershipDispatcher{svc: memberships},
		payment.PurposeInvestment:  &investmentDispatcher{svc: investments},
		payment.PurposeToken:       &tokenDispatcher{svc: properties},
		payment.PurposeSale:        &saleDispatcher{svc: properties},
		payment.PurposeRent:        &rentDispatcher{svc: leases},
		payment.PurposePartnership: &partnershipDispatcher{svc: partnerships},
	}
}

func inconsistent(tx *payment.Transaction, err error) error {
	return &payment.InconsistentStateError{
		Purpose:       tx.Purpose,
		TransactionID: tx.TransactionID,
		Reason:        err.Error(),
	}
}

type membershipDispatcher struct {
	svc *membership.Service
}

func (d *membershipDispatcher) Activate(ctx context.Context, tx *payment.Transaction) error {
	if err := d.svc.ActivatePaid(ctx, tx.TransactionID); err != nil {
		if errors.Is(err, membership.ErrNotFound) {
			return inconsistent(tx, err)
		}

		return err
	}

	return nil
}

func (d *membershipDispatcher) Fail(ctx context.Context, tx *payment.Transaction, reason string) error {
	return d.svc.FailPending(ctx, tx.TransactionID, reason)
}

type investmentDispatcher struct {
	svc *investment.Service
}

func (d *investmentDispatcher) Activate(ctx context.Context, tx *payment.Transaction) error {
	if err := d.svc.Confirm(ctx, tx.TransactionID); err != nil {
		if errors.Is(err, investment.ErrNotFound) {
			return inconsistent(tx, err)
		}

		return err
	}

	return nil
}

func (d *investmentDispatcher) Fail(ctx context.Context, tx *payment.Transaction, reason string) error {
	return d.svc.Fail(ctx, tx.TransactionID, reason)
}

type tokenDispatcher struct {
	svc *property.Service
}

func (d *tokenDispatcher) Activate(ctx context.Context, tx *payment.Transaction) error {
	var receipt string
	if tx.ReceiptNumber != nil {
		receipt = *tx.ReceiptNumber
	}

	err := d.svc.MintTokens(ctx, tx.LinkedEntityID, tx.OwnerID, tx.TransactionID, tx.Amount, receipt)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) || errors.Is(err, property.ErrConflict) {
			return inconsistent(tx, err)
		}

		return err
	}

	return nil
}

func (d *tokenDispatcher) Fail(ctx context.Context, tx *payment.Transaction, reason string) error {
	// No pending aggregate; tokens are only minted on success.
	return nil
}

type saleDispatcher struct {
	svc *property.Service
}

func (d *saleDispatcher) Activate(ctx context.Context, tx *payment.Transaction) error {
	if err := d.svc.ConfirmSale(ctx, tx.LinkedEntityID, tx.TransactionID); err != nil {
		if errors.Is(err, property.ErrNotFound) || errors.Is(err, property.ErrConflict) {
			return inconsistent(tx, err)
		}

		return err
	}

	return nil
}

func (d *saleDispatcher) Fail(ctx context.Context, tx *payment.Transaction, reason string) error {
	return nil
}

type rentDispatcher struct {
	svc *lease.Service
}

func (d *rentDispatcher) Activate(ctx context.Context, tx *payment.Transaction) error {
	if err := d.svc.ConfirmPayment(ctx, tx.TransactionID); err != nil {
		if errors.Is(err, lease.ErrPaymentNotFound) {
			return inconsistent(tx, err)
		}

		return err
	}

	return nil
}

func (d *rentDispatcher) Fail(ctx context.Context, tx *payment.Transaction, reason string) error {
	return d.svc.FailPaymentRecord(ctx, tx.TransactionID, reason)
}

type partnershipDispatcher struct {
	svc *partnership.Service
}

func (d *partnershipDispatcher) Activate(ctx context.Context, tx *payment.Transaction) error {
	if err := d.svc.Activate(ctx, tx.TransactionID); err != nil {
		if errors.Is(err, partnership.ErrNotFound) {
			return inconsistent(tx, err)
		}

		return err
	}

	return nil
}

func (d *partnershipDispatcher) Fail(ctx context.Context, tx *payment.Transaction, reason string) error {
	return d.svc.Fail(ctx, tx.TransactionID, reason)
}

package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

//go:generate mockgen -source=reconcile.go -destination=reconcile_mock.go -package=payment

// Dispatcher applies the downstream effect of one settled payment purpose.
// Activate must tolerate replays: re-running against an already activated
// aggregate is a no-op.
type Dispatcher interface {
	Activate(ctx context.Context, tx *Transaction) error
	// Fail settles the purpose's pending aggregate mirror when the payment
	// definitively failed.
	Fail(ctx context.Context, tx *Transaction, reason string) error
}

// Notifier delivers best-effort settlement notices. Implementations log
// their own failures; reconciliation never depends on them.
type Notifier interface {
	PaymentSettled(ctx context.Context, tx *Transaction)
}

// VerifyResult is what the verification endpoint reports back to a polling
// client.
type VerifyResult struct {
	TransactionID string
	Status        Status
	Receipt       *string
	FailureReason *string
	// Pending distinguishes "gateway still processing" from a terminal
	// status.
	Pending bool
}

// Reconciler converges callbacks and polls onto one settlement path. The
// idempotency gate is the ledger's conditional status write: whichever
// caller flips pending to terminal runs the dispatcher, everyone else reads
// the stored outcome.
type Reconciler struct {
	ledger      Ledger
	gateway     Gateway
	dispatchers map[Purpose]Dispatcher
	notifier    Notifier
}

func NewReconciler(ledger Ledger, gateway Gateway, dispatchers map[Purpose]Dispatcher, notifier Notifier) *Reconciler {
	return &Reconciler{
		ledger:      ledger,
		gateway:     gateway,
		dispatchers: dispatchers,
		notifier:    notifier,
	}
}

// HandleCallback settles a transaction from a gateway webhook. Unknown
// transaction ids return ErrNotFound; the HTTP layer still acknowledges
// those so the gateway stops retrying.
func (r *Reconciler) HandleCallback(ctx context.Context, res GatewayResult) error {
	tx, err := r.ledger.GetByTransactionID(ctx, res.TransactionID)
	if err != nil {
		return err
	}

	if tx.Terminal() {
		// Duplicate delivery; the first one already settled the row.
		return nil
	}

	_, err = r.settle(ctx, tx, res.ResultCode, res.ResultDesc, res.Receipt)

	return err
}

// Verify reports the transaction's settlement state to a polling client.
// A still-pending transaction is checked against the gateway and settled
// inline when the gateway already knows the outcome.
func (r *Reconciler) Verify(ctx context.Context, transactionID string) (*VerifyResult, error) {
	tx, err := r.ledger.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if tx.Terminal() {
		return verifyResult(tx), nil
	}

	status, err := r.gateway.QueryStatus(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if status.Pending {
		return &VerifyResult{TransactionID: transactionID, Status: StatusPending, Pending: true}, nil
	}

	settled, err := r.settle(ctx, tx, status.ResultCode, status.ResultDesc, status.Receipt)
	if err != nil {
		return verifyResult(settled), err
	}

	return verifyResult(settled), nil
}

func verifyResult(tx *Transaction) *VerifyResult {
	if tx == nil {
		return nil
	}

	return &VerifyResult{
		TransactionID: tx.TransactionID,
		Status:        tx.Status,
		Receipt:       tx.ReceiptNumber,
		FailureReason: tx.FailureReason,
		Pending:       tx.Status == StatusPending,
	}
}

// settle performs the one-shot transition and, for successes, runs the
// purpose's dispatcher. The conditional ledger write decides the race; the
// loser re-reads and returns the stored terminal row untouched.
func (r *Reconciler) settle(ctx context.Context, tx *Transaction, resultCode int, resultDesc, receipt string) (*Transaction, error) {
	now := time.Now()

	if resultCode != 0 {
		won, err := r.ledger.MarkFailed(ctx, tx.TransactionID, resultDesc, now)
		if err != nil {
			return tx, err
		}

		if !won {
			return r.reload(ctx, tx.TransactionID)
		}

		tx.Status = StatusFailed
		tx.FailureReason = &resultDesc
		tx.SettledAt = &now

		if d, ok := r.dispatchers[tx.Purpose]; ok {
			if err := d.Fail(ctx, tx, resultDesc); err != nil {
				slog.Error("failure mirror not applied",
					"transaction_id", tx.TransactionID, "purpose", tx.Purpose, "error", err)
			}
		}

		r.notify(ctx, tx)

		return tx, nil
	}

	won, err := r.ledger.MarkCompleted(ctx, tx.TransactionID, receipt, now)
	if err != nil {
		return tx, err
	}

	if !won {
		return r.reload(ctx, tx.TransactionID)
	}

	tx.Status = StatusCompleted
	tx.ReceiptNumber = &receipt
	tx.SettledAt = &now

	if err := r.dispatch(ctx, tx); err != nil {
		// The money moved; the transaction stays completed and the repair
		// pass retries activation.
		slog.Error("activation failed for settled payment",
			"transaction_id", tx.TransactionID, "purpose", tx.Purpose, "error", err)

		return tx, err
	}

	r.notify(ctx, tx)

	return tx, nil
}

func (r *Reconciler) dispatch(ctx context.Context, tx *Transaction) error {
	d, ok := r.dispatchers[tx.Purpose]
	if !ok {
		return &InconsistentStateError{
			Purpose:       tx.Purpose,
			TransactionID: tx.TransactionID,
			Reason:        "no dispatcher registered",
		}
	}

	if err := d.Activate(ctx, tx); err != nil {
		return err
	}

	if err := r.ledger.MarkActivated(ctx, tx.TransactionID); err != nil {
		return fmt.Errorf("recording activation: %w", err)
	}

	return nil
}

func (r *Reconciler) reload(ctx context.Context, transactionID string) (*Transaction, error) {
	tx, err := r.ledger.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// notify hands the settled transaction to the notifier on its own goroutine.
// Delivery retries can take tens of seconds and must never hold up the
// callback acknowledgement, so settlement returns without waiting on it.
func (r *Reconciler) notify(ctx context.Context, tx *Transaction) {
	if r.notifier == nil {
		return
	}

	go r.notifier.PaymentSettled(context.WithoutCancel(ctx), tx)
}

package payment

import (
	"context"
	"log/slog"
	"time"
)

// RepairJob periodically re-runs activation for settled payments whose
// dispatcher failed, and polls the gateway for pending payments whose
// callback appears lost.
type RepairJob struct {
	ledger     Ledger
	reconciler *Reconciler
	interval   time.Duration
	pollAge    time.Duration
}

func NewRepairJob(ledger Ledger, reconciler *Reconciler, interval, pollAge time.Duration) *RepairJob {
	return &RepairJob{
		ledger:     ledger,
		reconciler: reconciler,
		interval:   interval,
		pollAge:    pollAge,
	}
}

func (j *RepairJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce performs one repair pass. Errors are logged per transaction and
// never abort the sweep.
func (j *RepairJob) RunOnce(ctx context.Context) {
	j.redispatch(ctx)
	j.pollStale(ctx)
}

func (j *RepairJob) redispatch(ctx context.Context) {
	txs, err := j.ledger.ListUnactivated(ctx, j.interval)
	if err != nil {
		slog.Error("listing unactivated payments", "error", err)
		return
	}

	for _, tx := range txs {
		if err := j.reconciler.dispatch(ctx, tx); err != nil {
			slog.Error("repair dispatch failed",
				"transaction_id", tx.TransactionID, "purpose", tx.Purpose, "error", err)
			continue
		}

		slog.Info("repaired activation", "transaction_id", tx.TransactionID, "purpose", tx.Purpose)
	}
}

func (j *RepairJob) pollStale(ctx context.Context) {
	txs, err := j.ledger.ListPendingOlderThan(ctx, j.pollAge)
	if err != nil {
		slog.Error("listing stale pending payments", "error", err)
		return
	}

	for _, tx := range txs {
		res, err := j.reconciler.Verify(ctx, tx.TransactionID)
		if err != nil {
			slog.Error("polling stale payment",
				"transaction_id", tx.TransactionID, "error", err)
			continue
		}

		if !res.Pending {
			slog.Info("settled stale payment by poll",
				"transaction_id", tx.TransactionID, "status", res.Status)
		}
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CharlesOsang017/keja-hook/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectPaymentColumns = `
	id, transaction_id, purpose, owner_id, linked_entity_id, amount, phone,
	account_reference, description, status, receipt_number, failure_reason,
	created_at, settled_at, activated_at
`

func scanPayment(s scanner) (*payment.Transaction, error) {
	var tx payment.Transaction

	var purposeStr, statusStr string

	if err := s.Scan(
		&tx.ID, &tx.TransactionID, &purposeStr, &tx.OwnerID, &tx.LinkedEntityID,
		&tx.Amount, &tx.Phone, &tx.AccountReference, &tx.Description,
		&statusStr, &tx.ReceiptNumber, &tx.FailureReason,
		&tx.CreatedAt, &tx.SettledAt, &tx.ActivatedAt,
	); err != nil {
		return nil, err
	}

	tx.Purpose = payment.Purpose(purposeStr)
	tx.Status = payment.Status(statusStr)

	return &tx, nil
}

func (s *Store) CreatePayment(ctx context.Context, tx *payment.Transaction) error {
	query := `
		INSERT INTO payments (transaction_id, purpose, owner_id, linked_entity_id, amount, phone, account_reference, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.TransactionID,
		tx.Purpose,
		tx.OwnerID,
		tx.LinkedEntityID,
		tx.Amount,
		tx.Phone,
		tx.AccountReference,
		tx.Description,
		tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) GetByTransactionID(ctx context.Context, transactionID string) (*payment.Transaction, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE transaction_id = $1`

	tx, err := scanPayment(s.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return tx, nil
}

// MarkCompleted is the idempotency gate: a single conditional write that
// only the first settlement attempt wins. Callback and poll race on this
// row, never on application state.
func (s *Store) MarkCompleted(ctx context.Context, transactionID, receipt string, settledAt time.Time) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'completed', receipt_number = $2, settled_at = $3
		WHERE transaction_id = $1 AND status = 'pending'
	`

	res, err := s.db.ExecContext(ctx, query, transactionID, receipt, settledAt)
	if err != nil {
		return false, fmt.Errorf("completing payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("completing payment: %w", err)
	}

	return affected == 1, nil
}

func (s *Store) MarkFailed(ctx context.Context, transactionID, reason string, settledAt time.Time) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'failed', failure_reason = $2, settled_at = $3
		WHERE transaction_id = $1 AND status = 'pending'
	`

	res, err := s.db.ExecContext(ctx, query, transactionID, reason, settledAt)
	if err != nil {
		return false, fmt.Errorf("failing payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failing payment: %w", err)
	}

	return affected == 1, nil
}

func (s *Store) MarkActivated(ctx context.Context, transactionID string) error {
	query := `
		UPDATE payments
		SET activated_at = NOW()
		WHERE transaction_id = $1 AND status = 'completed' AND activated_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, transactionID); err != nil {
		return fmt.Errorf("marking payment activated: %w", err)
	}

	return nil
}

// ListUnactivated returns completed payments whose activation has not been
// recorded, the feed for the repair pass.
func (s *Store) ListUnactivated(ctx context.Context, olderThan time.Duration) ([]*payment.Transaction, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments
		WHERE status = 'completed' AND activated_at IS NULL AND settled_at <= $1
		ORDER BY settled_at ASC`

	return s.listPayments(ctx, query, time.Now().Add(-olderThan))
}

// ListPendingOlderThan returns pending payments old enough that the callback
// has probably been lost, the feed for the poll sweep.
func (s *Store) ListPendingOlderThan(ctx context.Context, age time.Duration) ([]*payment.Transaction, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments
		WHERE status = 'pending' AND created_at <= $1
		ORDER BY created_at ASC`

	return s.listPayments(ctx, query, time.Now().Add(-age))
}

func (s *Store) listPayments(ctx context.Context, query string, args ...any) ([]*payment.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var txs []*payment.Transaction

	for rows.Next() {
		tx, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return txs, nil
}

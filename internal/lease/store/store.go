package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/lease"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) GetLease(ctx context.Context, id uuid.UUID) (*lease.Lease, error) {
	query := `
		SELECT id, property_id, landlord_id, tenant_id, start_date, end_date,
		       monthly_rent, payment_due_day, status, terms, created_at
		FROM leases
		WHERE id = $1
	`

	var l lease.Lease

	var statusStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.PropertyID, &l.LandlordID, &l.TenantID, &l.StartDate,
		&l.EndDate, &l.MonthlyRent, &l.PaymentDueDay, &statusStr, &l.Terms,
		&l.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, lease.ErrNotFound
		}

		return nil, fmt.Errorf("getting lease: %w", err)
	}

	l.Status = lease.Status(statusStr)

	return &l, nil
}

const selectPaymentColumns = `
	id, lease_id, transaction_id, amount, status, failure_reason, paid_at, created_at
`

func scanPayment(s scanner) (*lease.PaymentRecord, error) {
	var rec lease.PaymentRecord

	var statusStr string

	if err := s.Scan(
		&rec.ID, &rec.LeaseID, &rec.TransactionID, &rec.Amount, &statusStr,
		&rec.FailureReason, &rec.PaidAt, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	rec.Status = lease.PaymentStatus(statusStr)

	return &rec, nil
}

func (s *Store) AppendPayment(ctx context.Context, rec *lease.PaymentRecord) error {
	query := `
		INSERT INTO lease_payments (lease_id, transaction_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.LeaseID,
		rec.TransactionID,
		rec.Amount,
		rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending lease payment: %w", err)
	}

	return nil
}

func (s *Store) GetPayment(ctx context.Context, transactionID string) (*lease.PaymentRecord, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM lease_payments WHERE transaction_id = $1`

	rec, err := scanPayment(s.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, lease.ErrPaymentNotFound
		}

		return nil, fmt.Errorf("getting lease payment: %w", err)
	}

	return rec, nil
}

func (s *Store) CompletePayment(ctx context.Context, transactionID string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE lease_payments
		SET status = 'completed', paid_at = $2
		WHERE transaction_id = $1 AND status = 'pending'
	`

	res, err := s.db.ExecContext(ctx, query, transactionID, paidAt)
	if err != nil {
		return false, fmt.Errorf("completing lease payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("completing lease payment: %w", err)
	}

	return affected == 1, nil
}

func (s *Store) FailPayment(ctx context.Context, transactionID, reason string) (bool, error) {
	query := `
		UPDATE lease_payments
		SET status = 'failed', failure_reason = $2
		WHERE transaction_id = $1 AND status = 'pending'
	`

	res, err := s.db.ExecContext(ctx, query, transactionID, reason)
	if err != nil {
		return false, fmt.Errorf("failing lease payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failing lease payment: %w", err)
	}

	return affected == 1, nil
}

func (s *Store) ListPayments(ctx context.Context, leaseID uuid.UUID) ([]*lease.PaymentRecord, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM lease_payments
		WHERE lease_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, leaseID)
	if err != nil {
		return nil, fmt.Errorf("listing lease payments: %w", err)
	}
	defer rows.Close()

	var recs []*lease.PaymentRecord

	for rows.Next() {
		rec, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lease payment: %w", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lease payments: %w", err)
	}

	return recs, nil
}

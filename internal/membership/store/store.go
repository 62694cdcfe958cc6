package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/membership"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// featureList maps plan features onto a comma separated text column.
type featureList []string

func (f featureList) Value() (driver.Value, error) {
	return strings.Join(f, ","), nil
}

func (f *featureList) Scan(src any) error {
	var raw string

	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported features type %T", src)
	}

	if raw == "" {
		*f = nil
		return nil
	}

	*f = strings.Split(raw, ",")

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectMembershipColumns = `
	id, user_id, plan, price, start_date, end_date, features, is_active,
	payment_status, transaction_id, failure_reason, created_at
`

func scanMembership(s scanner) (*membership.Membership, error) {
	var m membership.Membership

	var statusStr string

	var features []string

	if err := s.Scan(
		&m.ID, &m.UserID, &m.Plan, &m.Price, &m.StartDate, &m.EndDate,
		(*featureList)(&features), &m.IsActive,
		&statusStr, &m.TransactionID, &m.FailureReason, &m.CreatedAt,
	); err != nil {
		return nil, err
	}

	m.PaymentStatus = membership.PaymentStatus(statusStr)
	m.Features = features

	return &m, nil
}

func (s *Store) CreateMembership(ctx context.Context, m *membership.Membership) error {
	query := `
		INSERT INTO memberships (user_id, plan, price, start_date, end_date, features, is_active, payment_status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.UserID,
		m.Plan,
		m.Price,
		m.StartDate,
		m.EndDate,
		featureList(m.Features),
		m.IsActive,
		m.PaymentStatus,
		m.TransactionID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating membership: %w", err)
	}

	return nil
}

func (s *Store) GetByTransactionID(ctx context.Context, transactionID string) (*membership.Membership, error) {
	query := `SELECT ` + selectMembershipColumns + ` FROM memberships WHERE transaction_id = $1`

	m, err := scanMembership(s.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, membership.ErrNotFound
		}

		return nil, fmt.Errorf("getting membership: %w", err)
	}

	return m, nil
}

func (s *Store) ActiveForUser(ctx context.Context, userID uuid.UUID) (*membership.Membership, error) {
	query := `SELECT ` + selectMembershipColumns + `
		FROM memberships
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1`

	m, err := scanMembership(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, membership.ErrNotFound
		}

		return nil, fmt.Errorf("getting active membership: %w", err)
	}

	return m, nil
}

// Activate is a single conditional write so concurrent activations of the
// same row cannot both apply.
func (s *Store) Activate(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		UPDATE memberships
		SET is_active = TRUE, payment_status = 'paid', start_date = $2, end_date = $3
		WHERE id = $1 AND payment_status = 'pending'
	`

	res, err := s.db.ExecContext(ctx, query, id, start, end)
	if err != nil {
		return false, fmt.Errorf("activating membership: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("activating membership: %w", err)
	}

	return affected == 1, nil
}

func (s *Store) DeactivateOthers(ctx context.Context, userID, keep uuid.UUID) error {
	query := `
		UPDATE memberships
		SET is_active = FALSE
		WHERE user_id = $1 AND id <> $2 AND is_active = TRUE
	`

	if _, err := s.db.ExecContext(ctx, query, userID, keep); err != nil {
		return fmt.Errorf("deactivating memberships: %w", err)
	}

	return nil
}

func (s *Store) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE memberships
		SET payment_status = 'failed', failure_reason = $2
		WHERE id = $1 AND payment_status = 'pending'
	`

	if _, err := s.db.ExecContext(ctx, query, id, reason); err != nil {
		return fmt.Errorf("failing membership: %w", err)
	}

	return nil
}

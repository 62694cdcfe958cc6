package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/partnership"
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

const selectPartnershipColumns = `
	id, partner_id, type, name, fee, status, start_date, end_date,
	transaction_id, failure_reason, created_at
`

func scanPartnership(s scanner) (*partnership.Partnership, error) {
	var p partnership.Partnership

	var typeStr, statusStr string

	if err := s.Scan(
		&p.ID, &p.PartnerID, &typeStr, &p.Name, &p.Fee, &statusStr,
		&p.StartDate, &p.EndDate, &p.TransactionID, &p.FailureReason,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = partnership.Type(typeStr)
	p.Status = partnership.Status(statusStr)

	return &p, nil
}

func (s *Store) CreatePartnership(ctx context.Context, p *partnership.Partnership) error {
	query := `
		INSERT INTO partnerships (partner_id, type, name, fee, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.PartnerID,
		p.Type,
		p.Name,
		p.Fee,
		p.Status,
		p.TransactionID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating partnership: %w", err)
	}

	return nil
}

func (s *Store) GetByTransactionID(ctx context.Context, transactionID string) (*partnership.Partnership, error) {
	query := `SELECT ` + selectPartnershipColumns + ` FROM partnerships WHERE transaction_id = $1`

	p, err := scanPartnership(s.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, partnership.ErrNotFound
		}

		return nil, fmt.Errorf("getting partnership: %w", err)
	}

	return p, nil
}

func (s *Store) Activate(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		UPDATE partnerships
		SET status = 'active', start_date = $2, end_date = $3
		WHERE id = $1 AND status = 'pending'
	`

	res, err := s.db.ExecContext(ctx, query, id, start, end)
	if err != nil {
		return false, fmt.Errorf("activating partnership: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("activating partnership: %w", err)
	}

	return affected == 1, nil
}

func (s *Store) MarkInactive(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE partnerships
		SET status = 'inactive', failure_reason = $2
		WHERE id = $1 AND status = 'pending'
	`

	if _, err := s.db.ExecContext(ctx, query, id, reason); err != nil {
		return fmt.Errorf("deactivating partnership: %w", err)
	}

	return nil
}

func (s *Store) ListActive(ctx context.Context) ([]*partnership.Partnership, error) {
	query := `SELECT ` + selectPartnershipColumns + `
		FROM partnerships
		WHERE status = 'active'
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing partnerships: %w", err)
	}
	defer rows.Close()

	var ps []*partnership.Partnership

	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning partnership: %w", err)
		}

		ps = append(ps, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating partnerships: %w", err)
	}

	return ps, nil
}

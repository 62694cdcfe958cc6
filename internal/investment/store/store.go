package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/investment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectInvestmentColumns = `
	id, user_id, property_id, amount, return_rate, maturity_date, status,
	transaction_id, failure_reason, created_at
`

func scanInvestment(row *sql.Row) (*investment.Investment, error) {
	var inv investment.Investment

	var statusStr string

	if err := row.Scan(
		&inv.ID, &inv.UserID, &inv.PropertyID, &inv.Amount, &inv.ReturnRate,
		&inv.MaturityDate, &statusStr, &inv.TransactionID, &inv.FailureReason,
		&inv.CreatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = investment.Status(statusStr)

	return &inv, nil
}

// ReservePending inserts the pending investment under the property row lock
// so concurrent reservations cannot jointly overshoot the capacity.
func (s *Store) ReservePending(ctx context.Context, inv *investment.Investment) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reservation: %w", err)
	}
	defer dbTx.Rollback()

	var capacity int64
	if err := dbTx.QueryRowContext(ctx, `
		SELECT COALESCE(max_investment_capacity, (CASE WHEN price > 0 THEN price ELSE rental_price END) / 2)
		FROM properties
		WHERE id = $1
		FOR UPDATE
	`, inv.PropertyID).Scan(&capacity); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("property %s: not found", inv.PropertyID)
		}

		return fmt.Errorf("locking property: %w", err)
	}

	var reserved int64
	if err := dbTx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM investments
		WHERE property_id = $1 AND status IN ('pending', 'confirmed')
	`, inv.PropertyID).Scan(&reserved); err != nil {
		return fmt.Errorf("summing investments: %w", err)
	}

	if reserved+inv.Amount > capacity {
		return investment.ErrCapacityExceeded
	}

	err = dbTx.QueryRowContext(ctx, `
		INSERT INTO investments (user_id, property_id, amount, return_rate, maturity_date, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`,
		inv.UserID,
		inv.PropertyID,
		inv.Amount,
		inv.ReturnRate,
		inv.MaturityDate,
		inv.Status,
		inv.TransactionID,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating investment: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing reservation: %w", err)
	}

	return nil
}

func (s *Store) GetByTransactionID(ctx context.Context, transactionID string) (*investment.Investment, error) {
	query := `SELECT ` + selectInvestmentColumns + ` FROM investments WHERE transaction_id = $1`

	inv, err := scanInvestment(s.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, investment.ErrNotFound
		}

		return nil, fmt.Errorf("getting investment: %w", err)
	}

	return inv, nil
}

func (s *Store) SumActive(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM investments
		WHERE property_id = $1 AND status IN ('pending', 'confirmed')
	`, propertyID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing investments: %w", err)
	}

	return total, nil
}

// ConfirmAndCredit flips the investment and credits the property counter in
// the same database transaction, so a settled stake is counted exactly once.
func (s *Store) ConfirmAndCredit(ctx context.Context, transactionID string) (bool, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning confirmation: %w", err)
	}
	defer dbTx.Rollback()

	var (
		propertyID uuid.UUID
		amount     int64
	)

	err = dbTx.QueryRowContext(ctx, `
		UPDATE investments
		SET status = 'confirmed'
		WHERE transaction_id = $1 AND status = 'pending'
		RETURNING property_id, amount
	`, transactionID).Scan(&propertyID, &amount)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}

		return false, fmt.Errorf("confirming investment: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE properties
		SET total_invested_amount = total_invested_amount + $2
		WHERE id = $1
	`, propertyID, amount); err != nil {
		return false, fmt.Errorf("crediting property: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return false, fmt.Errorf("committing confirmation: %w", err)
	}

	return true, nil
}

func (s *Store) MarkFailed(ctx context.Context, transactionID, reason string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE investments
		SET status = 'failed', failure_reason = $2
		WHERE transaction_id = $1 AND status = 'pending'
	`, transactionID, reason)
	if err != nil {
		return false, fmt.Errorf("failing investment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failing investment: %w", err)
	}

	return affected == 1, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/property"
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

const selectPropertyColumns = `
	id, owner_id, title, description, price, rental_price, location,
	property_type, property_status, listing_type, is_tokenized, total_tokens,
	available_tokens, token_price, max_investment_capacity,
	total_invested_amount, created_at
`

func scanProperty(s scanner) (*property.Property, error) {
	var p property.Property

	var statusStr, listingStr string

	var maxCapacity sql.NullInt64

	if err := s.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Price, &p.RentalPrice,
		&p.Location, &p.PropertyType, &statusStr, &listingStr, &p.IsTokenized,
		&p.TotalTokens, &p.AvailableTokens, &p.TokenPrice, &maxCapacity,
		&p.TotalInvestedAmount, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = property.Status(statusStr)
	p.ListingType = property.ListingType(listingStr)

	if maxCapacity.Valid {
		p.MaxInvestmentCapacity = &maxCapacity.Int64
	}

	return &p, nil
}

func (s *Store) GetProperty(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	query := `SELECT ` + selectPropertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, property.ErrNotFound
		}

		return nil, fmt.Errorf("getting property: %w", err)
	}

	return p, nil
}

// MarkSoldBy is a single conditional write: it succeeds for the transaction
// that sells the property and for replays of that same transaction, never
// for a different one.
func (s *Store) MarkSoldBy(ctx context.Context, id uuid.UUID, transactionID string) (bool, error) {
	query := `
		UPDATE properties
		SET property_status = 'sold', sold_by_transaction = $2
		WHERE id = $1
		  AND (property_status = 'available' OR sold_by_transaction = $2)
	`

	res, err := s.db.ExecContext(ctx, query, id, transactionID)
	if err != nil {
		return false, fmt.Errorf("marking property sold: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking property sold: %w", err)
	}

	return affected == 1, nil
}

// RecordTokenSale decrements available tokens and creates asset rows in one
// database transaction, guarded against both replays and overselling.
func (s *Store) RecordTokenSale(ctx context.Context, propertyID uuid.UUID, transactionID string, tokens int64, assets []*property.TokenizedAsset) (bool, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning token sale: %w", err)
	}
	defer dbTx.Rollback()

	var existing int
	if err := dbTx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tokenized_assets WHERE transaction_id = $1`,
		transactionID,
	).Scan(&existing); err != nil {
		return false, fmt.Errorf("checking existing assets: %w", err)
	}

	if existing > 0 {
		return false, nil
	}

	res, err := dbTx.ExecContext(ctx, `
		UPDATE properties
		SET available_tokens = available_tokens - $2
		WHERE id = $1 AND is_tokenized = TRUE AND available_tokens >= $2
	`, propertyID, tokens)
	if err != nil {
		return false, fmt.Errorf("decrementing tokens: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decrementing tokens: %w", err)
	}

	if affected == 0 {
		return false, fmt.Errorf("property %s has fewer than %d tokens available: %w", propertyID, tokens, property.ErrConflict)
	}

	insert := `
		INSERT INTO tokenized_assets (property_id, token_id, owner_id, current_owner_id, purchase_price, purchase_date, transaction_hash, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	for _, a := range assets {
		err := dbTx.QueryRowContext(ctx, insert,
			a.PropertyID,
			a.TokenID,
			a.OwnerID,
			a.CurrentOwnerID,
			a.PurchasePrice,
			a.PurchaseDate,
			a.TransactionHash,
			a.TransactionID,
		).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return false, fmt.Errorf("creating tokenized asset: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return false, fmt.Errorf("committing token sale: %w", err)
	}

	return true, nil
}

func (s *Store) ListAssetsForOwner(ctx context.Context, ownerID uuid.UUID) ([]*property.TokenizedAsset, error) {
	query := `
		SELECT id, property_id, token_id, owner_id, current_owner_id, purchase_price, purchase_date, transaction_hash, transaction_id, created_at
		FROM tokenized_assets
		WHERE current_owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []*property.TokenizedAsset

	for rows.Next() {
		var a property.TokenizedAsset
		if err := rows.Scan(
			&a.ID, &a.PropertyID, &a.TokenID, &a.OwnerID, &a.CurrentOwnerID,
			&a.PurchasePrice, &a.PurchaseDate, &a.TransactionHash,
			&a.TransactionID, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}

		assets = append(assets, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}

	return assets, nil
}

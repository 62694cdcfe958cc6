package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, username, email, phone, role, membership_id, created_at
		FROM users
		WHERE id = $1
	`

	var u user.User

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.Phone, &u.Role, &u.MembershipID, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func (s *Store) SetMembership(ctx context.Context, userID, membershipID uuid.UUID) error {
	query := `
		UPDATE users
		SET membership_id = $2
		WHERE id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, userID, membershipID); err != nil {
		return fmt.Errorf("linking membership: %w", err)
	}

	return nil
}

package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

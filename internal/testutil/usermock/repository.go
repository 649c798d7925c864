package usermock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/dmoriart/LoanOrig/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies user.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, u *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

// Known builds a Repo whose GetByID answers for the given users only.
func Known(users ...*domain.User) *Repo {
	byID := make(map[uuid.UUID]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &Repo{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if u, ok := byID[id]; ok {
				return u, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

package docmock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/dmoriart/LoanOrig/internal/domain/document"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies document.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, d *domain.Document) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	SaveFn              func(ctx context.Context, d *domain.Document) error
	ListByApplicationFn func(ctx context.Context, applicationID uuid.UUID) ([]domain.Document, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, d *domain.Document) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.Document, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, nil
}

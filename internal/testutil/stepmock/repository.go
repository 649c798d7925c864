package stepmock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/dmoriart/LoanOrig/internal/domain/workflow"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies workflow.Repository.
// Nil getters behave like an empty table.
type Repo struct {
	CreateFn            func(ctx context.Context, s *domain.Step) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Step, error)
	GetByOrderFn        func(ctx context.Context, applicationID uuid.UUID, order int) (*domain.Step, error)
	SaveFn              func(ctx context.Context, s *domain.Step) error
	ListByApplicationFn func(ctx context.Context, applicationID uuid.UUID) ([]domain.Step, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Step) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Step, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByOrder(ctx context.Context, applicationID uuid.UUID, order int) (*domain.Step, error) {
	if m.GetByOrderFn != nil {
		return m.GetByOrderFn(ctx, applicationID, order)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, s *domain.Step) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.Step, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, nil
}

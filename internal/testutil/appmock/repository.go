package appmock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/dmoriart/LoanOrig/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies application.Repository.
// Only fill in the fields a test needs; nil getters act as "no rows".
type Repo struct {
	CreateFn        func(ctx context.Context, a *domain.LoanApplication) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error)
	SaveVersionedFn func(ctx context.Context, a *domain.LoanApplication) error
	ListFn          func(ctx context.Context, offset, limit int) ([]domain.LoanApplication, int64, error)
	DeleteCascadeFn func(ctx context.Context, id uuid.UUID) error
	StatsFn         func(ctx context.Context) (*domain.Stats, error)

	AddIncomeFn       func(ctx context.Context, rec *domain.IncomeRecord) error
	AddAssetFn        func(ctx context.Context, rec *domain.AssetRecord) error
	AddLiabilityFn    func(ctx context.Context, rec *domain.LiabilityRecord) error
	ListIncomeFn      func(ctx context.Context, applicationID uuid.UUID) ([]domain.IncomeRecord, error)
	ListAssetsFn      func(ctx context.Context, applicationID uuid.UUID) ([]domain.AssetRecord, error)
	ListLiabilitiesFn func(ctx context.Context, applicationID uuid.UUID) ([]domain.LiabilityRecord, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanApplication, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) SaveVersioned(ctx context.Context, a *domain.LoanApplication) error {
	if m.SaveVersionedFn != nil {
		return m.SaveVersionedFn(ctx, a)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, offset, limit int) ([]domain.LoanApplication, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *Repo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if m.DeleteCascadeFn != nil {
		return m.DeleteCascadeFn(ctx, id)
	}
	return nil
}

func (m *Repo) Stats(ctx context.Context) (*domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return &domain.Stats{ByStatus: map[domain.Status]int64{}}, nil
}

func (m *Repo) AddIncome(ctx context.Context, rec *domain.IncomeRecord) error {
	if m.AddIncomeFn != nil {
		return m.AddIncomeFn(ctx, rec)
	}
	return nil
}

func (m *Repo) AddAsset(ctx context.Context, rec *domain.AssetRecord) error {
	if m.AddAssetFn != nil {
		return m.AddAssetFn(ctx, rec)
	}
	return nil
}

func (m *Repo) AddLiability(ctx context.Context, rec *domain.LiabilityRecord) error {
	if m.AddLiabilityFn != nil {
		return m.AddLiabilityFn(ctx, rec)
	}
	return nil
}

func (m *Repo) ListIncome(ctx context.Context, applicationID uuid.UUID) ([]domain.IncomeRecord, error) {
	if m.ListIncomeFn != nil {
		return m.ListIncomeFn(ctx, applicationID)
	}
	return nil, nil
}

func (m *Repo) ListAssets(ctx context.Context, applicationID uuid.UUID) ([]domain.AssetRecord, error) {
	if m.ListAssetsFn != nil {
		return m.ListAssetsFn(ctx, applicationID)
	}
	return nil, nil
}

func (m *Repo) ListLiabilities(ctx context.Context, applicationID uuid.UUID) ([]domain.LiabilityRecord, error) {
	if m.ListLiabilitiesFn != nil {
		return m.ListLiabilitiesFn(ctx, applicationID)
	}
	return nil, nil
}

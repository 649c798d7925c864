package application

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *LoanApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*LoanApplication, error)
	// SaveVersioned persists a mutated application only if nobody else bumped
	// its version since it was loaded; otherwise ErrConcurrentModification.
	SaveVersioned(ctx context.Context, a *LoanApplication) error
	List(ctx context.Context, offset, limit int) ([]LoanApplication, int64, error)
	// DeleteCascade removes the application and every child row it owns.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)

	AddIncome(ctx context.Context, rec *IncomeRecord) error
	AddAsset(ctx context.Context, rec *AssetRecord) error
	AddLiability(ctx context.Context, rec *LiabilityRecord) error
	ListIncome(ctx context.Context, applicationID uuid.UUID) ([]IncomeRecord, error)
	ListAssets(ctx context.Context, applicationID uuid.UUID) ([]AssetRecord, error)
	ListLiabilities(ctx context.Context, applicationID uuid.UUID) ([]LiabilityRecord, error)
}

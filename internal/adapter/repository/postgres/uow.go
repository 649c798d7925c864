package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	"github.com/dmoriart/LoanOrig/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:         &UserRepository{db: tx},
		Applications:  &ApplicationRepository{db: tx},
		Documents:     &DocumentRepository{db: tx},
		Decisions:     &DecisionRepository{db: tx},
		WorkflowSteps: &WorkflowStepRepository{db: tx},
		Audit:         &AuditRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, id uuid.UUID, fn func(r uow.Repos, a *appDomain.LoanApplication) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		a, err := r.Applications.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return err
		}
		return fn(r, a)
	})
}

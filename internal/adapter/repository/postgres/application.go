package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	decisionDomain "github.com/dmoriart/LoanOrig/internal/domain/decision"
	documentDomain "github.com/dmoriart/LoanOrig/internal/domain/document"
	workflowDomain "github.com/dmoriart/LoanOrig/internal/domain/workflow"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*appDomain.LoanApplication, error) {
	var out appDomain.LoanApplication
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// SaveVersioned writes the row back guarded by the version it was read at.
// Zero rows affected means another transaction won the race.
func (r *ApplicationRepository) SaveVersioned(ctx context.Context, a *appDomain.LoanApplication) error {
	prev := a.Version
	a.Version = prev + 1
	res := r.db.WithContext(ctx).
		Model(&appDomain.LoanApplication{}).
		Where("id = ? AND version = ?", a.ID, prev).
		Select("*").Omit("id", "created_at").
		Updates(a)
	if res.Error != nil {
		a.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		a.Version = prev
		return appDomain.ErrConcurrentModification
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, offset, limit int) ([]appDomain.LoanApplication, int64, error) {
	var apps []appDomain.LoanApplication
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&appDomain.LoanApplication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// DeleteCascade removes the aggregate and all owned child rows. Callers run it
// inside a unit-of-work transaction so the delete is all-or-nothing.
func (r *ApplicationRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)

	children := []any{
		&appDomain.IncomeRecord{},
		&appDomain.AssetRecord{},
		&appDomain.LiabilityRecord{},
		&documentDomain.Document{},
		&decisionDomain.UnderwritingDecision{},
		&workflowDomain.Step{},
	}
	for _, m := range children {
		if err := db.Where("application_id = ?", id).Delete(m).Error; err != nil {
			return err
		}
	}

	res := db.Where("id = ?", id).Delete(&appDomain.LoanApplication{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) Stats(ctx context.Context) (*appDomain.Stats, error) {
	db := r.db.WithContext(ctx)

	var totals struct {
		Total     int64
		SumAmount string
		AvgIncome string
		AvgScore  float64
	}
	err := db.Model(&appDomain.LoanApplication{}).
		Select("COUNT(*) as total, COALESCE(SUM(loan_amount), 0) as sum_amount, COALESCE(AVG(annual_income), 0) as avg_income, COALESCE(AVG(credit_score), 0) as avg_score").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	stats := &appDomain.Stats{
		TotalApplications:  totals.Total,
		AverageCreditScore: totals.AvgScore,
		ByStatus:           map[appDomain.Status]int64{},
	}
	if stats.TotalLoanAmount, err = parseDecimal(totals.SumAmount); err != nil {
		return nil, err
	}
	if stats.AverageAnnualIncome, err = parseDecimal(totals.AvgIncome); err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status appDomain.Status
		N      int64
	}
	err = db.Model(&appDomain.LoanApplication{}).
		Select("status, COUNT(*) as n").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Status] = row.N
	}
	return stats, nil
}

func (r *ApplicationRepository) AddIncome(ctx context.Context, rec *appDomain.IncomeRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ApplicationRepository) AddAsset(ctx context.Context, rec *appDomain.AssetRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ApplicationRepository) AddLiability(ctx context.Context, rec *appDomain.LiabilityRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ApplicationRepository) ListIncome(ctx context.Context, applicationID uuid.UUID) ([]appDomain.IncomeRecord, error) {
	var out []appDomain.IncomeRecord
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at").Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) ListAssets(ctx context.Context, applicationID uuid.UUID) ([]appDomain.AssetRecord, error) {
	var out []appDomain.AssetRecord
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at").Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) ListLiabilities(ctx context.Context, applicationID uuid.UUID) ([]appDomain.LiabilityRecord, error) {
	var out []appDomain.LiabilityRecord
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at").Find(&out).Error
	return out, err
}

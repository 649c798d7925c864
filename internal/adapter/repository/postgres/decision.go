package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	decisionDomain "github.com/dmoriart/LoanOrig/internal/domain/decision"
)

type DecisionRepository struct{ db *gorm.DB }

func NewDecisionRepository(db *gorm.DB) *DecisionRepository { return &DecisionRepository{db: db} }

func (r *DecisionRepository) Create(ctx context.Context, d *decisionDomain.UnderwritingDecision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DecisionRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]decisionDomain.UnderwritingDecision, error) {
	var out []decisionDomain.UnderwritingDecision
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at").Find(&out).Error
	return out, err
}

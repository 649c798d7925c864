package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	workflowDomain "github.com/dmoriart/LoanOrig/internal/domain/workflow"
)

type WorkflowStepRepository struct{ db *gorm.DB }

func NewWorkflowStepRepository(db *gorm.DB) *WorkflowStepRepository {
	return &WorkflowStepRepository{db: db}
}

func (r *WorkflowStepRepository) Create(ctx context.Context, s *workflowDomain.Step) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *WorkflowStepRepository) GetByID(ctx context.Context, id uuid.UUID) (*workflowDomain.Step, error) {
	var out workflowDomain.Step
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *WorkflowStepRepository) GetByOrder(ctx context.Context, applicationID uuid.UUID, order int) (*workflowDomain.Step, error) {
	var out workflowDomain.Step
	res := r.db.WithContext(ctx).
		Where("application_id = ? AND step_order = ?", applicationID, order).
		First(&out)
	return &out, res.Error
}

func (r *WorkflowStepRepository) Save(ctx context.Context, s *workflowDomain.Step) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *WorkflowStepRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]workflowDomain.Step, error) {
	var out []workflowDomain.Step
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("step_order ASC").
		Find(&out).Error
	return out, err
}

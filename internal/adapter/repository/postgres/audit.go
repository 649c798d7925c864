package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditDomain "github.com/dmoriart/LoanOrig/internal/domain/audit"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Append(ctx context.Context, e *auditDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) List(ctx context.Context, f auditDomain.Filter) ([]auditDomain.Entry, int64, error) {
	var entries []auditDomain.Entry
	var total int64

	q := r.db.WithContext(ctx).Model(&auditDomain.Entry{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != uuid.Nil {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.ActorID != uuid.Nil {
		q = q.Where("actor_id = ?", f.ActorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at ASC, id ASC")
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

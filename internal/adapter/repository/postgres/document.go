package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	documentDomain "github.com/dmoriart/LoanOrig/internal/domain/document"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
	var out documentDomain.Document
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) Save(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DocumentRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]documentDomain.Document, error) {
	var out []documentDomain.Document
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at").Find(&out).Error
	return out, err
}

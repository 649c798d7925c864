package document

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	Save(ctx context.Context, d *Document) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Document, error)
}

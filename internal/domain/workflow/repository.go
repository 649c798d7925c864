package workflow

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Step) error
	GetByID(ctx context.Context, id uuid.UUID) (*Step, error)
	GetByOrder(ctx context.Context, applicationID uuid.UUID, order int) (*Step, error)
	Save(ctx context.Context, s *Step) error
	// ListByApplication returns steps ordered by step_order ascending.
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Step, error)
}

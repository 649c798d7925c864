package decision

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *UnderwritingDecision) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]UnderwritingDecision, error)
}

package decisionmock

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/dmoriart/LoanOrig/internal/domain/decision"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies decision.Repository.
// Created rows are recorded so tests can assert on them.
type Repo struct {
	CreateFn            func(ctx context.Context, d *domain.UnderwritingDecision) error
	ListByApplicationFn func(ctx context.Context, applicationID uuid.UUID) ([]domain.UnderwritingDecision, error)

	Created []domain.UnderwritingDecision
}

func (m *Repo) Create(ctx context.Context, d *domain.UnderwritingDecision) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	m.Created = append(m.Created, *d)
	return nil
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.UnderwritingDecision, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return m.Created, nil
}

package auditmock

import (
	"context"

	domain "github.com/dmoriart/LoanOrig/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies audit.Repository.
// By default Append records into Entries so tests can assert the trail.
type Repo struct {
	AppendFn func(ctx context.Context, e *domain.Entry) error
	ListFn   func(ctx context.Context, f domain.Filter) ([]domain.Entry, int64, error)

	Entries []domain.Entry
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.Entries = append(m.Entries, *e)
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Entry, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return m.Entries, int64(len(m.Entries)), nil
}

package uow

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmoriart/LoanOrig/internal/domain/application"
	"github.com/dmoriart/LoanOrig/internal/domain/audit"
	"github.com/dmoriart/LoanOrig/internal/domain/decision"
	"github.com/dmoriart/LoanOrig/internal/domain/document"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	"github.com/dmoriart/LoanOrig/internal/domain/workflow"
)

// Repos bundles every repository bound to a single transaction.
type Repos struct {
	Users         user.Repository
	Applications  application.Repository
	Documents     document.Repository
	Decisions     decision.Repository
	WorkflowSteps workflow.Repository
	Audit         audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: load the application inside the tx first, then pass it in
	WithinApplicationTx(ctx context.Context, id uuid.UUID, fn func(r Repos, a *application.LoanApplication) error) error
}

package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	auditDomain "github.com/dmoriart/LoanOrig/internal/domain/audit"
	decisionDomain "github.com/dmoriart/LoanOrig/internal/domain/decision"
	"github.com/dmoriart/LoanOrig/internal/domain/uow"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	workflowDomain "github.com/dmoriart/LoanOrig/internal/domain/workflow"
	audituc "github.com/dmoriart/LoanOrig/internal/usecase/audit"
)

// Usecase drives the status state machine and the per-application checklist.
// Every transition runs in one unit-of-work: status change, side-effect row
// and audit entry commit together or not at all.
type Usecase struct {
	users user.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(users user.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{users: users, uow: tx}
}

func storeErr(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return appDomain.ErrStoreUnavailable
	case errors.Is(err, gorm.ErrRecordNotFound):
		return appDomain.ErrNotFound
	}
	return err
}

func guardTransition(a *appDomain.LoanApplication, to appDomain.Status) error {
	if !a.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", appDomain.ErrInvalidTransition, a.Status, to)
	}
	return nil
}

// Submit moves draft -> submitted and stamps submitted_at exactly once.
func (u *Usecase) Submit(ctx context.Context, appID, actorID uuid.UUID) (*appDomain.LoanApplication, error) {
	actor, err := audituc.ResolveActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}

	var out *appDomain.LoanApplication
	err = u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if err := guardTransition(a, appDomain.StatusSubmitted); err != nil {
			return err
		}
		if !a.LoanAmount.IsPositive() {
			return fmt.Errorf("%w: loan_amount must be positive", appDomain.ErrValidation)
		}
		if strings.TrimSpace(a.Purpose) == "" {
			return fmt.Errorf("%w: purpose is required", appDomain.ErrValidation)
		}
		if !a.EmploymentStatus.Valid() {
			return fmt.Errorf("%w: employment_status is required", appDomain.ErrValidation)
		}

		old := a.Status
		now := time.Now().UTC()
		a.Status = appDomain.StatusSubmitted
		if a.SubmittedAt == nil {
			a.SubmittedAt = &now
		}
		if err := r.Applications.SaveVersioned(ctx, a); err != nil {
			return err
		}
		out = a
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionSubmit,
			"loan_application", a.ID,
			map[string]any{"status": old},
			map[string]any{"status": a.Status, "submitted_at": a.SubmittedAt})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// AssignUnderwriter moves submitted -> under_review; the assignment commits
// atomically with the transition.
func (u *Usecase) AssignUnderwriter(ctx context.Context, appID, underwriterID, actorID uuid.UUID) (*appDomain.LoanApplication, error) {
	uw, err := u.users.GetByID(ctx, underwriterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown underwriter %s", appDomain.ErrValidation, underwriterID)
		}
		return nil, storeErr(err)
	}
	if uw.Role != user.RoleUnderwriter {
		return nil, fmt.Errorf("%w: user %s is not an underwriter", appDomain.ErrValidation, underwriterID)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}

	var out *appDomain.LoanApplication
	err = u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if err := guardTransition(a, appDomain.StatusUnderReview); err != nil {
			return err
		}
		old := a.Status
		a.Status = appDomain.StatusUnderReview
		a.AssignedUnderwriterID = &uw.ID
		if err := r.Applications.SaveVersioned(ctx, a); err != nil {
			return err
		}
		out = a
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionAssignUnderwriter,
			"loan_application", a.ID,
			map[string]any{"status": old},
			map[string]any{"status": a.Status, "assigned_underwriter_id": uw.ID})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// RecordDecision stores an underwriting ruling. approve/reject move the
// application out of review; conditional, pending and request_more_info only
// add the decision row.
func (u *Usecase) RecordDecision(ctx context.Context, in RecordDecisionInput) (*appDomain.LoanApplication, error) {
	if !in.Decision.Valid() {
		return nil, fmt.Errorf("%w: unknown decision %q", appDomain.ErrValidation, in.Decision)
	}
	if in.Decision == decisionDomain.DecisionApprove {
		if in.ApprovedAmount == nil || !in.ApprovedAmount.IsPositive() {
			return nil, fmt.Errorf("%w: approved_amount must be positive", appDomain.ErrValidation)
		}
		if in.InterestRate == nil || !in.InterestRate.IsPositive() {
			return nil, fmt.Errorf("%w: interest_rate must be positive", appDomain.ErrValidation)
		}
		if in.LoanTermMonths == nil || *in.LoanTermMonths <= 0 {
			return nil, fmt.Errorf("%w: loan_term_months must be positive", appDomain.ErrValidation)
		}
	}
	uw, err := u.users.GetByID(ctx, in.UnderwriterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown underwriter %s", appDomain.ErrValidation, in.UnderwriterID)
		}
		return nil, storeErr(err)
	}
	if uw.Role != user.RoleUnderwriter {
		return nil, fmt.Errorf("%w: user %s is not an underwriter", appDomain.ErrValidation, in.UnderwriterID)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, in.ActorID)
	if err != nil {
		return nil, err
	}

	var out *appDomain.LoanApplication
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		next := a.Status
		if in.Decision.Final() {
			next = appDomain.StatusApproved
			if in.Decision == decisionDomain.DecisionReject {
				next = appDomain.StatusRejected
			}
			if err := guardTransition(a, next); err != nil {
				return err
			}
		} else if a.Status != appDomain.StatusUnderReview {
			return fmt.Errorf("%w: decision only allowed under review, status is %s", appDomain.ErrInvalidTransition, a.Status)
		}

		d := &decisionDomain.UnderwritingDecision{
			ID:                uuid.New(),
			ApplicationID:     a.ID,
			UnderwriterID:     uw.ID,
			Decision:          in.Decision,
			Conditions:        in.Conditions,
			Notes:             in.Notes,
			ApprovedAmount:    in.ApprovedAmount,
			InterestRate:      in.InterestRate,
			LoanTermMonths:    in.LoanTermMonths,
			DebtToIncomeRatio: in.DebtToIncomeRatio,
			LoanToValueRatio:  in.LoanToValueRatio,
			DecisionDate:      time.Now().UTC(),
		}
		if err := r.Decisions.Create(ctx, d); err != nil {
			return err
		}

		old := a.Status
		a.Status = next
		// SaveVersioned also serializes concurrent non-final decisions on the
		// same application; the loser of the race retries with fresh state.
		if err := r.Applications.SaveVersioned(ctx, a); err != nil {
			return err
		}
		out = a
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionRecordDecision,
			"loan_application", a.ID,
			map[string]any{"status": old},
			map[string]any{"status": a.Status, "decision": d.Decision, "decision_id": d.ID})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Fund moves approved -> funded. Actual disbursement lives outside this core.
func (u *Usecase) Fund(ctx context.Context, appID, actorID uuid.UUID) (*appDomain.LoanApplication, error) {
	return u.simpleTransition(ctx, appID, actorID, appDomain.StatusFunded, auditDomain.ActionFund)
}

// Close moves funded -> closed, the terminal happy-path state.
func (u *Usecase) Close(ctx context.Context, appID, actorID uuid.UUID) (*appDomain.LoanApplication, error) {
	return u.simpleTransition(ctx, appID, actorID, appDomain.StatusClosed, auditDomain.ActionClose)
}

func (u *Usecase) simpleTransition(ctx context.Context, appID, actorID uuid.UUID, to appDomain.Status, action string) (*appDomain.LoanApplication, error) {
	actor, err := audituc.ResolveActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}

	var out *appDomain.LoanApplication
	err = u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if err := guardTransition(a, to); err != nil {
			return err
		}
		old := a.Status
		a.Status = to
		if err := r.Applications.SaveVersioned(ctx, a); err != nil {
			return err
		}
		out = a
		return audituc.Record(ctx, r.Audit, actor, action,
			"loan_application", a.ID,
			map[string]any{"status": old},
			map[string]any{"status": a.Status})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// AddStep appends a checklist item; step_order must be unique per application.
func (u *Usecase) AddStep(ctx context.Context, in AddStepInput) (*workflowDomain.Step, error) {
	if strings.TrimSpace(in.StepName) == "" {
		return nil, fmt.Errorf("%w: step_name is required", appDomain.ErrValidation)
	}
	if in.StepOrder <= 0 {
		return nil, fmt.Errorf("%w: step_order must be positive", appDomain.ErrValidation)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, in.ActorID)
	if err != nil {
		return nil, err
	}

	step := &workflowDomain.Step{
		ID:            uuid.New(),
		ApplicationID: in.ApplicationID,
		StepName:      strings.TrimSpace(in.StepName),
		StepOrder:     in.StepOrder,
		AssignedTo:    in.AssignedTo,
		DueDate:       in.DueDate,
		Comments:      in.Comments,
	}
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if _, err := r.WorkflowSteps.GetByOrder(ctx, a.ID, in.StepOrder); err == nil {
			return fmt.Errorf("%w: step_order %d already exists", appDomain.ErrValidation, in.StepOrder)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := r.WorkflowSteps.Create(ctx, step); err != nil {
			return err
		}
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionAddWorkflowStep,
			"workflow_step", step.ID, nil, map[string]any{
				"application_id": a.ID,
				"step_name":      step.StepName,
				"step_order":     step.StepOrder,
			})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return step, nil
}

// CompleteStep marks a step done. Steps may complete in any order, and
// re-completing one is a no-op that returns the original completion time.
func (u *Usecase) CompleteStep(ctx context.Context, stepID, actorID uuid.UUID) (*workflowDomain.Step, error) {
	actor, err := audituc.ResolveActor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}

	var out *workflowDomain.Step
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		step, err := r.WorkflowSteps.GetByID(ctx, stepID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return err
		}
		if step.IsCompleted {
			out = step
			return nil
		}
		now := time.Now().UTC()
		step.IsCompleted = true
		step.CompletedAt = &now
		if err := r.WorkflowSteps.Save(ctx, step); err != nil {
			return err
		}
		out = step
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionCompleteStep,
			"workflow_step", step.ID,
			map[string]any{"is_completed": false},
			map[string]any{"is_completed": true, "completed_at": step.CompletedAt})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// ListSteps returns the checklist ordered by step_order.
func (u *Usecase) ListSteps(ctx context.Context, appID uuid.UUID) ([]workflowDomain.Step, error) {
	var steps []workflowDomain.Step
	err := u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		var err error
		steps, err = r.WorkflowSteps.ListByApplication(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return steps, nil
}

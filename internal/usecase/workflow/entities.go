package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	decisionDomain "github.com/dmoriart/LoanOrig/internal/domain/decision"
)

type RecordDecisionInput struct {
	ApplicationID uuid.UUID
	UnderwriterID uuid.UUID
	Decision      decisionDomain.Decision
	Conditions    string
	Notes         string

	// Approved terms; all three required and positive when Decision is approve.
	ApprovedAmount *decimal.Decimal
	InterestRate   *decimal.Decimal
	LoanTermMonths *int

	DebtToIncomeRatio *decimal.Decimal
	LoanToValueRatio  *decimal.Decimal

	ActorID uuid.UUID
}

type AddStepInput struct {
	ApplicationID uuid.UUID
	StepName      string
	StepOrder     int
	AssignedTo    *uuid.UUID
	DueDate       *time.Time
	Comments      string
	ActorID       uuid.UUID
}

package decision

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Decision string

const (
	DecisionApprove         Decision = "approve"
	DecisionReject          Decision = "reject"
	DecisionConditional     Decision = "conditional_approval"
	DecisionPending         Decision = "pending"
	DecisionRequestMoreInfo Decision = "request_more_info"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionConditional,
		DecisionPending, DecisionRequestMoreInfo:
		return true
	}
	return false
}

// Final reports whether the decision moves the application out of review.
func (d Decision) Final() bool {
	return d == DecisionApprove || d == DecisionReject
}

// UnderwritingDecision records one ruling by one underwriter. Approved terms
// are only populated when the decision is approve.
type UnderwritingDecision struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index:idx_decisions_application" json:"application_id"`
	UnderwriterID uuid.UUID `gorm:"type:uuid;not null" json:"underwriter_id"`

	Decision   Decision `gorm:"size:30;not null" json:"decision"`
	Conditions string   `gorm:"type:text" json:"conditions,omitempty"`
	Notes      string   `gorm:"type:text" json:"notes,omitempty"`

	ApprovedAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"approved_amount,omitempty"`
	InterestRate   *decimal.Decimal `gorm:"type:decimal(5,3)" json:"interest_rate,omitempty"`
	LoanTermMonths *int             `json:"loan_term_months,omitempty"`

	DebtToIncomeRatio *decimal.Decimal `gorm:"type:decimal(5,2)" json:"debt_to_income_ratio,omitempty"`
	LoanToValueRatio  *decimal.Decimal `gorm:"type:decimal(5,2)" json:"loan_to_value_ratio,omitempty"`

	DecisionDate time.Time `gorm:"autoCreateTime" json:"decision_date"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UnderwritingDecision) TableName() string { return "underwriting_decisions" }

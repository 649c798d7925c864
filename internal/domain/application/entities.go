package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusFunded      Status = "funded"
	StatusClosed      Status = "closed"
)

// transitions is the only source of truth for the status lifecycle.
// rejected and closed are terminal.
var transitions = map[Status][]Status{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusFunded},
	StatusFunded:      {StatusClosed},
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved,
		StatusRejected, StatusFunded, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether s → next is a legal lifecycle move.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentRetired      EmploymentStatus = "retired"
	EmploymentStudent      EmploymentStatus = "student"
)

func (e EmploymentStatus) Valid() bool {
	switch e {
	case EmploymentEmployed, EmploymentSelfEmployed, EmploymentUnemployed,
		EmploymentRetired, EmploymentStudent:
		return true
	}
	return false
}

// LoanApplication is the aggregate root. Income, asset, liability, document,
// decision and workflow-step rows all hang off it and are removed with it.
type LoanApplication struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index:idx_applications_applicant" json:"applicant_id"`
	// LoanNumber is assigned at creation and never changes.
	LoanNumber string `gorm:"size:50;not null;uniqueIndex:ux_applications_loan_number" json:"loan_number"`

	LoanAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"loan_amount"`
	PropertyValue decimal.Decimal `gorm:"type:decimal(12,2)" json:"property_value"`
	DownPayment   decimal.Decimal `gorm:"type:decimal(12,2)" json:"down_payment"`
	AnnualIncome  decimal.Decimal `gorm:"type:decimal(12,2)" json:"annual_income"`
	CreditScore   int             `gorm:"default:0" json:"credit_score"`

	Purpose          string           `gorm:"size:100;not null" json:"purpose"`
	EmploymentStatus EmploymentStatus `gorm:"size:20;not null" json:"employment_status"`

	Status                Status     `gorm:"size:20;not null;default:'draft';index:idx_applications_status" json:"status"`
	AssignedUnderwriterID *uuid.UUID `gorm:"type:uuid" json:"assigned_underwriter_id,omitempty"`
	SubmittedAt           *time.Time `json:"submitted_at,omitempty"`

	// Version guards concurrent transitions; every mutation bumps it.
	Version   int       `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanApplication) TableName() string { return "loan_applications" }

type IncomeType string

const (
	IncomeSalary         IncomeType = "salary"
	IncomeHourly         IncomeType = "hourly"
	IncomeCommission     IncomeType = "commission"
	IncomeBonus          IncomeType = "bonus"
	IncomeSelfEmployment IncomeType = "self_employment"
	IncomeRental         IncomeType = "rental"
	IncomeInvestment     IncomeType = "investment"
	IncomeOther          IncomeType = "other"
)

func (t IncomeType) Valid() bool {
	switch t {
	case IncomeSalary, IncomeHourly, IncomeCommission, IncomeBonus,
		IncomeSelfEmployment, IncomeRental, IncomeInvestment, IncomeOther:
		return true
	}
	return false
}

type AssetType string

const (
	AssetChecking   AssetType = "checking"
	AssetSavings    AssetType = "savings"
	AssetInvestment AssetType = "investment"
	AssetRetirement AssetType = "retirement"
	AssetRealEstate AssetType = "real_estate"
	AssetVehicle    AssetType = "vehicle"
	AssetOther      AssetType = "other"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetChecking, AssetSavings, AssetInvestment, AssetRetirement,
		AssetRealEstate, AssetVehicle, AssetOther:
		return true
	}
	return false
}

type LiabilityType string

const (
	LiabilityCreditCard   LiabilityType = "credit_card"
	LiabilityAutoLoan     LiabilityType = "auto_loan"
	LiabilityMortgage     LiabilityType = "mortgage"
	LiabilityStudentLoan  LiabilityType = "student_loan"
	LiabilityPersonalLoan LiabilityType = "personal_loan"
	LiabilityOther        LiabilityType = "other"
)

func (t LiabilityType) Valid() bool {
	switch t {
	case LiabilityCreditCard, LiabilityAutoLoan, LiabilityMortgage,
		LiabilityStudentLoan, LiabilityPersonalLoan, LiabilityOther:
		return true
	}
	return false
}

type IncomeRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ApplicationID uuid.UUID       `gorm:"type:uuid;not null;index:idx_income_application" json:"application_id"`
	IncomeType    IncomeType      `gorm:"size:30;not null" json:"income_type"`
	Source        string          `gorm:"size:200;not null" json:"source"`
	MonthlyAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monthly_amount"`
	IsPrimary     bool            `gorm:"default:false" json:"is_primary"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (IncomeRecord) TableName() string { return "income_records" }

type AssetRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ApplicationID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_assets_application" json:"application_id"`
	AssetType       AssetType       `gorm:"size:30;not null" json:"asset_type"`
	Description     string          `gorm:"size:200;not null" json:"description"`
	CurrentValue    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"current_value"`
	LiquidAmount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"liquid_amount"`
	InstitutionName string          `gorm:"size:200" json:"institution_name,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (AssetRecord) TableName() string { return "asset_records" }

type LiabilityRecord struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ApplicationID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_liabilities_application" json:"application_id"`
	LiabilityType  LiabilityType   `gorm:"size:30;not null" json:"liability_type"`
	CreditorName   string          `gorm:"size:200;not null" json:"creditor_name"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"current_balance"`
	MonthlyPayment decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monthly_payment"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (LiabilityRecord) TableName() string { return "liability_records" }

// Stats is the aggregate read projection over all applications.
type Stats struct {
	TotalApplications   int64            `json:"total_applications"`
	TotalLoanAmount     decimal.Decimal  `json:"total_loan_amount"`
	AverageAnnualIncome decimal.Decimal  `json:"average_annual_income"`
	AverageCreditScore  float64          `json:"average_credit_score"`
	ByStatus            map[Status]int64 `json:"by_status"`
}

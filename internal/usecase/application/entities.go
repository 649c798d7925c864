package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
)

type CreateInput struct {
	ApplicantID      uuid.UUID
	LoanAmount       decimal.Decimal
	Purpose          string
	EmploymentStatus appDomain.EmploymentStatus
	AnnualIncome     decimal.Decimal
	PropertyValue    decimal.Decimal
	DownPayment      decimal.Decimal
	CreditScore      int
	ActorID          uuid.UUID
}

type AddIncomeInput struct {
	ApplicationID uuid.UUID
	IncomeType    appDomain.IncomeType
	Source        string
	MonthlyAmount decimal.Decimal
	IsPrimary     bool
	Notes         string
	ActorID       uuid.UUID
}

type AddAssetInput struct {
	ApplicationID   uuid.UUID
	AssetType       appDomain.AssetType
	Description     string
	CurrentValue    decimal.Decimal
	LiquidAmount    decimal.Decimal
	InstitutionName string
	Notes           string
	ActorID         uuid.UUID
}

type AddLiabilityInput struct {
	ApplicationID  uuid.UUID
	LiabilityType  appDomain.LiabilityType
	CreditorName   string
	CurrentBalance decimal.Decimal
	MonthlyPayment decimal.Decimal
	Notes          string
	ActorID        uuid.UUID
}

// ApplicationDTO is the one canonical external shape of an application.
type ApplicationDTO struct {
	ID                    uuid.UUID                  `json:"id"`
	ApplicantID           uuid.UUID                  `json:"applicant_id"`
	LoanNumber            string                     `json:"loan_number"`
	LoanAmount            decimal.Decimal            `json:"loan_amount"`
	PropertyValue         decimal.Decimal            `json:"property_value"`
	DownPayment           decimal.Decimal            `json:"down_payment"`
	AnnualIncome          decimal.Decimal            `json:"annual_income"`
	CreditScore           int                        `json:"credit_score"`
	Purpose               string                     `json:"purpose"`
	EmploymentStatus      appDomain.EmploymentStatus `json:"employment_status"`
	Status                appDomain.Status           `json:"status"`
	AssignedUnderwriterID *uuid.UUID                 `json:"assigned_underwriter_id,omitempty"`
	SubmittedAt           *time.Time                 `json:"submitted_at,omitempty"`
	CreatedAt             time.Time                  `json:"created_at"`
	UpdatedAt             time.Time                  `json:"updated_at"`
}

// ToDTO maps the aggregate onto the canonical external shape. Every handler
// that returns an application goes through this one mapping.
func ToDTO(a *appDomain.LoanApplication) *ApplicationDTO { return toDTO(a) }

func toDTO(a *appDomain.LoanApplication) *ApplicationDTO {
	return &ApplicationDTO{
		ID:                    a.ID,
		ApplicantID:           a.ApplicantID,
		LoanNumber:            a.LoanNumber,
		LoanAmount:            a.LoanAmount,
		PropertyValue:         a.PropertyValue,
		DownPayment:           a.DownPayment,
		AnnualIncome:          a.AnnualIncome,
		CreditScore:           a.CreditScore,
		Purpose:               a.Purpose,
		EmploymentStatus:      a.EmploymentStatus,
		Status:                a.Status,
		AssignedUnderwriterID: a.AssignedUnderwriterID,
		SubmittedAt:           a.SubmittedAt,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

package application

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
	"github.com/dmoriart/LoanOrig/internal/domain/uow"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	audituc "github.com/dmoriart/LoanOrig/internal/usecase/audit"
	"github.com/dmoriart/LoanOrig/pkg/id"
)

type Usecase struct {
	apps  appDomain.Repository
	users user.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(apps appDomain.Repository, users user.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{apps: apps, users: users, uow: tx}
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

func validatePurpose(p string) (string, error) {
	p = strings.TrimSpace(p)
	if len(p) < 2 || len(p) > 100 {
		return "", fmt.Errorf("%w: purpose must be 2-100 characters", appDomain.ErrValidation)
	}
	return p, nil
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApplicationDTO, error) {
	if in.ApplicantID == uuid.Nil {
		return nil, fmt.Errorf("%w: applicant_id is required", appDomain.ErrValidation)
	}
	if !in.LoanAmount.IsPositive() {
		return nil, fmt.Errorf("%w: loan_amount must be positive", appDomain.ErrValidation)
	}
	if in.PropertyValue.IsNegative() || in.DownPayment.IsNegative() || in.AnnualIncome.IsNegative() {
		return nil, fmt.Errorf("%w: monetary fields must be non-negative", appDomain.ErrValidation)
	}
	purpose, err := validatePurpose(in.Purpose)
	if err != nil {
		return nil, err
	}
	if !in.EmploymentStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown employment status %q", appDomain.ErrValidation, in.EmploymentStatus)
	}

	if _, err := u.users.GetByID(ctx, in.ApplicantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown applicant %s", appDomain.ErrValidation, in.ApplicantID)
		}
		return nil, storeErr(err)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, in.ActorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &appDomain.LoanApplication{
		ID:               uuid.New(),
		ApplicantID:      in.ApplicantID,
		LoanNumber:       id.NewLoanNumber(now),
		LoanAmount:       in.LoanAmount,
		PropertyValue:    in.PropertyValue,
		DownPayment:      in.DownPayment,
		AnnualIncome:     in.AnnualIncome,
		CreditScore:      in.CreditScore,
		Purpose:          purpose,
		EmploymentStatus: in.EmploymentStatus,
		Status:           appDomain.StatusDraft,
		Version:          1,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionCreateApplication,
			"loan_application", a.ID, nil, map[string]any{
				"loan_number": a.LoanNumber,
				"loan_amount": a.LoanAmount,
				"status":      a.Status,
			})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, appID uuid.UUID) (*ApplicationDTO, error) {
	a, err := u.apps.GetByID(ctx, appID)
	if err != nil {
		return nil, storeErr(err)
	}
	return toDTO(a), nil
}

func (u *Usecase) List(ctx context.Context, offset, limit int) ([]ApplicationDTO, int64, error) {
	apps, total, err := u.apps.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out, total, nil
}

func (u *Usecase) Stats(ctx context.Context) (*appDomain.Stats, error) {
	s, err := u.apps.Stats(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return s, nil
}

// Delete removes the aggregate and every owned child row in one transaction.
func (u *Usecase) Delete(ctx context.Context, appID, actorID uuid.UUID) error {
	actor, err := audituc.ResolveActor(ctx, u.users, actorID)
	if err != nil {
		return err
	}
	err = u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if err := r.Applications.DeleteCascade(ctx, a.ID); err != nil {
			return err
		}
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionDeleteApplication,
			"loan_application", a.ID, map[string]any{
				"loan_number": a.LoanNumber,
				"status":      a.Status,
			}, nil)
	})
	return storeErr(err)
}

func (u *Usecase) AddIncome(ctx context.Context, in AddIncomeInput) (*appDomain.IncomeRecord, error) {
	if !in.IncomeType.Valid() {
		return nil, fmt.Errorf("%w: unknown income type %q", appDomain.ErrValidation, in.IncomeType)
	}
	if strings.TrimSpace(in.Source) == "" {
		return nil, fmt.Errorf("%w: source is required", appDomain.ErrValidation)
	}
	if !in.MonthlyAmount.IsPositive() {
		return nil, fmt.Errorf("%w: monthly_amount must be positive", appDomain.ErrValidation)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, in.ActorID)
	if err != nil {
		return nil, err
	}

	rec := &appDomain.IncomeRecord{
		ID:            uuid.New(),
		ApplicationID: in.ApplicationID,
		IncomeType:    in.IncomeType,
		Source:        strings.TrimSpace(in.Source),
		MonthlyAmount: in.MonthlyAmount,
		IsPrimary:     in.IsPrimary,
		Notes:         in.Notes,
	}
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if err := r.Applications.AddIncome(ctx, rec); err != nil {
			return err
		}
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionAddIncome,
			"income_record", rec.ID, nil, map[string]any{
				"application_id": a.ID,
				"income_type":    rec.IncomeType,
				"monthly_amount": rec.MonthlyAmount,
			})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return rec, nil
}

func (u *Usecase) AddAsset(ctx context.Context, in AddAssetInput) (*appDomain.AssetRecord, error) {
	if !in.AssetType.Valid() {
		return nil, fmt.Errorf("%w: unknown asset type %q", appDomain.ErrValidation, in.AssetType)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", appDomain.ErrValidation)
	}
	if in.CurrentValue.IsNegative() || in.LiquidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: asset values must be non-negative", appDomain.ErrValidation)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, in.ActorID)
	if err != nil {
		return nil, err
	}

	rec := &appDomain.AssetRecord{
		ID:              uuid.New(),
		ApplicationID:   in.ApplicationID,
		AssetType:       in.AssetType,
		Description:     strings.TrimSpace(in.Description),
		CurrentValue:    in.CurrentValue,
		LiquidAmount:    in.LiquidAmount,
		InstitutionName: in.InstitutionName,
		Notes:           in.Notes,
	}
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if err := r.Applications.AddAsset(ctx, rec); err != nil {
			return err
		}
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionAddAsset,
			"asset_record", rec.ID, nil, map[string]any{
				"application_id": a.ID,
				"asset_type":     rec.AssetType,
				"current_value":  rec.CurrentValue,
			})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return rec, nil
}

func (u *Usecase) AddLiability(ctx context.Context, in AddLiabilityInput) (*appDomain.LiabilityRecord, error) {
	if !in.LiabilityType.Valid() {
		return nil, fmt.Errorf("%w: unknown liability type %q", appDomain.ErrValidation, in.LiabilityType)
	}
	if strings.TrimSpace(in.CreditorName) == "" {
		return nil, fmt.Errorf("%w: creditor_name is required", appDomain.ErrValidation)
	}
	if in.CurrentBalance.IsNegative() || in.MonthlyPayment.IsNegative() {
		return nil, fmt.Errorf("%w: liability amounts must be non-negative", appDomain.ErrValidation)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, in.ActorID)
	if err != nil {
		return nil, err
	}

	rec := &appDomain.LiabilityRecord{
		ID:             uuid.New(),
		ApplicationID:  in.ApplicationID,
		LiabilityType:  in.LiabilityType,
		CreditorName:   strings.TrimSpace(in.CreditorName),
		CurrentBalance: in.CurrentBalance,
		MonthlyPayment: in.MonthlyPayment,
		Notes:          in.Notes,
	}
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if err := r.Applications.AddLiability(ctx, rec); err != nil {
			return err
		}
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionAddLiability,
			"liability_record", rec.ID, nil, map[string]any{
				"application_id":  a.ID,
				"liability_type":  rec.LiabilityType,
				"current_balance": rec.CurrentBalance,
			})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return rec, nil
}

package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	appuc "github.com/dmoriart/LoanOrig/internal/usecase/application"
	"github.com/dmoriart/LoanOrig/pkg/pagination"
)

type ApplicationHandler struct{ uc *appuc.Usecase }

func NewApplicationHandler(uc *appuc.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type createApplicationReq struct {
	ApplicantID      string          `json:"applicant_id"      validate:"required,uuid"`
	LoanAmount       decimal.Decimal `json:"loan_amount"       validate:"-"`
	Purpose          string          `json:"purpose"           validate:"required,min=2,max=100"`
	EmploymentStatus string          `json:"employment_status" validate:"required"`
	AnnualIncome     decimal.Decimal `json:"annual_income"     validate:"-"`
	PropertyValue    decimal.Decimal `json:"property_value"    validate:"-"`
	DownPayment      decimal.Decimal `json:"down_payment"      validate:"-"`
	CreditScore      int             `json:"credit_score"      validate:"omitempty,gte=0"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	applicant, _ := uuid.Parse(req.ApplicantID)

	dto, err := h.uc.Create(c.Request().Context(), appuc.CreateInput{
		ApplicantID:      applicant,
		LoanAmount:       req.LoanAmount,
		Purpose:          req.Purpose,
		EmploymentStatus: appDomain.EmploymentStatus(req.EmploymentStatus),
		AnnualIncome:     req.AnnualIncome,
		PropertyValue:    req.PropertyValue,
		DownPayment:      req.DownPayment,
		CreditScore:      req.CreditScore,
		ActorID:          actor,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	p := pagination.Parse(c)
	dtos, total, err := h.uc.List(c.Request().Context(), p.Offset, p.Limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Data: dtos, Total: total, Page: p.Page, Limit: p.Limit})
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if err := h.uc.Delete(c.Request().Context(), id, actor); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ApplicationHandler) Stats(c echo.Context) error {
	stats, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

type addIncomeReq struct {
	IncomeType    string          `json:"income_type"    validate:"required"`
	Source        string          `json:"source"         validate:"required,max=200"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" validate:"-"`
	IsPrimary     bool            `json:"is_primary"`
	Notes         string          `json:"notes"`
}

func (h *ApplicationHandler) AddIncome(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req addIncomeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	rec, err := h.uc.AddIncome(c.Request().Context(), appuc.AddIncomeInput{
		ApplicationID: id,
		IncomeType:    appDomain.IncomeType(req.IncomeType),
		Source:        req.Source,
		MonthlyAmount: req.MonthlyAmount,
		IsPrimary:     req.IsPrimary,
		Notes:         req.Notes,
		ActorID:       actor,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

type addAssetReq struct {
	AssetType       string          `json:"asset_type"       validate:"required"`
	Description     string          `json:"description"      validate:"required,max=200"`
	CurrentValue    decimal.Decimal `json:"current_value"    validate:"-"`
	LiquidAmount    decimal.Decimal `json:"liquid_amount"    validate:"-"`
	InstitutionName string          `json:"institution_name" validate:"omitempty,max=200"`
	Notes           string          `json:"notes"`
}

func (h *ApplicationHandler) AddAsset(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req addAssetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	rec, err := h.uc.AddAsset(c.Request().Context(), appuc.AddAssetInput{
		ApplicationID:   id,
		AssetType:       appDomain.AssetType(req.AssetType),
		Description:     req.Description,
		CurrentValue:    req.CurrentValue,
		LiquidAmount:    req.LiquidAmount,
		InstitutionName: req.InstitutionName,
		Notes:           req.Notes,
		ActorID:         actor,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

type addLiabilityReq struct {
	LiabilityType  string          `json:"liability_type"  validate:"required"`
	CreditorName   string          `json:"creditor_name"   validate:"required,max=200"`
	CurrentBalance decimal.Decimal `json:"current_balance" validate:"-"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment" validate:"-"`
	Notes          string          `json:"notes"`
}

func (h *ApplicationHandler) AddLiability(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req addLiabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	rec, err := h.uc.AddLiability(c.Request().Context(), appuc.AddLiabilityInput{
		ApplicationID:  id,
		LiabilityType:  appDomain.LiabilityType(req.LiabilityType),
		CreditorName:   req.CreditorName,
		CurrentBalance: req.CurrentBalance,
		MonthlyPayment: req.MonthlyPayment,
		Notes:          req.Notes,
		ActorID:        actor,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

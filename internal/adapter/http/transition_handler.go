package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	decisionDomain "github.com/dmoriart/LoanOrig/internal/domain/decision"
	appuc "github.com/dmoriart/LoanOrig/internal/usecase/application"
	workflowuc "github.com/dmoriart/LoanOrig/internal/usecase/workflow"
)

type TransitionHandler struct{ wf *workflowuc.Usecase }

func NewTransitionHandler(wf *workflowuc.Usecase) *TransitionHandler {
	return &TransitionHandler{wf: wf}
}

// transitionReq is the single body shape for all lifecycle actions; only the
// fields the named action needs are read.
type transitionReq struct {
	Action string `json:"action" validate:"required,oneof=submit assign_underwriter record_decision fund close"`

	// assign_underwriter / record_decision
	UnderwriterID string `json:"underwriter_id" validate:"omitempty,uuid"`

	// record_decision
	Decision          string           `json:"decision"`
	Conditions        string           `json:"conditions"`
	Notes             string           `json:"notes"`
	ApprovedAmount    *decimal.Decimal `json:"approved_amount"      validate:"-"`
	InterestRate      *decimal.Decimal `json:"interest_rate"        validate:"-"`
	LoanTermMonths    *int             `json:"loan_term_months"`
	DebtToIncomeRatio *decimal.Decimal `json:"debt_to_income_ratio" validate:"-"`
	LoanToValueRatio  *decimal.Decimal `json:"loan_to_value_ratio"  validate:"-"`
}

func (h *TransitionHandler) Transition(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req transitionReq
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

	ctx := c.Request().Context()
	var a *appDomain.LoanApplication

	switch req.Action {
	case "submit":
		a, err = h.wf.Submit(ctx, id, actor)
	case "assign_underwriter":
		uw, perr := uuid.Parse(req.UnderwriterID)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "underwriter_id must be a UUID"})
		}
		a, err = h.wf.AssignUnderwriter(ctx, id, uw, actor)
	case "record_decision":
		uw, perr := uuid.Parse(req.UnderwriterID)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "underwriter_id must be a UUID"})
		}
		a, err = h.wf.RecordDecision(ctx, workflowuc.RecordDecisionInput{
			ApplicationID:     id,
			UnderwriterID:     uw,
			Decision:          decisionDomain.Decision(req.Decision),
			Conditions:        req.Conditions,
			Notes:             req.Notes,
			ApprovedAmount:    req.ApprovedAmount,
			InterestRate:      req.InterestRate,
			LoanTermMonths:    req.LoanTermMonths,
			DebtToIncomeRatio: req.DebtToIncomeRatio,
			LoanToValueRatio:  req.LoanToValueRatio,
			ActorID:           actor,
		})
	case "fund":
		a, err = h.wf.Fund(ctx, id, actor)
	case "close":
		a, err = h.wf.Close(ctx, id, actor)
	}
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, appuc.ToDTO(a))
}

type addStepReq struct {
	StepName   string     `json:"step_name"   validate:"required,max=100"`
	StepOrder  int        `json:"step_order"  validate:"required,gt=0"`
	AssignedTo string     `json:"assigned_to" validate:"omitempty,uuid"`
	DueDate    *time.Time `json:"due_date"`
	Comments   string     `json:"comments"`
}

func (h *TransitionHandler) AddStep(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req addStepReq
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

	in := workflowuc.AddStepInput{
		ApplicationID: id,
		StepName:      req.StepName,
		StepOrder:     req.StepOrder,
		DueDate:       req.DueDate,
		Comments:      req.Comments,
		ActorID:       actor,
	}
	if req.AssignedTo != "" {
		assignee, _ := uuid.Parse(req.AssignedTo)
		in.AssignedTo = &assignee
	}
	step, err := h.wf.AddStep(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, step)
}

func (h *TransitionHandler) CompleteStep(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	step, err := h.wf.CompleteStep(c.Request().Context(), id, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, step)
}

func (h *TransitionHandler) ListSteps(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	steps, err := h.wf.ListSteps(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, steps)
}

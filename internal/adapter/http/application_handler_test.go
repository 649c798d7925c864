package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	"github.com/dmoriart/LoanOrig/internal/domain/uow"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	"github.com/dmoriart/LoanOrig/internal/testutil/appmock"
	"github.com/dmoriart/LoanOrig/internal/testutil/auditmock"
	"github.com/dmoriart/LoanOrig/internal/testutil/uowmock"
	"github.com/dmoriart/LoanOrig/internal/testutil/usermock"
	appuc "github.com/dmoriart/LoanOrig/internal/usecase/application"
)

var applicant = &user.User{ID: uuid.New(), Email: "appl@bank.test", Role: user.RoleApplicant}

func newApplicationHandler(apps *appmock.Repo) *ApplicationHandler {
	users := usermock.Known(applicant)
	tx := uowmock.Passthrough(uow.Repos{Users: users, Applications: apps, Audit: &auditmock.Repo{}})
	return NewApplicationHandler(appuc.NewUsecase(apps, users, tx))
}

func TestCreateApplication_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(&appmock.Repo{})

	body := map[string]any{
		"applicant_id":      applicant.ID.String(),
		"loan_amount":       250000,
		"purpose":           "Home Purchase",
		"employment_status": "employed",
		"annual_income":     90000,
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(actorHeader, applicant.ID.String())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var dto appuc.ApplicationDTO
	decodeBody(t, rec, &dto)
	if dto.Status != appDomain.StatusDraft {
		t.Fatalf("expected draft, got %s", dto.Status)
	}
	if !strings.HasPrefix(dto.LoanNumber, "LN-") {
		t.Fatalf("loan number missing: %q", dto.LoanNumber)
	}
}

func TestCreateApplication_ValidationDetails(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(&appmock.Repo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", mustJSON(map[string]any{
		"loan_amount": 1000,
		"purpose":     "x",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if !hasFieldDetail(resp.Details, "ApplicantID", "required") {
		t.Fatalf("missing applicant_id detail: %+v", resp.Details)
	}
	if !hasFieldDetail(resp.Details, "Purpose", "at least 2") {
		t.Fatalf("missing purpose detail: %+v", resp.Details)
	}
}

func TestCreateApplication_BadActorHeader(t *testing.T) {
	e := newEchoWithValidator()
	h := newApplicationHandler(&appmock.Repo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", mustJSON(map[string]any{
		"applicant_id":      applicant.ID.String(),
		"loan_amount":       1000,
		"purpose":           "Home Purchase",
		"employment_status": "employed",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(actorHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetApplication(t *testing.T) {
	e := newEchoWithValidator()
	known := &appDomain.LoanApplication{ID: uuid.New(), LoanNumber: "LN-1", Status: appDomain.StatusDraft}
	h := newApplicationHandler(&appmock.Repo{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*appDomain.LoanApplication, error) {
			if id == known.ID {
				return known, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	})

	get := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		if err := h.Get(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	if rec := get(known.ID.String()); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := get(uuid.NewString()); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := get("nope"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListApplications_Envelope(t *testing.T) {
	e := newEchoWithValidator()
	var gotOffset, gotLimit int
	h := newApplicationHandler(&appmock.Repo{
		ListFn: func(ctx context.Context, offset, limit int) ([]appDomain.LoanApplication, int64, error) {
			gotOffset, gotLimit = offset, limit
			return []appDomain.LoanApplication{{ID: uuid.New()}, {ID: uuid.New()}}, 42, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications?page=3&limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotOffset != 4 || gotLimit != 2 {
		t.Fatalf("pagination not forwarded: offset=%d limit=%d", gotOffset, gotLimit)
	}
	var resp struct {
		Data  []appuc.ApplicationDTO `json:"data"`
		Total int64                  `json:"total"`
		Page  int                    `json:"page"`
		Limit int                    `json:"limit"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Data) != 2 || resp.Total != 42 || resp.Page != 3 || resp.Limit != 2 {
		t.Fatalf("envelope wrong: %+v", resp)
	}
}

func TestDeleteApplication(t *testing.T) {
	e := newEchoWithValidator()
	known := &appDomain.LoanApplication{ID: uuid.New(), LoanNumber: "LN-1"}
	var deleted bool
	h := newApplicationHandler(&appmock.Repo{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*appDomain.LoanApplication, error) {
			if id == known.ID {
				return known, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		DeleteCascadeFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/applications/"+known.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(known.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || !deleted {
		t.Fatalf("expected 204 with cascade, got %d deleted=%v", rec.Code, deleted)
	}
}

func TestAddIncome(t *testing.T) {
	e := newEchoWithValidator()
	known := &appDomain.LoanApplication{ID: uuid.New()}
	h := newApplicationHandler(&appmock.Repo{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*appDomain.LoanApplication, error) {
			return known, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/"+known.ID.String()+"/income", mustJSON(map[string]any{
		"income_type":    "salary",
		"source":         "Acme Corp",
		"monthly_amount": 7500,
		"is_primary":     true,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(actorHeader, applicant.ID.String())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(known.ID.String())

	if err := h.AddIncome(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var out appDomain.IncomeRecord
	decodeBody(t, rec, &out)
	if out.IncomeType != appDomain.IncomeSalary || !out.IsPrimary {
		t.Fatalf("record wrong: %+v", out)
	}
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	userDomain "github.com/dmoriart/LoanOrig/internal/domain/user"
	"github.com/dmoriart/LoanOrig/internal/testutil/usermock"
	useruc "github.com/dmoriart/LoanOrig/internal/usecase/user"
)

func TestCreateUser(t *testing.T) {
	e := newEchoWithValidator()
	h := NewUserHandler(useruc.NewUsecase(&usermock.Repo{}))

	t.Run("created", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", mustJSON(map[string]any{
			"email":      "uw@bank.test",
			"first_name": "Ursula",
			"last_name":  "Wright",
			"role":       "underwriter",
		}))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var u userDomain.User
		decodeBody(t, rec, &u)
		if u.Role != userDomain.RoleUnderwriter || !u.IsActive {
			t.Fatalf("user wrong: %+v", u)
		}
	})

	t.Run("malformed email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", mustJSON(map[string]any{
			"email":      "nope",
			"first_name": "A",
			"last_name":  "B",
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
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &usermock.Repo{
			GetByEmailFn: func(ctx context.Context, email string) (*userDomain.User, error) {
				return &userDomain.User{ID: uuid.New(), Email: email}, nil
			},
		}
		dup := NewUserHandler(useruc.NewUsecase(repo))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", mustJSON(map[string]any{
			"email":      "dup@bank.test",
			"first_name": "A",
			"last_name":  "B",
		}))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := dup.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestGetUser(t *testing.T) {
	e := newEchoWithValidator()
	h := NewUserHandler(useruc.NewUsecase(usermock.Known(applicant)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+applicant.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(applicant.ID.String())
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	userDomain "github.com/dmoriart/LoanOrig/internal/domain/user"
	useruc "github.com/dmoriart/LoanOrig/internal/usecase/user"
)

type UserHandler struct{ uc *useruc.Usecase }

func NewUserHandler(uc *useruc.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type createUserReq struct {
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,max=20"`
	Role      string `json:"role"`
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	u, err := h.uc.Create(c.Request().Context(), useruc.CreateInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      userDomain.Role(req.Role),
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	u, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	userDomain "github.com/dmoriart/LoanOrig/internal/domain/user"
)

// actorHeader carries the acting user for the audit trail. No authentication
// here; the header is trusted plumbing from the (out of scope) auth layer.
const actorHeader = "X-Actor-Id"

func actorID(c echo.Context) (uuid.UUID, error) {
	raw := c.Request().Header.Get(actorHeader)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid " + actorHeader + " header")
	}
	return id, nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name + " path param")
	}
	return id, nil
}

// respondErr maps domain error kinds onto HTTP codes. Anything unrecognized is
// an opaque 500 so internals never leak to callers.
func respondErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appDomain.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrNotFound), errors.Is(err, userDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, appDomain.ErrConcurrentModification):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Retryable: true})
	case errors.Is(err, appDomain.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable", Retryable: true})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// pagedResponse is the envelope for every list endpoint.
type pagedResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

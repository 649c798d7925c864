package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	audituc "github.com/dmoriart/LoanOrig/internal/usecase/audit"
	"github.com/dmoriart/LoanOrig/pkg/pagination"
)

type AuditHandler struct{ uc *audituc.Usecase }

func NewAuditHandler(uc *audituc.Usecase) *AuditHandler { return &AuditHandler{uc: uc} }

// Trail returns the chronological audit entries for one application.
func (h *AuditHandler) Trail(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	p := pagination.Parse(c)
	entries, total, err := h.uc.List(c.Request().Context(), audituc.ListInput{
		EntityType: "loan_application",
		EntityID:   id,
		Offset:     p.Offset,
		Limit:      p.Limit,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Data: entries, Total: total, Page: p.Page, Limit: p.Limit})
}

// List returns the global trail, optionally filtered by entity or actor.
func (h *AuditHandler) List(c echo.Context) error {
	p := pagination.Parse(c)
	in := audituc.ListInput{
		EntityType: c.QueryParam("entity_type"),
		Offset:     p.Offset,
		Limit:      p.Limit,
	}
	if raw := c.QueryParam("entity_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "entity_id must be a UUID"})
		}
		in.EntityID = id
	}
	if raw := c.QueryParam("actor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "actor_id must be a UUID"})
		}
		in.ActorID = id
	}
	entries, total, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Data: entries, Total: total, Page: p.Page, Limit: p.Limit})
}

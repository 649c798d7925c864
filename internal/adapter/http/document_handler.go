package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	docuc "github.com/dmoriart/LoanOrig/internal/usecase/document"
)

type DocumentHandler struct{ uc *docuc.Usecase }

func NewDocumentHandler(uc *docuc.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

type uploadDocumentReq struct {
	DocumentType string `json:"document_type" validate:"required,max=100"`
	FileName     string `json:"file_name"     validate:"required,max=255"`
	FileSize     int64  `json:"file_size"     validate:"gte=0"`
	MimeType     string `json:"mime_type"     validate:"omitempty,max=100"`
	IsRequired   bool   `json:"is_required"`
}

func (h *DocumentHandler) Upload(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req uploadDocumentReq
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

	doc, err := h.uc.Upload(c.Request().Context(), docuc.UploadInput{
		ApplicationID: id,
		UploadedBy:    actor,
		DocumentType:  req.DocumentType,
		FileName:      req.FileName,
		FileSize:      req.FileSize,
		MimeType:      req.MimeType,
		IsRequired:    req.IsRequired,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) Verify(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	doc, err := h.uc.Verify(c.Request().Context(), id, actor)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

type rejectDocumentReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *DocumentHandler) Reject(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req rejectDocumentReq
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
	doc, err := h.uc.Reject(c.Request().Context(), id, actor, req.Reason)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) ListByApplication(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	docs, err := h.uc.ListByApplication(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

package document

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
	documentDomain "github.com/dmoriart/LoanOrig/internal/domain/document"
	"github.com/dmoriart/LoanOrig/internal/domain/uow"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	audituc "github.com/dmoriart/LoanOrig/internal/usecase/audit"
)

// Usecase manages document metadata rows. File bytes are out of scope; only
// status bookkeeping lives here.
type Usecase struct {
	docs  documentDomain.Repository
	users user.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(docs documentDomain.Repository, users user.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{docs: docs, users: users, uow: tx}
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

type UploadInput struct {
	ApplicationID uuid.UUID
	UploadedBy    uuid.UUID
	DocumentType  string
	FileName      string
	FileSize      int64
	MimeType      string
	IsRequired    bool
}

func (u *Usecase) Upload(ctx context.Context, in UploadInput) (*documentDomain.Document, error) {
	if strings.TrimSpace(in.DocumentType) == "" {
		return nil, fmt.Errorf("%w: document_type is required", appDomain.ErrValidation)
	}
	if strings.TrimSpace(in.FileName) == "" {
		return nil, fmt.Errorf("%w: file_name is required", appDomain.ErrValidation)
	}
	if in.FileSize < 0 {
		return nil, fmt.Errorf("%w: file_size must be non-negative", appDomain.ErrValidation)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, in.UploadedBy)
	if err != nil {
		return nil, err
	}
	if actor.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: uploaded_by is required", appDomain.ErrValidation)
	}

	d := &documentDomain.Document{
		ID:            uuid.New(),
		ApplicationID: in.ApplicationID,
		UploadedBy:    in.UploadedBy,
		DocumentType:  strings.TrimSpace(in.DocumentType),
		FileName:      strings.TrimSpace(in.FileName),
		FileSize:      in.FileSize,
		MimeType:      in.MimeType,
		Status:        documentDomain.StatusUploaded,
		IsRequired:    in.IsRequired,
	}
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.LoanApplication) error {
		if err := r.Documents.Create(ctx, d); err != nil {
			return err
		}
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionUploadDocument,
			"document", d.ID, nil, map[string]any{
				"application_id": a.ID,
				"document_type":  d.DocumentType,
				"file_name":      d.FileName,
			})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return d, nil
}

// Verify moves a document to verified and stamps verified_at/verified_by.
func (u *Usecase) Verify(ctx context.Context, docID, verifierID uuid.UUID) (*documentDomain.Document, error) {
	actor, err := audituc.ResolveActor(ctx, u.users, verifierID)
	if err != nil {
		return nil, err
	}
	if actor.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: verifier is required", appDomain.ErrValidation)
	}

	var out *documentDomain.Document
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Documents.GetByID(ctx, docID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return err
		}
		if d.Status == documentDomain.StatusVerified {
			out = d
			return nil
		}
		old := d.Status
		now := time.Now().UTC()
		d.Status = documentDomain.StatusVerified
		d.VerifiedBy = &verifierID
		d.VerifiedAt = &now
		d.RejectionReason = ""
		if err := r.Documents.Save(ctx, d); err != nil {
			return err
		}
		out = d
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionVerifyDocument,
			"document", d.ID,
			map[string]any{"status": old},
			map[string]any{"status": d.Status, "verified_at": d.VerifiedAt})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Reject marks a document rejected with a reason; verified_at stays unset.
func (u *Usecase) Reject(ctx context.Context, docID, verifierID uuid.UUID, reason string) (*documentDomain.Document, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", appDomain.ErrValidation)
	}
	actor, err := audituc.ResolveActor(ctx, u.users, verifierID)
	if err != nil {
		return nil, err
	}
	if actor.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: verifier is required", appDomain.ErrValidation)
	}

	var out *documentDomain.Document
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Documents.GetByID(ctx, docID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return err
		}
		old := d.Status
		d.Status = documentDomain.StatusRejected
		d.RejectionReason = strings.TrimSpace(reason)
		d.VerifiedBy = nil
		d.VerifiedAt = nil
		if err := r.Documents.Save(ctx, d); err != nil {
			return err
		}
		out = d
		return audituc.Record(ctx, r.Audit, actor, auditDomain.ActionRejectDocument,
			"document", d.ID,
			map[string]any{"status": old},
			map[string]any{"status": d.Status, "rejection_reason": d.RejectionReason})
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (u *Usecase) ListByApplication(ctx context.Context, appID uuid.UUID) ([]documentDomain.Document, error) {
	docs, err := u.docs.ListByApplication(ctx, appID)
	if err != nil {
		return nil, storeErr(err)
	}
	return docs, nil
}

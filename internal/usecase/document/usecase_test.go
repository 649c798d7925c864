package document

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	auditDomain "github.com/dmoriart/LoanOrig/internal/domain/audit"
	documentDomain "github.com/dmoriart/LoanOrig/internal/domain/document"
	"github.com/dmoriart/LoanOrig/internal/domain/uow"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	"github.com/dmoriart/LoanOrig/internal/testutil/appmock"
	"github.com/dmoriart/LoanOrig/internal/testutil/auditmock"
	"github.com/dmoriart/LoanOrig/internal/testutil/docmock"
	"github.com/dmoriart/LoanOrig/internal/testutil/uowmock"
	"github.com/dmoriart/LoanOrig/internal/testutil/usermock"
)

var processor = &user.User{ID: uuid.New(), Email: "proc@bank.test", Role: user.RoleProcessor}

// memDocs keeps documents in a slice so Save/GetByID round-trip.
type memDocs struct {
	docmock.Repo
	rows []documentDomain.Document
}

func newMemDocs() *memDocs {
	m := &memDocs{}
	m.CreateFn = func(ctx context.Context, d *documentDomain.Document) error {
		m.rows = append(m.rows, *d)
		return nil
	}
	m.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
		for i := range m.rows {
			if m.rows[i].ID == id {
				d := m.rows[i]
				return &d, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	}
	m.SaveFn = func(ctx context.Context, d *documentDomain.Document) error {
		for i := range m.rows {
			if m.rows[i].ID == d.ID {
				m.rows[i] = *d
				return nil
			}
		}
		return gorm.ErrRecordNotFound
	}
	m.ListByApplicationFn = func(ctx context.Context, appID uuid.UUID) ([]documentDomain.Document, error) {
		return m.rows, nil
	}
	return m
}

func fixture() (*Usecase, *memDocs, *auditmock.Repo, *appDomain.LoanApplication) {
	a := &appDomain.LoanApplication{ID: uuid.New(), Status: appDomain.StatusSubmitted}
	docs := newMemDocs()
	trail := &auditmock.Repo{}
	users := usermock.Known(processor)
	apps := &appmock.Repo{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*appDomain.LoanApplication, error) {
			if id == a.ID {
				return a, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Users: users, Applications: apps, Documents: docs, Audit: trail})
	return NewUsecase(docs, users, tx), docs, trail, a
}

func TestUsecase_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores metadata as uploaded", func(t *testing.T) {
		uc, docs, trail, a := fixture()

		d, err := uc.Upload(ctx, UploadInput{
			ApplicationID: a.ID,
			UploadedBy:    processor.ID,
			DocumentType:  "w2",
			FileName:      "w2-2025.pdf",
			FileSize:      120_000,
			MimeType:      "application/pdf",
			IsRequired:    true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Status != documentDomain.StatusUploaded {
			t.Fatalf("want status uploaded, got %s", d.Status)
		}
		if d.VerifiedAt != nil || d.VerifiedBy != nil {
			t.Fatalf("fresh upload must not be verified: %+v", d)
		}
		if len(docs.rows) != 1 {
			t.Fatalf("document not persisted")
		}
		if len(trail.Entries) != 1 || trail.Entries[0].Action != auditDomain.ActionUploadDocument {
			t.Fatalf("want one UPLOAD_DOCUMENT entry, got %+v", trail.Entries)
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc, _, _, a := fixture()
		for name, in := range map[string]UploadInput{
			"blank type":     {ApplicationID: a.ID, UploadedBy: processor.ID, DocumentType: " ", FileName: "f.pdf"},
			"blank filename": {ApplicationID: a.ID, UploadedBy: processor.ID, DocumentType: "w2", FileName: ""},
			"negative size":  {ApplicationID: a.ID, UploadedBy: processor.ID, DocumentType: "w2", FileName: "f.pdf", FileSize: -1},
			"no uploader":    {ApplicationID: a.ID, DocumentType: "w2", FileName: "f.pdf"},
		} {
			if _, err := uc.Upload(ctx, in); !errors.Is(err, appDomain.ErrValidation) {
				t.Fatalf("%s: want ErrValidation, got %v", name, err)
			}
		}
	})

	t.Run("unknown application", func(t *testing.T) {
		uc, _, _, _ := fixture()
		in := UploadInput{ApplicationID: uuid.New(), UploadedBy: processor.ID, DocumentType: "w2", FileName: "f.pdf"}
		if _, err := uc.Upload(ctx, in); !errors.Is(err, appDomain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestUsecase_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps verifier and time, idempotent after", func(t *testing.T) {
		uc, _, trail, a := fixture()
		d, err := uc.Upload(ctx, UploadInput{ApplicationID: a.ID, UploadedBy: processor.ID, DocumentType: "w2", FileName: "f.pdf"})
		if err != nil {
			t.Fatalf("upload: %v", err)
		}

		v, err := uc.Verify(ctx, d.ID, processor.ID)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if v.Status != documentDomain.StatusVerified || v.VerifiedAt == nil || v.VerifiedBy == nil || *v.VerifiedBy != processor.ID {
			t.Fatalf("verification not stamped: %+v", v)
		}
		auditCount := len(trail.Entries)

		again, err := uc.Verify(ctx, d.ID, processor.ID)
		if err != nil {
			t.Fatalf("repeat verify: %v", err)
		}
		if !again.VerifiedAt.Equal(*v.VerifiedAt) {
			t.Fatalf("repeat verify changed timestamp")
		}
		if len(trail.Entries) != auditCount {
			t.Fatalf("repeat verify must not audit")
		}
	})

	t.Run("verify clears earlier rejection", func(t *testing.T) {
		uc, _, _, a := fixture()
		d, _ := uc.Upload(ctx, UploadInput{ApplicationID: a.ID, UploadedBy: processor.ID, DocumentType: "w2", FileName: "f.pdf"})
		if _, err := uc.Reject(ctx, d.ID, processor.ID, "blurry scan"); err != nil {
			t.Fatalf("reject: %v", err)
		}
		v, err := uc.Verify(ctx, d.ID, processor.ID)
		if err != nil {
			t.Fatalf("verify after reject: %v", err)
		}
		if v.RejectionReason != "" {
			t.Fatalf("rejection reason not cleared: %q", v.RejectionReason)
		}
	})

	t.Run("unknown document", func(t *testing.T) {
		uc, _, _, _ := fixture()
		if _, err := uc.Verify(ctx, uuid.New(), processor.ID); !errors.Is(err, appDomain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestUsecase_Reject(t *testing.T) {
	ctx := context.Background()
	uc, _, trail, a := fixture()
	d, _ := uc.Upload(ctx, UploadInput{ApplicationID: a.ID, UploadedBy: processor.ID, DocumentType: "paystub", FileName: "p.pdf"})

	if _, err := uc.Reject(ctx, d.ID, processor.ID, "  "); !errors.Is(err, appDomain.ErrValidation) {
		t.Fatalf("blank reason: want ErrValidation, got %v", err)
	}

	r, err := uc.Reject(ctx, d.ID, processor.ID, "illegible")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if r.Status != documentDomain.StatusRejected || r.RejectionReason != "illegible" {
		t.Fatalf("rejection not recorded: %+v", r)
	}
	if r.VerifiedAt != nil || r.VerifiedBy != nil {
		t.Fatalf("rejected document must not carry verification: %+v", r)
	}
	last := trail.Entries[len(trail.Entries)-1]
	if last.Action != auditDomain.ActionRejectDocument {
		t.Fatalf("want REJECT_DOCUMENT entry, got %s", last.Action)
	}
}

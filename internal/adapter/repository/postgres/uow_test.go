package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	auditDomain "github.com/dmoriart/LoanOrig/internal/domain/audit"
	"github.com/dmoriart/LoanOrig/internal/domain/uow"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
)

func TestGormUoW_WithinTx_RollsBackTogether(t *testing.T) {
	gdb := openTestDB(t)
	tx := NewGormUoW(gdb)
	ctx := context.Background()
	applicant := makeUser(t, gdb, user.RoleApplicant)

	boom := errors.New("boom")
	a := makeApplication(applicant.ID)

	err := tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		if err := r.Audit.Append(ctx, &auditDomain.Entry{ID: uuid.New(), Action: auditDomain.ActionCreateApplication, EntityType: "loan_application", EntityID: a.ID}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	// neither the application nor its audit entry may survive
	if _, err := NewApplicationRepository(gdb).GetByID(ctx, a.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("application leaked out of rolled-back tx: %v", err)
	}
	var n int64
	if err := gdb.Model(&auditDomain.Entry{}).Where("entity_id = ?", a.ID).Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("audit entry leaked: n=%d err=%v", n, err)
	}
}

func TestGormUoW_WithinApplicationTx(t *testing.T) {
	gdb := openTestDB(t)
	tx := NewGormUoW(gdb)
	repo := NewApplicationRepository(gdb)
	ctx := context.Background()
	applicant := makeUser(t, gdb, user.RoleApplicant)

	a := makeApplication(applicant.ID)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("loads and commits", func(t *testing.T) {
		err := tx.WithinApplicationTx(ctx, a.ID, func(r uow.Repos, loaded *appDomain.LoanApplication) error {
			if loaded.ID != a.ID {
				t.Fatalf("wrong aggregate loaded: %s", loaded.ID)
			}
			loaded.Status = appDomain.StatusSubmitted
			return r.Applications.SaveVersioned(ctx, loaded)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := repo.GetByID(ctx, a.ID)
		if got.Status != appDomain.StatusSubmitted || got.Version != 2 {
			t.Fatalf("mutation not committed: %+v", got)
		}
	})

	t.Run("unknown application", func(t *testing.T) {
		err := tx.WithinApplicationTx(ctx, uuid.New(), func(r uow.Repos, loaded *appDomain.LoanApplication) error {
			t.Fatalf("callback must not run")
			return nil
		})
		if !errors.Is(err, appDomain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	dbinfra "github.com/dmoriart/LoanOrig/internal/infrastructure/db"
)

// openTestDB gives each test its own in-memory sqlite with the full schema.
// The domain models avoid postgres-only column types, so the production
// migration runs unchanged here.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbinfra.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func makeApplication(applicantID uuid.UUID) *appDomain.LoanApplication {
	return &appDomain.LoanApplication{
		ID:               uuid.New(),
		ApplicantID:      applicantID,
		LoanNumber:       "LN-20260831-" + uuid.NewString()[:8],
		LoanAmount:       decimal.NewFromInt(250000),
		AnnualIncome:     decimal.NewFromInt(90000),
		CreditScore:      700,
		Purpose:          "Home Purchase",
		EmploymentStatus: appDomain.EmploymentEmployed,
		Status:           appDomain.StatusDraft,
		Version:          1,
	}
}

func makeUser(t *testing.T, gdb *gorm.DB, role user.Role) *user.User {
	t.Helper()
	u := &user.User{
		ID:        uuid.New(),
		Email:     uuid.NewString()[:8] + "@bank.test",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	if err := NewUserRepository(gdb).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func backdate(t *testing.T, gdb *gorm.DB, id uuid.UUID, at time.Time) {
	t.Helper()
	err := gdb.Model(&appDomain.LoanApplication{}).Where("id = ?", id).
		UpdateColumn("created_at", at).Error
	if err != nil {
		t.Fatalf("backdate: %v", err)
	}
}

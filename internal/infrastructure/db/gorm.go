package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dmoriart/LoanOrig/internal/domain/application"
	"github.com/dmoriart/LoanOrig/internal/domain/audit"
	"github.com/dmoriart/LoanOrig/internal/domain/decision"
	"github.com/dmoriart/LoanOrig/internal/domain/document"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	"github.com/dmoriart/LoanOrig/internal/domain/workflow"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(postgres.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	gdb, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return gdb, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&user.User{},
		&application.LoanApplication{},
		&application.IncomeRecord{},
		&application.AssetRecord{},
		&application.LiabilityRecord{},
		&document.Document{},
		&decision.UnderwritingDecision{},
		&workflow.Step{},
		&audit.Entry{},
	)
}

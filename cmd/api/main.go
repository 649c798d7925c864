package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "github.com/dmoriart/LoanOrig/internal/adapter/http"
	mw "github.com/dmoriart/LoanOrig/internal/adapter/middleware"
	"github.com/dmoriart/LoanOrig/internal/adapter/repository/postgres"
	"github.com/dmoriart/LoanOrig/internal/config"
	"github.com/dmoriart/LoanOrig/internal/infrastructure/cache"
	"github.com/dmoriart/LoanOrig/internal/infrastructure/db"
	appuc "github.com/dmoriart/LoanOrig/internal/usecase/application"
	audituc "github.com/dmoriart/LoanOrig/internal/usecase/audit"
	docuc "github.com/dmoriart/LoanOrig/internal/usecase/document"
	useruc "github.com/dmoriart/LoanOrig/internal/usecase/user"
	workflowuc "github.com/dmoriart/LoanOrig/internal/usecase/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.PostgresDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories + unit of work
	userRepo := postgres.NewUserRepository(gdb)
	appRepo := postgres.NewApplicationRepository(gdb)
	docRepo := postgres.NewDocumentRepository(gdb)
	auditRepo := postgres.NewAuditRepository(gdb)
	tx := postgres.NewGormUoW(gdb)

	// usecases
	users := useruc.NewUsecase(userRepo)
	apps := appuc.NewUsecase(appRepo, userRepo, tx)
	wf := workflowuc.NewUsecase(userRepo, tx)
	docs := docuc.NewUsecase(docRepo, userRepo, tx)
	trail := audituc.NewUsecase(auditRepo)

	// handlers
	h := httpadp.NewHandler()
	userH := httpadp.NewUserHandler(users)
	appH := httpadp.NewApplicationHandler(apps)
	trH := httpadp.NewTransitionHandler(wf)
	docH := httpadp.NewDocumentHandler(docs)
	auditH := httpadp.NewAuditHandler(trail)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	api.Use(mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	api.POST("/users", userH.Create)
	api.GET("/users/:id", userH.Get)

	api.POST("/applications", appH.Create)
	api.GET("/applications", appH.List)
	api.GET("/applications/:id", appH.Get)
	api.DELETE("/applications/:id", appH.Delete)
	api.GET("/stats", appH.Stats)

	api.POST("/applications/:id/transition", trH.Transition)
	api.POST("/applications/:id/workflow-steps", trH.AddStep)
	api.GET("/applications/:id/workflow-steps", trH.ListSteps)
	api.POST("/workflow-steps/:id/complete", trH.CompleteStep)

	api.POST("/applications/:id/income", appH.AddIncome)
	api.POST("/applications/:id/assets", appH.AddAsset)
	api.POST("/applications/:id/liabilities", appH.AddLiability)

	api.POST("/applications/:id/documents", docH.Upload)
	api.GET("/applications/:id/documents", docH.ListByApplication)
	api.POST("/documents/:id/verify", docH.Verify)
	api.POST("/documents/:id/reject", docH.Reject)

	api.GET("/applications/:id/audit", auditH.Trail)
	api.GET("/audit", auditH.List)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

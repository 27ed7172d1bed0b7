package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"koperasi-core/internal/adapter/http"
	"koperasi-core/internal/adapter/middleware"
	"koperasi-core/internal/adapter/repository/mysql"
	"koperasi-core/internal/config"
	"koperasi-core/internal/domain/account"
	"koperasi-core/internal/domain/journal"
	"koperasi-core/internal/domain/loan"
	"koperasi-core/internal/domain/provision"
	"koperasi-core/internal/infrastructure/cache"
	"koperasi-core/internal/infrastructure/db"
	"koperasi-core/internal/usecase/amortization"
	"koperasi-core/internal/usecase/ckpn"
	"koperasi-core/internal/usecase/interest"
	"koperasi-core/internal/usecase/ledger"
	loanuc "koperasi-core/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&account.Account{},
		&journal.Entry{},
		&journal.Line{},
		&journal.Sequence{},
		&loan.Loan{},
		&loan.Installment{},
		&loan.Payment{},
		&provision.Record{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	accounts := mysql.NewAccountRepository(gormDB)
	journals := mysql.NewJournalRepository(gormDB)
	loans := mysql.NewLoanRepository(gormDB)
	provisions := mysql.NewProvisionRepository(gormDB)
	txm := mysql.NewGormUoW(gormDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := account.EnsureDefaultChart(ctx, accounts); err != nil {
		cancel()
		log.Fatalf("chart of accounts: %v", err)
	}
	cancel()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	ie := interest.NewEngine()
	ae := amortization.NewEngine(ie)
	ledgerUC := ledger.NewUsecase(txm, accounts, journals)
	loanUC := loanuc.NewUsecase(loans, txm, ledgerUC, ie, ae)
	ckpnSvc := ckpn.NewService(txm, loans, provisions, ledgerUC)

	base := http.NewHandler()
	ledgerH := http.NewLedgerHandler(ledgerUC)
	loanH := http.NewLoanHandler(loanUC)
	ckpnH := http.NewCKPNHandler(ckpnSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = http.NewValidator()

	e.GET("/health", base.Health)

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	v1 := e.Group("/v1", idemp)

	v1.POST("/journal-entries", ledgerH.CreateEntry)
	v1.GET("/journal-entries/:entry_id", ledgerH.GetEntry)
	v1.POST("/journal-entries/:entry_id/post", ledgerH.PostEntry)
	v1.POST("/journal-entries/:entry_id/reverse", ledgerH.ReverseEntry)
	v1.GET("/accounts/:code/ledger", ledgerH.AccountLedger)
	v1.GET("/trial-balance", ledgerH.TrialBalance)

	v1.POST("/loans", loanH.CreateLoan)
	v1.GET("/loans/:loan_id", loanH.GetLoan)
	v1.POST("/loans/:loan_id/approve", loanH.ApproveLoan)
	v1.POST("/loans/:loan_id/reject", loanH.RejectLoan)
	v1.POST("/loans/:loan_id/default", loanH.DefaultLoan)
	v1.POST("/loans/:loan_id/payments", loanH.PayLoan)
	v1.GET("/loans/:loan_id/schedule", loanH.GetSchedule)
	v1.POST("/loans/simulate", loanH.Simulate)

	v1.POST("/ckpn/run", ckpnH.RunProvision)
	v1.GET("/loans/:loan_id/provision", ckpnH.GetLoanProvision)

	e.Logger.Fatal(e.Start(":" + cfg.AppPort))
}

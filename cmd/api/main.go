package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
	"github.com/MrJamesThe3rd/invoicer/internal/config"
	"github.com/MrJamesThe3rd/invoicer/internal/database"
	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
	"github.com/MrJamesThe3rd/invoicer/internal/export"
	invoicerHttp "github.com/MrJamesThe3rd/invoicer/internal/http"
	customerHandler "github.com/MrJamesThe3rd/invoicer/internal/http/customer"
	exportHandler "github.com/MrJamesThe3rd/invoicer/internal/http/export"
	invoiceHandler "github.com/MrJamesThe3rd/invoicer/internal/http/invoice"
	permissionHandler "github.com/MrJamesThe3rd/invoicer/internal/http/permission"
	reportHandler "github.com/MrJamesThe3rd/invoicer/internal/http/report"
	statementHandler "github.com/MrJamesThe3rd/invoicer/internal/http/statement"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/invoicer/internal/invoice/store"
	"github.com/MrJamesThe3rd/invoicer/internal/permission"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
	"github.com/MrJamesThe3rd/invoicer/internal/statement"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString(), cfg.Server.Timeout)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set, every request is anonymous")
	}

	var (
		repo     = invoiceStore.New(db)
		dates    = datefmt.New(datefmt.English)
		clock    = datefmt.SystemClock{}
		currency = accounting.Currency{Code: cfg.App.Currency}
		policy   = permission.NewPolicy(resolver(cfg))
	)

	var (
		invoiceService   = invoice.NewService(repo)
		statementService = statement.NewService(repo)
		reportService    = report.NewService(repo)
		exportService    = export.NewService(statementService, dates, currency)
	)

	var (
		customerH   = customerHandler.NewHandler(invoiceService, currency)
		invoiceH    = invoiceHandler.NewHandler(invoiceService, dates, currency)
		statementH  = statementHandler.NewHandler(statementService, dates, clock, currency)
		exportH     = exportHandler.NewHandler(exportService)
		reportH     = reportHandler.NewHandler(reportService, dates, currency)
		permissionH = permissionHandler.NewHandler(policy)
	)

	router := invoicerHttp.New(invoicerHttp.Options{
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		Policy:         policy,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, customerH, invoiceH, statementH, exportH, reportH, permissionH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func resolver(cfg *config.Config) permission.TableResolver {
	return permission.NewTableResolver(
		permission.Identity(cfg.Auth.OwnerEmail),
		permission.Identity(cfg.Auth.EmployeeEmail),
	)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/config"
	"github.com/cristovive/gestao/internal/repository/mongodb"
	"github.com/cristovive/gestao/internal/repository/sheets"
	"github.com/cristovive/gestao/internal/scheduler"
	"github.com/cristovive/gestao/internal/server/handlers"
	"github.com/cristovive/gestao/internal/server/router"
	authsvc "github.com/cristovive/gestao/internal/service/auth"
	dashboardsvc "github.com/cristovive/gestao/internal/service/dashboard"
	financesvc "github.com/cristovive/gestao/internal/service/finance"
	rostersvc "github.com/cristovive/gestao/internal/service/roster"
	"github.com/cristovive/gestao/pkg/clients/webhook"
	"github.com/cristovive/gestao/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	memberRepo := mongodb.NewMemberRepository(store, baseLogger.Named("repo.members"))
	transactionRepo := mongodb.NewTransactionRepository(store, baseLogger.Named("repo.finances"))
	userRepo := mongodb.NewUserRepository(store, baseLogger.Named("repo.users"))
	reportRepo := mongodb.NewReportRepository(store, baseLogger.Named("repo.reports"))

	authService := authsvc.NewService(cfg.Auth, userRepo, baseLogger.Named("svc.auth"))
	if err := authService.Bootstrap(context.Background(), cfg.Admin); err != nil {
		baseLogger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	rosterService := rostersvc.NewService(memberRepo, baseLogger.Named("svc.roster"))
	financeService := financesvc.NewService(transactionRepo, baseLogger.Named("svc.finance"))
	dashboardService := dashboardsvc.NewService(memberRepo, transactionRepo, baseLogger.Named("svc.dashboard"))

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Members:   handlers.NewMemberHandler(rosterService, baseLogger.Named("handlers.members")),
		Finance:   handlers.NewFinanceHandler(financeService, baseLogger.Named("handlers.finances")),
		Dashboard: handlers.NewDashboardHandler(dashboardService, baseLogger.Named("handlers.dashboard")),
	}, authService, cfg.CORS, baseLogger.Named("router"))

	if cfg.Reporting.Enabled {
		var exporter sheets.Exporter
		if cfg.Sheets.Enabled() {
			sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
			if err != nil {
				baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
			}
			exporter = sheetExporter
		}

		var notifier webhook.Notifier
		if cfg.Webhook.URL != "" {
			notifier = webhook.NewClient(cfg.Webhook)
		}

		sched, err := scheduler.New(cfg.Reporting, dashboardService, reportRepo, exporter, notifier, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

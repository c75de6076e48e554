package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/bank-ledger-service/internal/adapter/http/controller"
	"github.com/api-sage/bank-ledger-service/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger-service/internal/adapter/http/router"
	"github.com/api-sage/bank-ledger-service/internal/adapter/notification"
	"github.com/api-sage/bank-ledger-service/internal/adapter/repository/memory"
	"github.com/api-sage/bank-ledger-service/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-ledger-service/internal/config"
	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
	"github.com/api-sage/bank-ledger-service/internal/metrics"
	"github.com/api-sage/bank-ledger-service/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		accountStore   domain.AccountStore
		transactionLog domain.TransactionLog
		customerRepo   domain.CustomerRepository
		bankRepo       domain.BankRepository
	)

	switch cfg.StorageDriver {
	case "memory":
		store := memory.NewStore()
		accountStore = store
		transactionLog = store
		customerRepo = memory.NewCustomerRepository()
		bankRepo = memory.NewBankRepository()
	case "postgres":
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			cancel()
			log.Fatalf("run migrations: %v", err)
		}
		cancel()

		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		accountStore = postgres.NewAccountStore(db)
		transactionLog = postgres.NewTransactionLog(db)
		customerRepo = postgres.NewCustomerRepository(db)
		bankRepo = postgres.NewBankRepository(db)
	default:
		log.Fatalf("unknown storage driver %q", cfg.StorageDriver)
	}

	sender := notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	notifier := notification.NewMailNotifier(sender, cfg.NotificationWorkers)

	collector := metrics.NewCollector()

	ledgerService := services.NewLedgerService(accountStore, transactionLog, customerRepo, notifier, collector)
	customerService := services.NewCustomerService(customerRepo)
	adminService := services.NewAdminService(accountStore, transactionLog, customerRepo, bankRepo, notifier)

	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)
	mux := router.New(
		controller.NewLedgerController(ledgerService),
		controller.NewCustomerController(customerService),
		controller.NewAdminController(adminService),
		authMiddleware,
	)

	apiServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := collector.NewServer(cfg.MetricsAddr)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("api server starting", logger.Fields{"addr": cfg.ListenAddr})
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		logger.Info("metrics server starting", logger.Fields{"addr": cfg.MetricsAddr})
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutdown signal received", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var shutdownErr error
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			shutdownErr = err
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
		if err := notifier.Shutdown(shutdownCtx); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
		return shutdownErr
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
	logger.Info("server stopped", nil)
}

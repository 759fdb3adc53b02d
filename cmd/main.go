package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mokha/internal/auth"
	"mokha/internal/config"
	httpapi "mokha/internal/http"
	"mokha/internal/logger"
	"mokha/internal/repository"
	"mokha/internal/seed"
	"mokha/internal/service"
	"mokha/internal/stock"

	_ "mokha/docs"
)

// @title Mokha POS API
// @version 1.0
// @description Storefront checkout, catalog and back-office API.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	customersRepo := repository.NewMemoryCustomers(store)
	employeesRepo := repository.NewMemoryEmployees(store)
	settingsRepo := repository.NewMemorySettings(store)
	notificationsRepo := repository.NewMemoryNotifications(store)
	tx := repository.NewMemoryTx(store)

	if cfg.SeedDemoData {
		if err := seed.Store(context.Background(), store, customersRepo, employeesRepo, settingsRepo, notificationsRepo); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		log.Info("demo data seeded")
	}

	settler := stock.Settler{Strict: cfg.StrictSettlement}
	svc := httpapi.Services{
		Checkout:  service.NewCheckoutService(store, ordersRepo, customersRepo, settingsRepo, notificationsRepo, tx, settler, log),
		Catalog:   service.NewCatalogService(store, settingsRepo, notificationsRepo, tx, settler, log),
		Orders:    service.NewOrderService(ordersRepo, log),
		Customers: service.NewCustomerService(customersRepo, log),
		Employees: service.NewEmployeeService(employeesRepo),
		Settings:  service.NewSettingsService(settingsRepo),
		Reports:   service.NewReportService(store, ordersRepo, settingsRepo),
		Backup:    service.NewBackupService(store, ordersRepo, customersRepo, employeesRepo, settingsRepo, notificationsRepo, tx, log),
	}

	admin, err := auth.NewAdmin(cfg.AdminUser, cfg.AdminPassword, cfg.JWTSigningKey, cfg.JWTExpirationHours)
	if err != nil {
		log.Fatal("admin setup failed", zap.Error(err))
	}

	srv := httpapi.NewServer(svc, admin, log)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/launa-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/launa-backend-go/internal/repository/cached"
	serviceAuth "github.com/cmlabs-hris/launa-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/launa-backend-go/internal/service/dashboard"
	payrollService "github.com/cmlabs-hris/launa-backend-go/internal/service/payroll"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer records.close()

	var (
		cacheStore cache.Store
		purger     cron.Purger
	)
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		cacheStore = redisCache
	} else {
		memoryCache := cache.NewMemory()
		cacheStore = memoryCache
		purger = memoryCache
	}
	defer cacheStore.Close()

	shiftRepo := cached.NewShiftRepository(records.shifts, cacheStore, cfg.Cache.TTL)
	saleRepo := cached.NewSaleRepository(records.sales, cacheStore, cfg.Cache.TTL)

	hub := sse.NewHub(16)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cacheStore)
	calculator := payrollService.NewCalculator(cfg.Pay)
	netEstimator := payrollService.NewNetEstimator(cfg.Tax)

	authService := serviceAuth.NewAuthService(records.employees, JWTService)
	payrollSvc := payrollService.NewPayrollService(shiftRepo, saleRepo, calculator, netEstimator, hub)
	dashboardSvc := dashboardService.NewDashboardService(shiftRepo, saleRepo, netEstimator)

	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(shiftRepo, calculator, records.transactor, purger).RegisterJobs(scheduler, cfg.Reconcile)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.App.CORSOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewEventHandler(authService, JWTService, hub),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end when their request context does, so tie it to the signal
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Type, "env", cfg.App.Env)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

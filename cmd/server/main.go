package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/application/settlement"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/auth"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/cache"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/config"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/logger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/interfaces/http/handler"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	var branchCache cache.BranchCache
	if cfg.Redis.Enabled {
		factory := cache.NewBranchCacheFactory(cfg.Redis, cache.WithLogger(log))
		branchCache, err = factory.CreateCache()
		if err != nil {
			return fmt.Errorf("create branch cache: %w", err)
		}
		defer func() {
			if err := branchCache.Close(); err != nil {
				log.Error("failed to close branch cache", zap.Error(err))
			}
		}()
	}

	// Only assign when the cache is actually configured so the services'
	// nil checks keep working.
	var balanceCache settlement.BalanceCache
	var lookupCache settlement.BranchCache
	if branchCache != nil {
		balanceCache = branchCache
		lookupCache = branchCache
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	settlements := settlement.NewSettlementService(db.DB, balanceCache, log)
	statuses := settlement.NewStatusService(db.DB, balanceCache, log)
	allocations := settlement.NewAllocationService(db.DB, balanceCache, log)
	branches := settlement.NewBranchService(db.DB, lookupCache, log)
	queries := settlement.NewQueryService(db.DB)

	engine := router.New(router.Config{
		Logger:     log,
		JWTService: jwtService,
		System:     handler.NewSystemHandler(db, cfg.App.Name),
		Branch:     handler.NewBranchHandler(branches, allocations),
		Transfer:   handler.NewTransferHandler(settlements, statuses, queries),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return fmt.Errorf("set trusted proxies: %w", err)
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/zmfmock/server/api/handler"
	"github.com/zmfmock/server/internal/config"
	"github.com/zmfmock/server/internal/middleware"
	"github.com/zmfmock/server/internal/router"
	"github.com/zmfmock/server/internal/services/lifecycle"
	"github.com/zmfmock/server/internal/services/sweeper"
	"github.com/zmfmock/server/pkg/httpcontext"
	"github.com/zmfmock/server/pkg/logger"
	"github.com/zmfmock/server/repository/memory"
	authUC "github.com/zmfmock/server/usecase/auth"
	"github.com/zmfmock/server/usecase/mockdata"
	"github.com/zmfmock/server/usecase/resultcache"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	sessionStore := memory.NewSessionStore()
	tokenRegistry := memory.NewTokenRegistry()
	resultSetStore := memory.NewResultSetStore(cfg.Cache.ResultTTL)
	legacyCache := memory.NewLegacyCache()

	sweep := sweeper.New(resultSetStore, cfg.Cache.SweepInterval, zapLogger)
	if err := sweep.Start(); err != nil {
		zapLogger.Fatal("sweeper failed to start", zap.Error(err))
	}
	manager.Register("sweeper", func(ctx context.Context) error {
		return sweep.Stop(ctx)
	})

	validator := authUC.NewValidator(cfg.Auth.Users)
	gate := authUC.New(validator, sessionStore, tokenRegistry, zapLogger)
	cache := resultcache.New(resultSetStore, cfg.Cache.ResultTTL, zapLogger)
	generator := mockdata.New(cfg.Mock.Seed, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Resource: apiHandler.NewResourceHandler(cache, generator, legacyCache, ctxAdapter, zapLogger),
		Admin:    apiHandler.NewAdminHandler(sessionStore, tokenRegistry, resultSetStore, legacyCache, cfg.Cache.ResultTTL, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(sessionStore, tokenRegistry, resultSetStore, legacyCache, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(gate, cfg.Auth.CookieTTL, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("mock server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/auth"
	"github.com/kenalhq/insight-engine/pkg/config"
	"github.com/kenalhq/insight-engine/pkg/database"
	"github.com/kenalhq/insight-engine/pkg/datasource"
	"github.com/kenalhq/insight-engine/pkg/handlers"
	"github.com/kenalhq/insight-engine/pkg/llm"
	"github.com/kenalhq/insight-engine/pkg/logging"
	"github.com/kenalhq/insight-engine/pkg/middleware"
	"github.com/kenalhq/insight-engine/pkg/repositories"
	"github.com/kenalhq/insight-engine/pkg/schema"
	"github.com/kenalhq/insight-engine/pkg/services"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting insight-engine",
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env),
		zap.String("ai_provider", cfg.AI.Provider))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("engine exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	connString := cfg.Database.ConnectionString()

	if err := database.RunMigrations(connString, "migrations", logger); err != nil {
		return err
	}

	db, err := database.NewConnection(ctx, connString, cfg.Database.MaxConnections)
	if err != nil {
		return err
	}
	defer db.Close()

	// Pipeline wiring.
	source := datasource.NewPostgres(db.Pool, logger)

	client, err := llm.NewFromConfig(&cfg.AI, logger)
	if err != nil {
		return err
	}

	discoverer := schema.NewDiscoverer(source, cfg.Schema.SampleRows, logger)
	cache := schema.NewCache(discoverer, cfg.Schema.CacheTTL(), nil)
	synthesizer := services.NewQuerySynthesizer(client, logger)
	dashboard := services.NewSmartDashboardService(cache, synthesizer, source, logger, nil)
	usage := repositories.NewUsageRepository(db)

	// HTTP surface.
	smartGenerate := handlers.NewSmartGenerateHandler(dashboard, usage, cfg.RequestTimeout(), logger)
	usageList := handlers.NewUsageHandler(usage, logger)
	health := handlers.NewHealthHandler(cfg.Version)
	authMW := auth.NewMiddleware(cfg.Auth.JWTSecret, cfg.Auth.EnableVerification, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ai/smart-generate", authMW.RequireAdmin(smartGenerate.Handle))
	mux.HandleFunc("GET /api/ai/usage", authMW.RequireAdmin(usageList.Handle))
	mux.HandleFunc("GET /healthz", health.Handle)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:      middleware.RequestLogger(logger)(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

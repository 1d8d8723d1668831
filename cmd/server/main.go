// Package main is the entry point for the thoth MCP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/tosteiner/thoth/internal/auth"
	"github.com/tosteiner/thoth/internal/config"
	"github.com/tosteiner/thoth/internal/contributor"
	"github.com/tosteiner/thoth/internal/db"
	"github.com/tosteiner/thoth/internal/graphql"
	"github.com/tosteiner/thoth/internal/language"
	"github.com/tosteiner/thoth/internal/logging"
	"github.com/tosteiner/thoth/internal/publisher"
	"github.com/tosteiner/thoth/internal/queries"
	"github.com/tosteiner/thoth/internal/safety"
	"github.com/tosteiner/thoth/internal/telemetry"
	"github.com/tosteiner/thoth/internal/tools"
	"github.com/tosteiner/thoth/internal/work"
)

const (
	defaultConfigPath = "config.yaml"
	serverName        = "thoth"
	serverVersion     = "0.1.0"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, cfgErr := loadConfig()
	config.ApplyEnvOverrides(cfg)

	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)
	if cfgErr != nil {
		logger.Warn("could not load config file, using defaults", "error", cfgErr)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// run wires every component and serves until SIGINT or SIGTERM.
func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokenBefore := cfg.Server.AuthToken
	token, err := config.EnsureAuthToken(cfg)
	if err != nil {
		logger.Warn("could not generate auth token, running without authentication", "error", err)
	} else if tokenBefore == "" {
		logger.Info("generated auth token (set THOTH_MCP_AUTH_TOKEN to persist)", "token", token)
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("set up telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	pool, err := db.Open(ctx, db.Config{
		URL:      cfg.Database.URL,
		Key:      db.EnvDatabaseURL,
		MaxConns: cfg.Database.MaxConns,
	}, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Audit log writer, if enabled.
	var auditLogger *safety.AuditLogger
	if cfg.Audit.Enabled {
		f, err := os.OpenFile(cfg.Audit.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			logger.Warn("could not open audit log, audit logging disabled", "path", cfg.Audit.LogPath, "error", err)
		} else {
			auditLogger = safety.NewAuditLogger(f)
			defer f.Close()
		}
	}

	transport, err := graphql.NewHTTPTransport(cfg.GraphQL)
	if err != nil {
		return fmt.Errorf("create graphql transport: %w", err)
	}
	builder := graphql.NewBuilder(transport, graphql.WithLogger(logger))

	registry, err := queries.NewRegistry()
	if err != nil {
		return err
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	var registrations []tools.Registration
	registrations = append(registrations, graphql.QueryTools(registry, builder, auditLogger)...)
	registrations = append(registrations, language.LanguageTools(language.NewGraphQLLanguageManager(builder), auditLogger)...)
	registrations = append(registrations, work.WorkTools(work.NewGraphQLWorkManager(builder), auditLogger)...)
	registrations = append(registrations, publisher.PublisherTools(publisher.NewGraphQLPublisherManager(builder), auditLogger)...)
	registrations = append(registrations, contributor.ContributorTools(contributor.NewGraphQLContributorManager(builder), auditLogger)...)
	registrations = append(registrations, db.HealthTools(pool, auditLogger)...)

	names := tools.RegisterAll(mcpServer, registrations)
	logger.Info("registered tools", "count", len(names), "queries", len(registry.Names()))

	// Streamable HTTP server wrapped with auth middleware.
	httpHandler := server.NewStreamableHTTPServer(mcpServer)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           auth.NewAuthMiddleware(cfg.Server.AuthToken, logger)(httpHandler),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("thoth listening", "addr", addr, "graphql_url", transport.URL())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		logger.Warn("graceful shutdown error", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

// loadConfig reads the config file from THOTH_CONFIG_PATH or config.yaml.
// If the file cannot be read, DefaultConfig is returned with the error.
func loadConfig() (*config.Config, error) {
	path := os.Getenv("THOTH_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig(), err
	}
	return cfg, nil
}

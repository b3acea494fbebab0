package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"skill-registry/config"
	_ "skill-registry/docs" // Swagger docs
	"skill-registry/internal/httpserver"
	"skill-registry/internal/scanner"
	skillRepo "skill-registry/internal/skill/repository/sqlite"
	"skill-registry/internal/webhook"
	"skill-registry/pkg/github"
	"skill-registry/pkg/log"
	"skill-registry/pkg/metrics"
)

// @title       Skill Registry API
// @description Trust and ingestion pipeline for agent skills: signed GitHub webhooks, SKILL.md parsing, security scanning and integrity hashing.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey ApiKeyAuth
// @in          header
// @name        X-API-Key
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Skill Registry...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, err := skillRepo.Open(cfg.Database.Path)
	if err != nil {
		logger.Errorf(ctx, "Failed to open database %s: %v", cfg.Database.Path, err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Infof(ctx, "Database: %s", cfg.Database.Path)

	// 4. Trust pipeline collaborators
	ghClient := github.New(github.Config{
		Token:     cfg.GitHub.Token,
		BaseURL:   cfg.GitHub.APIURL,
		UserAgent: cfg.GitHub.UserAgent,
	})
	if cfg.GitHub.Token == "" {
		logger.Warn(ctx, "GITHUB_TOKEN not set, GitHub API calls are unauthenticated")
	}

	sc := scanner.New(scanner.WithStrictMode(cfg.Scanner.StrictMode))
	metricsManager := metrics.NewManager(metrics.WithMetricsEnabled(cfg.Metrics.Enabled))

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		TrustedProxies: cfg.HTTPServer.TrustedProxies,
		DB:             db,
		GitHub:         ghClient,
		Scanner:        sc,
		Metrics:        metricsManager,
		MinInstallTier: cfg.Registry.MinInstallTier,
		TrustedOrgs:    cfg.Registry.TrustedOrgs,
		AdminAPIKey:    cfg.Admin.APIKey,
		WebhookSecurity: webhook.SecurityConfig{
			Secret:          cfg.Webhook.Secret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
			MaxBodyBytes:    cfg.Webhook.MaxBodyBytes,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}

package httpserver

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"skill-registry/internal/model"
	"skill-registry/internal/scanner"
	"skill-registry/internal/webhook"
	"skill-registry/pkg/github"
	"skill-registry/pkg/log"
	"skill-registry/pkg/metrics"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Infrastructure
	db      *sql.DB
	github  *github.Client
	scanner *scanner.Scanner
	metrics *metrics.Manager

	// Skill domain
	minInstallTier model.QualityTier
	trustedOrgs    []string
	adminAPIKey    string

	// Webhook gateway
	webhookSecurity webhook.SecurityConfig
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// TrustedProxies lists proxy IPs/CIDRs whose forwarding headers are
	// honoured by ClientIP. Empty trusts none.
	TrustedProxies []string

	DB      *sql.DB
	GitHub  *github.Client
	Scanner *scanner.Scanner
	Metrics *metrics.Manager

	MinInstallTier model.QualityTier
	TrustedOrgs    []string
	AdminAPIKey    string

	WebhookSecurity webhook.SecurityConfig
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		db:              cfg.DB,
		github:          cfg.GitHub,
		scanner:         cfg.Scanner,
		metrics:         cfg.Metrics,
		minInstallTier:  cfg.MinInstallTier,
		trustedOrgs:     cfg.TrustedOrgs,
		adminAPIKey:     cfg.AdminAPIKey,
		webhookSecurity: cfg.WebhookSecurity,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.db == nil {
		return errors.New("db is required")
	}
	if srv.github == nil {
		return errors.New("github client is required")
	}
	return nil
}

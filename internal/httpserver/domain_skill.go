package httpserver

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"skill-registry/internal/middleware"
	skillHTTP "skill-registry/internal/skill/delivery/http"
	skillRepo "skill-registry/internal/skill/repository/sqlite"
	skillUC "skill-registry/internal/skill/usecase"
	"skill-registry/internal/webhook"
)

// setupSkillDomain wires the skill registry and the webhook gateway that
// feeds it.
//
//  1. Repository:   SQLite store, seeded with the configured trusted orgs
//  2. UseCase:      sync engine + catalogue over the GitHub client
//  3. HTTP Handler: /skills and /admin routes
//  4. Webhooks:     /webhooks/github, re-syncing through the same UseCase
func (srv HTTPServer) setupSkillDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	// 1. Repository
	repo := skillRepo.New(srv.db, srv.l)
	for _, org := range srv.trustedOrgs {
		if err := repo.AddTrustedOrg(ctx, org); err != nil {
			return fmt.Errorf("seed trusted org %q: %w", org, err)
		}
	}

	// 2. UseCase
	uc := skillUC.New(repo, srv.github, srv.scanner, srv.metrics, srv.minInstallTier, srv.l)

	// 3. HTTP Handler
	h := skillHTTP.New(srv.l, uc)
	skillHTTP.RegisterRoutes(api, h, mw)

	// 4. Webhooks
	wh := webhook.NewHandler(uc, srv.webhookSecurity, srv.metrics, srv.l)
	wh.RegisterRoutes(api)
	if srv.webhookSecurity.Secret == "" {
		srv.l.Warnf(ctx, "Webhook secret not configured, signature verification is disabled")
	}

	srv.l.Infof(ctx, "Skill domain registered (min install tier: %s, %d trusted orgs)", srv.minInstallTier, len(srv.trustedOrgs))
	return nil
}

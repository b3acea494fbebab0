package usecase

import (
	"context"

	"skill-registry/internal/model"
	"skill-registry/internal/scanner"
	"skill-registry/internal/skill/repository"
	"skill-registry/pkg/github"
	"skill-registry/pkg/log"
	"skill-registry/pkg/metrics"
)

// Listing page size bounds.
const (
	defaultLimit = 20
	maxLimit     = 100
)

// GitHubSource is the slice of the GitHub client the sync engine reads from.
type GitHubSource interface {
	GetRepo(ctx context.Context, owner, repo string) (github.Repo, error)
	FindSkillPaths(ctx context.Context, owner, repo string) ([]string, error)
	GetSkillMD(ctx context.Context, owner, repo, skillDir string) (github.File, error)
	HasMarketplaceManifest(ctx context.Context, owner, repo string) (bool, error)
}

// implUseCase is the private implementation of skill.UseCase.
type implUseCase struct {
	repo    repository.Repository
	source  GitHubSource
	scanner *scanner.Scanner
	metrics *metrics.Manager
	minTier model.QualityTier
	l       log.Logger
}

// New creates a new skill UseCase implementation. minTier gates Install.
func New(
	repo repository.Repository,
	source GitHubSource,
	sc *scanner.Scanner,
	m *metrics.Manager,
	minTier model.QualityTier,
	l log.Logger,
) *implUseCase {
	if sc == nil {
		sc = scanner.New()
	}
	return &implUseCase{
		repo:    repo,
		source:  source,
		scanner: sc,
		metrics: m,
		minTier: minTier,
		l:       l,
	}
}

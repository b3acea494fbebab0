package repository

import (
	"context"

	"skill-registry/internal/model"
)

// Repository is the composed interface for the skill registry data store.
type Repository interface {
	SkillRepository
	TrustedOrgRepository
}

// SkillRepository persists ingested skills and their version history.
type SkillRepository interface {
	// SaveSkill upserts by slug. It returns ErrSourceConflict when the slug
	// already belongs to a different source.
	SaveSkill(ctx context.Context, opt SaveSkillOptions) (model.Skill, error)
	// CreateSkill inserts a new skill and returns ErrSlugExists when taken.
	CreateSkill(ctx context.Context, opt SaveSkillOptions) (model.Skill, error)
	GetSkill(ctx context.Context, slug string) (model.Skill, error)
	ListSkills(ctx context.Context, opt ListSkillsOptions) ([]model.Skill, int, error)
	ListVersions(ctx context.Context, slug string) ([]model.SkillVersion, error)
	IncrementDownloads(ctx context.Context, slug string) error
	Stats(ctx context.Context) (model.RegistryStats, error)
}

// TrustedOrgRepository holds the organisations whose skills rank Trusted.
type TrustedOrgRepository interface {
	IsTrustedOrg(ctx context.Context, name string) (bool, error)
	AddTrustedOrg(ctx context.Context, name string) error
}

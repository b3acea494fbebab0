package repository

import "skill-registry/internal/model"

// SaveSkillOptions holds everything produced by one ingest. An empty Slug is
// derived from Content; an empty Source means SourceGitHub.
type SaveSkillOptions struct {
	Slug       string
	Source     model.SkillSource
	Content    model.SkillContent
	Metadata   model.ParsedSkillMetadata
	Scan       model.SecurityScanResult
	Hash       string
	Tier       model.QualityTier
	TierReason string
	Stars      int
}

// ListSkillsOptions holds filter and pagination parameters for listing skills.
// Query matches name, description and slug. MinTier applies when Tier is nil.
type ListSkillsOptions struct {
	Query   string
	Tier    *model.QualityTier
	MinTier *model.QualityTier
	Limit   int
	Offset  int
}

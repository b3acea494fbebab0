package skill

import "skill-registry/internal/model"

// IngestStatus tells whether an ingest wrote anything.
type IngestStatus string

const (
	StatusImported IngestStatus = "imported"
	StatusSkipped  IngestStatus = "skipped"
)

// RepoSignals are the repository facts the tier is derived from.
type RepoSignals struct {
	Stars          int
	TrustedOrg     bool
	HasMarketplace bool
	License        string
}

// --- UseCase Inputs ---

type IngestInput struct {
	Content model.SkillContent
	Signals RepoSignals
}

type PreviewScanInput struct {
	Content string
	Strict  bool
}

// PublishInput submits SKILL.md content directly. Slug defaults to one
// derived from the skill name; SourceURL, when set, must point at a GitHub
// repository.
type PublishInput struct {
	SkillMD    string
	Slug       string
	SourceURL  string
	SourcePath string
}

type ListSkillsInput struct {
	Query       string
	Tier        *model.QualityTier
	Installable bool
	Limit       int
	Offset      int
}

type InstallInput struct {
	Slug            string
	AllowUnverified bool
}

// --- UseCase Outputs ---

type IngestOutput struct {
	Skill  model.Skill
	Status IngestStatus
}

type PreviewScanOutput struct {
	Metadata   model.ParsedSkillMetadata
	ParseError string
	Scan       model.SecurityScanResult
	Hash       string
}

type PublishOutput struct {
	Skill model.Skill
}

type ListSkillsOutput struct {
	Skills []model.Skill
	Total  int
	Limit  int
	Offset int
}

type DetailSkillOutput struct {
	Skill    model.Skill
	Versions []model.SkillVersion
}

type InstallOutput struct {
	Skill   model.Skill
	SkillMD string
	Hash    string
}

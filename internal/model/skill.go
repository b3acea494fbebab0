package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// AgentType is an agent a skill declares compatibility with.
type AgentType string

const (
	AgentClaudeCode AgentType = "claude_code"
	AgentCodex      AgentType = "codex"
	AgentCursor     AgentType = "cursor"
	AgentGemini     AgentType = "gemini"
	AgentOther      AgentType = "other"
)

// DisplayName returns the human-readable agent name.
func (a AgentType) DisplayName() string {
	switch a {
	case AgentClaudeCode:
		return "Claude Code"
	case AgentCodex:
		return "Codex CLI"
	case AgentCursor:
		return "Cursor"
	case AgentGemini:
		return "Gemini CLI"
	default:
		return "Other"
	}
}

// SkillDir returns where the agent expects installed skills.
func (a AgentType) SkillDir() string {
	switch a {
	case AgentClaudeCode:
		return "~/.claude/skills"
	case AgentCodex:
		return "~/.codex/skills"
	case AgentCursor:
		return "~/.cursor/skills"
	case AgentGemini:
		return "~/.gemini/skills"
	default:
		return "~/.agent-skills"
	}
}

// SkillContent is raw SKILL.md text plus where it was fetched from.
type SkillContent struct {
	Owner      string
	Repository string
	Path       string // directory inside the repository, "" for root
	Text       string
}

// FullName returns "owner/repository", or "" when neither is known.
func (c SkillContent) FullName() string {
	if c.Owner == "" && c.Repository == "" {
		return ""
	}
	return c.Owner + "/" + c.Repository
}

// Slug builds the registry slug: owner-repo for a root skill, owner-dir otherwise.
func (c SkillContent) Slug() string {
	if c.Path == "" {
		return strings.ToLower(fmt.Sprintf("%s-%s", c.Owner, c.Repository))
	}
	dir := strings.ReplaceAll(strings.Trim(c.Path, "/"), "/", "-")
	return strings.ToLower(fmt.Sprintf("%s-%s", c.Owner, dir))
}

// SlugFromName derives a slug from a skill name: lowercase, spaces become
// hyphens, anything else that is not a letter, digit or hyphen is dropped.
func SlugFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == ' ' || r == '-':
			b.WriteByte('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SkillSource is how a skill entered the registry.
type SkillSource string

const (
	SourceGitHub SkillSource = "github"
	SourceDirect SkillSource = "direct"
)

// ParsedSkillMetadata is what a SKILL.md declares about itself.
type ParsedSkillMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Version     string      `json:"version"`
	Author      string      `json:"author"`
	License     string      `json:"license"`
	Keywords    []string    `json:"keywords"`
	Agents      []AgentType `json:"agents"`
}

// Skill is a persisted registry entry.
type Skill struct {
	ID          string
	Slug        string
	Namespace   string
	Metadata    ParsedSkillMetadata
	Source      SkillSource
	SourceRepo  string
	SourcePath  string
	Stars       int
	Downloads   int
	SkillMD     string
	SkillMDHash string
	Tier        QualityTier
	TierReason  string
	Scan        SecurityScanResult
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SkillVersion records one distinct content hash seen for a skill.
type SkillVersion struct {
	Slug      string
	Version   string
	Hash      string
	Passed    bool
	CreatedAt time.Time
}

// RegistryStats are registry-wide counters.
type RegistryStats struct {
	TotalSkills      int
	VerifiedSkills   int
	TrustedSkills    int
	CommunitySkills  int
	UnverifiedSkills int
	TotalDownloads   int
	TrustedOrgs      int
}

// SyncResult counts the outcome of syncing a repository.
type SyncResult struct {
	Imported int
	Skipped  int
	Failed   int
	Errors   []string
}

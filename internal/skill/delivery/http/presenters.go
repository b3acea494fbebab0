package http

import (
	"fmt"
	"strings"

	"skill-registry/internal/model"
	"skill-registry/internal/skill"
	"skill-registry/pkg/response"
)

// --- Request DTOs ---

type listReq struct {
	Query       string `form:"q"`
	Tier        string `form:"tier"`
	Installable bool   `form:"installable"`
	Limit       int    `form:"limit"  binding:"omitempty,min=0"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

func (r listReq) validate() error {
	if r.Tier == "" {
		return nil
	}
	if _, err := model.ParseQualityTier(r.Tier); err != nil {
		return fmt.Errorf("%w: %v", skill.ErrInvalidInput, err)
	}
	return nil
}

func (r listReq) toInput() skill.ListSkillsInput {
	in := skill.ListSkillsInput{
		Query:       strings.TrimSpace(r.Query),
		Installable: r.Installable,
		Limit:       r.Limit,
		Offset:      r.Offset,
	}
	if r.Tier != "" {
		tier, _ := model.ParseQualityTier(r.Tier)
		in.Tier = &tier
	}
	return in
}

// ---

type installReq struct {
	Slug            string `uri:"slug"`
	AllowUnverified bool   `form:"allow_unverified"`
}

func (r installReq) validate() error {
	if strings.TrimSpace(r.Slug) == "" {
		return fmt.Errorf("%w: slug is required", skill.ErrInvalidInput)
	}
	return nil
}

func (r installReq) toInput() skill.InstallInput {
	return skill.InstallInput{Slug: r.Slug, AllowUnverified: r.AllowUnverified}
}

// ---

type scanReq struct {
	Content string `json:"content" binding:"required"`
	Strict  bool   `json:"strict"`
}

func (r scanReq) toInput() skill.PreviewScanInput {
	return skill.PreviewScanInput{Content: r.Content, Strict: r.Strict}
}

// ---

type publishReq struct {
	SkillMD    string `json:"skill_md"    binding:"required"`
	Slug       string `json:"slug"`
	SourceURL  string `json:"source_url"`
	SourcePath string `json:"source_path"`
}

func (r publishReq) toInput() skill.PublishInput {
	return skill.PublishInput{
		SkillMD:    r.SkillMD,
		Slug:       strings.TrimSpace(r.Slug),
		SourceURL:  strings.TrimSpace(r.SourceURL),
		SourcePath: strings.TrimSpace(r.SourcePath),
	}
}

// ---

type syncReq struct {
	Owner string `json:"owner" binding:"required"`
	Repo  string `json:"repo"  binding:"required"`
}

func (r syncReq) validate() error {
	if strings.Contains(r.Owner, "/") || strings.Contains(r.Repo, "/") {
		return fmt.Errorf("%w: owner and repo must not contain '/'", skill.ErrInvalidInput)
	}
	return nil
}

// --- Response DTOs ---

type agentResp struct {
	ID       model.AgentType `json:"id"`
	Name     string          `json:"name"`
	SkillDir string          `json:"skill_dir"`
}

type warningResp struct {
	Severity model.Severity `json:"severity"`
	Category string         `json:"category"`
	Message  string         `json:"message"`
	Line     int            `json:"line"`
	Snippet  string         `json:"snippet"`
}

type scanResp struct {
	Passed          bool              `json:"passed"`
	Warnings        []warningResp     `json:"warnings"`
	BlockedPatterns []string          `json:"blocked_patterns"`
	ScannedAt       response.DateTime `json:"scanned_at"`
}

type skillResp struct {
	ID                   string            `json:"id"`
	Slug                 string            `json:"slug"`
	Namespace            string            `json:"namespace"`
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	Version              string            `json:"version"`
	Author               string            `json:"author"`
	License              string            `json:"license"`
	Keywords             []string          `json:"keywords"`
	Agents               []agentResp       `json:"agents"`
	Source               model.SkillSource `json:"source"`
	SourceRepo           string            `json:"source_repo"`
	SourcePath           string            `json:"source_path"`
	Stars                int               `json:"stars"`
	Downloads            int               `json:"downloads"`
	Tier                 model.QualityTier `json:"tier"`
	TierLevel            int               `json:"tier_level"`
	TierReason           string            `json:"tier_reason"`
	Installable          bool              `json:"installable"`
	RequiresConfirmation bool              `json:"requires_confirmation"`
	SkillMDHash          string            `json:"skill_md_hash"`
	ScanPassed           bool              `json:"scan_passed"`
	UpdatedAt            response.DateTime `json:"updated_at"`
}

type versionResp struct {
	Version   string            `json:"version"`
	Hash      string            `json:"hash"`
	Passed    bool              `json:"scan_passed"`
	CreatedAt response.DateTime `json:"created_at"`
}

type listResp struct {
	Skills []skillResp `json:"skills"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type detailResp struct {
	Skill    skillResp     `json:"skill"`
	Scan     scanResp      `json:"scan"`
	Versions []versionResp `json:"versions"`
}

type installResp struct {
	Slug    string            `json:"slug"`
	Tier    model.QualityTier `json:"tier"`
	SkillMD string            `json:"skill_md"`
	Hash    string            `json:"hash"`
	Agents  []agentResp       `json:"agents"`
}

type previewResp struct {
	Metadata   *model.ParsedSkillMetadata `json:"metadata"`
	ParseError string                     `json:"parse_error,omitempty"`
	Scan       scanResp                   `json:"scan"`
	Hash       string                     `json:"hash"`
}

type publishResp struct {
	Slug    string            `json:"slug"`
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Tier    model.QualityTier `json:"tier"`
	Hash    string            `json:"hash"`
	Scan    scanResp          `json:"scan"`
	Created bool              `json:"created"`
	Message string            `json:"message"`
}

type statsResp struct {
	TotalSkills      int `json:"total_skills"`
	VerifiedSkills   int `json:"verified_skills"`
	TrustedSkills    int `json:"trusted_skills"`
	CommunitySkills  int `json:"community_skills"`
	UnverifiedSkills int `json:"unverified_skills"`
	TotalDownloads   int `json:"total_downloads"`
	TrustedOrgs      int `json:"trusted_orgs"`
}

type syncResp struct {
	Owner    string   `json:"owner"`
	Repo     string   `json:"repo"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

func (h *handler) newSkillResp(s model.Skill) skillResp {
	keywords := s.Metadata.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return skillResp{
		ID:                   s.ID,
		Slug:                 s.Slug,
		Namespace:            s.Namespace,
		Name:                 s.Metadata.Name,
		Description:          s.Metadata.Description,
		Version:              s.Metadata.Version,
		Author:               s.Metadata.Author,
		License:              s.Metadata.License,
		Keywords:             keywords,
		Agents:               newAgentsResp(s.Metadata.Agents),
		Source:               s.Source,
		SourceRepo:           s.SourceRepo,
		SourcePath:           s.SourcePath,
		Stars:                s.Stars,
		Downloads:            s.Downloads,
		Tier:                 s.Tier,
		TierLevel:            s.Tier.Level(),
		TierReason:           s.TierReason,
		Installable:          s.Tier.InstallableByDefault(),
		RequiresConfirmation: s.Tier.RequiresConfirmation(),
		SkillMDHash:          s.SkillMDHash,
		ScanPassed:           s.Scan.Passed,
		UpdatedAt:            response.DateTime(s.UpdatedAt),
	}
}

func newAgentsResp(agents []model.AgentType) []agentResp {
	out := make([]agentResp, 0, len(agents))
	for _, a := range agents {
		out = append(out, agentResp{ID: a, Name: a.DisplayName(), SkillDir: a.SkillDir()})
	}
	return out
}

func newScanResp(r model.SecurityScanResult) scanResp {
	warnings := make([]warningResp, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		warnings = append(warnings, warningResp(w))
	}
	blocked := r.BlockedPatterns
	if blocked == nil {
		blocked = []string{}
	}
	return scanResp{
		Passed:          r.Passed,
		Warnings:        warnings,
		BlockedPatterns: blocked,
		ScannedAt:       response.DateTime(r.ScannedAt),
	}
}

func (h *handler) newListResp(o skill.ListSkillsOutput) listResp {
	skills := make([]skillResp, 0, len(o.Skills))
	for _, s := range o.Skills {
		skills = append(skills, h.newSkillResp(s))
	}
	return listResp{Skills: skills, Total: o.Total, Limit: o.Limit, Offset: o.Offset}
}

func (h *handler) newDetailResp(o skill.DetailSkillOutput) detailResp {
	versions := make([]versionResp, 0, len(o.Versions))
	for _, v := range o.Versions {
		versions = append(versions, versionResp{
			Version:   v.Version,
			Hash:      v.Hash,
			Passed:    v.Passed,
			CreatedAt: response.DateTime(v.CreatedAt),
		})
	}
	return detailResp{
		Skill:    h.newSkillResp(o.Skill),
		Scan:     newScanResp(o.Skill.Scan),
		Versions: versions,
	}
}

func (h *handler) newInstallResp(o skill.InstallOutput) installResp {
	return installResp{
		Slug:    o.Skill.Slug,
		Tier:    o.Skill.Tier,
		SkillMD: o.SkillMD,
		Hash:    o.Hash,
		Agents:  newAgentsResp(o.Skill.Metadata.Agents),
	}
}

func (h *handler) newPreviewResp(o skill.PreviewScanOutput) previewResp {
	resp := previewResp{
		ParseError: o.ParseError,
		Scan:       newScanResp(o.Scan),
		Hash:       o.Hash,
	}
	if o.ParseError == "" {
		md := o.Metadata
		resp.Metadata = &md
	}
	return resp
}

func (h *handler) newSyncResp(req syncReq, r model.SyncResult) syncResp {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return syncResp{
		Owner:    req.Owner,
		Repo:     req.Repo,
		Imported: r.Imported,
		Skipped:  r.Skipped,
		Failed:   r.Failed,
		Errors:   errs,
	}
}

func (h *handler) newPublishResp(o skill.PublishOutput) publishResp {
	return publishResp{
		Slug:    o.Skill.Slug,
		Name:    o.Skill.Metadata.Name,
		Version: o.Skill.Metadata.Version,
		Tier:    o.Skill.Tier,
		Hash:    o.Skill.SkillMDHash,
		Scan:    newScanResp(o.Skill.Scan),
		Created: true,
		Message: "Skill published successfully",
	}
}

func (h *handler) newStatsResp(st model.RegistryStats) statsResp {
	return statsResp(st)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"skill-registry/internal/model"
	"skill-registry/internal/skill"
	repo "skill-registry/internal/skill/repository"
	"skill-registry/internal/skillmd"
	"skill-registry/pkg/integrity"
)

const (
	defaultPublishVersion = "1.0.0"
	publishedReason       = "published via API"
)

// defaultPublishAgents applies when a published SKILL.md declares none.
var defaultPublishAgents = []model.AgentType{model.AgentClaudeCode, model.AgentCodex}

// Publish stores SKILL.md content submitted directly. Published skills are
// capped at Community; a failed scan makes them Unverified. An existing slug
// is never replaced.
func (uc *implUseCase) Publish(ctx context.Context, input skill.PublishInput) (skill.PublishOutput, error) {
	if strings.TrimSpace(input.SkillMD) == "" {
		return skill.PublishOutput{}, fmt.Errorf("%w: skill_md is required", skill.ErrInvalidInput)
	}

	content := model.SkillContent{Path: strings.Trim(input.SourcePath, "/"), Text: input.SkillMD}
	if input.SourceURL != "" {
		owner, repository, err := parseGitHubURL(input.SourceURL)
		if err != nil {
			return skill.PublishOutput{}, err
		}
		content.Owner, content.Repository = owner, repository
	}

	md, err := skillmd.Parse(input.SkillMD)
	if err != nil {
		return skill.PublishOutput{}, fmt.Errorf("%w: %v", skill.ErrInvalidSkillMD, err)
	}
	if md.Version == "" {
		md.Version = defaultPublishVersion
	}
	if md.Author == "" {
		md.Author = content.Owner
	}
	if len(md.Agents) == 0 {
		md.Agents = append([]model.AgentType(nil), defaultPublishAgents...)
	}

	slug := model.SlugFromName(input.Slug)
	if slug == "" {
		slug = model.SlugFromName(md.Name)
	}
	if slug == "" {
		return skill.PublishOutput{}, fmt.Errorf("%w: cannot derive a slug from %q", skill.ErrInvalidInput, md.Name)
	}

	existing, err := uc.repo.GetSkill(ctx, slug)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Publish GetSkill: %v", err)
		return skill.PublishOutput{}, err
	}
	if existing.ID != "" {
		return skill.PublishOutput{}, fmt.Errorf("%w: %s", skill.ErrSkillExists, slug)
	}

	scan := uc.scanner.Scan(input.SkillMD)
	uc.metrics.RecordScan(scan.Passed, warningCategories(scan))

	tier, reason := model.TierCommunity, publishedReason
	if !scan.Passed {
		uc.l.Warnf(ctx, "uc.Publish: security scan failed for %s: %v", slug, scan.BlockedPatterns)
		tier = model.TierUnverified
		reason += fmt.Sprintf(", security_scan=failed [%s]", strings.Join(scan.BlockedPatterns, ","))
	}

	saved, err := uc.repo.CreateSkill(ctx, repo.SaveSkillOptions{
		Slug:       slug,
		Source:     model.SourceDirect,
		Content:    content,
		Metadata:   md,
		Scan:       scan,
		Hash:       integrity.ComputeHashString(input.SkillMD),
		Tier:       tier,
		TierReason: reason,
	})
	if errors.Is(err, repo.ErrSlugExists) {
		return skill.PublishOutput{}, fmt.Errorf("%w: %s", skill.ErrSkillExists, slug)
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.Publish CreateSkill: %v", err)
		return skill.PublishOutput{}, err
	}

	uc.l.Infof(ctx, "uc.Publish: published %s (%s)", saved.Slug, saved.Tier)
	return skill.PublishOutput{Skill: saved}, nil
}

// parseGitHubURL extracts owner and repository from
// https://github.com/owner/repo[.git][/...].
func parseGitHubURL(raw string) (owner, repository string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return "", "", fmt.Errorf("%w: source_url must be a GitHub repository URL", skill.ErrInvalidInput)
	}
	if host := strings.ToLower(u.Host); host != "github.com" && host != "www.github.com" {
		return "", "", fmt.Errorf("%w: source_url must be a GitHub repository URL", skill.ErrInvalidInput)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: source_url must name owner and repository", skill.ErrInvalidInput)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

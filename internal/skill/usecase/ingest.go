package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-registry/internal/model"
	"skill-registry/internal/scanner"
	"skill-registry/internal/skill"
	repo "skill-registry/internal/skill/repository"
	"skill-registry/internal/skillmd"
	"skill-registry/pkg/integrity"
)

// Ingest runs one SKILL.md through parse, scan, hash and tiering, then saves
// it. Content whose hash matches the stored row is skipped untouched.
func (uc *implUseCase) Ingest(ctx context.Context, input skill.IngestInput) (skill.IngestOutput, error) {
	content := input.Content
	if strings.TrimSpace(content.Owner) == "" || strings.TrimSpace(content.Repository) == "" {
		return skill.IngestOutput{}, fmt.Errorf("%w: owner and repository are required", skill.ErrInvalidInput)
	}

	existing, err := uc.repo.GetSkill(ctx, content.Slug())
	if err != nil {
		uc.l.Errorf(ctx, "uc.Ingest GetSkill: %v", err)
		return skill.IngestOutput{}, err
	}
	if existing.ID != "" {
		if !sameSource(existing, content) {
			return skill.IngestOutput{}, fmt.Errorf("%w: %s belongs to %s", skill.ErrSlugConflict, existing.Slug, sourceOf(existing))
		}
		if integrity.VerifyHashString(content.Text, existing.SkillMDHash) {
			uc.l.Debugf(ctx, "uc.Ingest: %s unchanged, skipping", existing.Slug)
			return skill.IngestOutput{Skill: existing, Status: skill.StatusSkipped}, nil
		}
	}

	md, err := skillmd.Parse(content.Text)
	if err != nil {
		return skill.IngestOutput{}, err
	}
	if md.License == "" {
		md.License = input.Signals.License
	}
	if md.Author == "" {
		md.Author = content.Owner
	}

	scan := uc.scanner.Scan(content.Text)
	uc.metrics.RecordScan(scan.Passed, warningCategories(scan))
	if !scan.Passed {
		uc.l.Warnf(ctx, "uc.Ingest: security scan failed for %s: %v", content.Slug(), scan.BlockedPatterns)
	}

	tier, reason := assignTier(input.Signals, scan)

	saved, err := uc.repo.SaveSkill(ctx, repo.SaveSkillOptions{
		Content:    content,
		Metadata:   md,
		Scan:       scan,
		Hash:       integrity.ComputeHashString(content.Text),
		Tier:       tier,
		TierReason: reason,
		Stars:      input.Signals.Stars,
	})
	if errors.Is(err, repo.ErrSourceConflict) {
		return skill.IngestOutput{}, fmt.Errorf("%w: %v", skill.ErrSlugConflict, err)
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.Ingest SaveSkill: %v", err)
		return skill.IngestOutput{}, err
	}

	uc.l.Infof(ctx, "uc.Ingest: imported %s (%s, %d stars)", saved.Slug, saved.Tier, input.Signals.Stars)
	return skill.IngestOutput{Skill: saved, Status: skill.StatusImported}, nil
}

// PreviewScan parses, scans and hashes content without persisting anything.
// A parse failure is reported in the output, not as an error.
func (uc *implUseCase) PreviewScan(ctx context.Context, input skill.PreviewScanInput) (skill.PreviewScanOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return skill.PreviewScanOutput{}, fmt.Errorf("%w: content is required", skill.ErrInvalidInput)
	}

	var out skill.PreviewScanOutput
	md, err := skillmd.Parse(input.Content)
	if err != nil {
		out.ParseError = err.Error()
	} else {
		out.Metadata = md
	}

	sc := uc.scanner
	if input.Strict && !sc.StrictMode() {
		sc = scanner.New(scanner.WithStrictMode(true))
	}
	out.Scan = sc.Scan(input.Content)
	out.Hash = integrity.ComputeHashString(input.Content)
	return out, nil
}

// assignTier derives the tier from repository signals. A failed scan caps it
// at Unverified.
func assignTier(s skill.RepoSignals, scan model.SecurityScanResult) (model.QualityTier, string) {
	tier := model.TierFromMetrics(s.Stars, s.TrustedOrg, s.HasMarketplace)
	reason := fmt.Sprintf("stars=%d, trusted_org=%t, marketplace_json=%t", s.Stars, s.TrustedOrg, s.HasMarketplace)
	if !scan.Passed {
		tier = model.TierUnverified
		reason += fmt.Sprintf(", security_scan=failed [%s]", strings.Join(scan.BlockedPatterns, ","))
	}
	return tier, reason
}

// sameSource reports whether a stored skill was synced from the same
// repository directory. Owner and repository compare case-insensitively.
func sameSource(s model.Skill, c model.SkillContent) bool {
	return (s.Source == model.SourceGitHub || s.Source == "") &&
		strings.EqualFold(s.SourceRepo, c.FullName()) &&
		s.SourcePath == c.Path
}

func sourceOf(s model.Skill) string {
	if s.Source == model.SourceDirect {
		return "a direct publish"
	}
	if s.SourcePath == "" {
		return s.SourceRepo
	}
	return s.SourceRepo + "/" + s.SourcePath
}

func warningCategories(scan model.SecurityScanResult) []string {
	out := make([]string, 0, len(scan.Warnings))
	for _, w := range scan.Warnings {
		out = append(out, w.Category)
	}
	return out
}

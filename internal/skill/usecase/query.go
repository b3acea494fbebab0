package usecase

import (
	"context"
	"strings"

	"skill-registry/internal/model"
	"skill-registry/internal/skill"
	repo "skill-registry/internal/skill/repository"
	"skill-registry/pkg/integrity"
)

// List returns a page of skills. Installable restricts to the install tier.
func (uc *implUseCase) List(ctx context.Context, input skill.ListSkillsInput) (skill.ListSkillsOutput, error) {
	limit := input.Limit
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	offset := max(input.Offset, 0)

	opt := repo.ListSkillsOptions{
		Query:  input.Query,
		Tier:   input.Tier,
		Limit:  limit,
		Offset: offset,
	}
	if input.Installable {
		minTier := uc.minTier
		opt.MinTier = &minTier
	}

	skills, total, err := uc.repo.ListSkills(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListSkills: %v", err)
		return skill.ListSkillsOutput{}, err
	}

	return skill.ListSkillsOutput{
		Skills: skills,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// Detail returns one skill with its version history.
func (uc *implUseCase) Detail(ctx context.Context, slug string) (skill.DetailSkillOutput, error) {
	s, err := uc.getSkill(ctx, slug)
	if err != nil {
		return skill.DetailSkillOutput{}, err
	}

	versions, err := uc.repo.ListVersions(ctx, s.Slug)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Detail ListVersions: %v", err)
		return skill.DetailSkillOutput{}, err
	}
	return skill.DetailSkillOutput{Skill: s, Versions: versions}, nil
}

// Install serves the stored SKILL.md once the tier gate passes and the
// content still matches its hash.
func (uc *implUseCase) Install(ctx context.Context, input skill.InstallInput) (skill.InstallOutput, error) {
	s, err := uc.getSkill(ctx, input.Slug)
	if err != nil {
		return skill.InstallOutput{}, err
	}

	if !input.AllowUnverified && !s.Tier.AtLeast(uc.minTier) {
		return skill.InstallOutput{}, skill.ErrTierBelowMinimum
	}

	if !integrity.VerifyHashString(s.SkillMD, s.SkillMDHash) {
		uc.l.Errorf(ctx, "uc.Install: integrity mismatch for %s", s.Slug)
		return skill.InstallOutput{}, skill.ErrIntegrityMismatch
	}

	if err := uc.repo.IncrementDownloads(ctx, s.Slug); err != nil {
		uc.l.Warnf(ctx, "uc.Install: failed to count download of %s: %v", s.Slug, err)
	} else {
		s.Downloads++
	}

	return skill.InstallOutput{
		Skill:   s,
		SkillMD: s.SkillMD,
		Hash:    strings.ToLower(s.SkillMDHash),
	}, nil
}

// Stats returns registry-wide counters.
func (uc *implUseCase) Stats(ctx context.Context) (model.RegistryStats, error) {
	st, err := uc.repo.Stats(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Stats: %v", err)
		return model.RegistryStats{}, err
	}
	return st, nil
}

func (uc *implUseCase) getSkill(ctx context.Context, slug string) (model.Skill, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return model.Skill{}, skill.ErrInvalidInput
	}

	s, err := uc.repo.GetSkill(ctx, slug)
	if err != nil {
		uc.l.Errorf(ctx, "uc.getSkill GetSkill: %v", err)
		return model.Skill{}, err
	}
	if s.ID == "" {
		return model.Skill{}, skill.ErrSkillNotFound
	}
	return s, nil
}

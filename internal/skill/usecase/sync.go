package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-registry/internal/model"
	"skill-registry/internal/skill"
	"skill-registry/pkg/github"
)

// SyncRepository imports every SKILL.md of owner/repo. Failures of a single
// skill are counted in the result; only repository-level errors abort.
func (uc *implUseCase) SyncRepository(ctx context.Context, owner, repoName string) (model.SyncResult, error) {
	owner, repoName = strings.TrimSpace(owner), strings.TrimSpace(repoName)
	if owner == "" || repoName == "" {
		return model.SyncResult{}, fmt.Errorf("%w: owner and repo are required", skill.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return model.SyncResult{}, err
	}
	start := time.Now()

	ghRepo, err := uc.source.GetRepo(ctx, owner, repoName)
	if err != nil {
		uc.l.Errorf(ctx, "uc.SyncRepository GetRepo %s/%s: %v", owner, repoName, err)
		if errors.Is(err, github.ErrNotFound) {
			return model.SyncResult{}, fmt.Errorf("%w: %s/%s", skill.ErrRepositoryNotFound, owner, repoName)
		}
		return model.SyncResult{}, err
	}
	uc.l.Infof(ctx, "uc.SyncRepository: syncing %s/%s (%d stars)", owner, repoName, ghRepo.StargazersCount)

	paths, err := uc.source.FindSkillPaths(ctx, owner, repoName)
	if err != nil {
		uc.l.Errorf(ctx, "uc.SyncRepository FindSkillPaths %s/%s: %v", owner, repoName, err)
		return model.SyncResult{}, err
	}

	signals, err := uc.repoSignals(ctx, owner, repoName, ghRepo)
	if err != nil {
		return model.SyncResult{}, err
	}

	result := model.SyncResult{Errors: []string{}}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		out, err := uc.syncPath(ctx, owner, repoName, p, signals)
		if err != nil {
			uc.l.Warnf(ctx, "uc.SyncRepository: failed to import %s/%s/%s: %v", owner, repoName, p, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: %v", repoName, p, err))
			continue
		}
		switch out.Status {
		case skill.StatusImported:
			result.Imported++
		default:
			result.Skipped++
		}
	}

	uc.metrics.ObserveSync(time.Since(start), result.Imported, result.Skipped, result.Failed)
	uc.l.Infof(ctx, "uc.SyncRepository: %s/%s done: %d imported, %d skipped, %d failed",
		owner, repoName, result.Imported, result.Skipped, result.Failed)
	return result, nil
}

func (uc *implUseCase) syncPath(ctx context.Context, owner, repoName, dir string, signals skill.RepoSignals) (skill.IngestOutput, error) {
	f, err := uc.source.GetSkillMD(ctx, owner, repoName, dir)
	if err != nil {
		return skill.IngestOutput{}, err
	}
	return uc.Ingest(ctx, skill.IngestInput{
		Content: model.SkillContent{
			Owner:      owner,
			Repository: repoName,
			Path:       dir,
			Text:       f.Text,
		},
		Signals: signals,
	})
}

// repoSignals gathers the tier inputs shared by every skill of a repository.
// A failed marketplace lookup only costs the signal.
func (uc *implUseCase) repoSignals(ctx context.Context, owner, repoName string, ghRepo github.Repo) (skill.RepoSignals, error) {
	trusted, err := uc.repo.IsTrustedOrg(ctx, owner)
	if err != nil {
		uc.l.Errorf(ctx, "uc.SyncRepository IsTrustedOrg: %v", err)
		return skill.RepoSignals{}, err
	}

	marketplace, err := uc.source.HasMarketplaceManifest(ctx, owner, repoName)
	if err != nil {
		uc.l.Warnf(ctx, "uc.SyncRepository HasMarketplaceManifest %s/%s: %v", owner, repoName, err)
		marketplace = false
	}

	return skill.RepoSignals{
		Stars:          ghRepo.StargazersCount,
		TrustedOrg:     trusted,
		HasMarketplace: marketplace,
		License:        ghRepo.License.ID(),
	}, nil
}

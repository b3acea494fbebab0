package webhook

import (
	"context"
	"fmt"
	"path"

	pkgLog "skill-registry/pkg/log"
)

// Gateway decides whether a classified event warrants a re-sync and
// delegates to the Syncer when it does.
type Gateway struct {
	syncer Syncer
	l      pkgLog.Logger
}

func NewGateway(syncer Syncer, l pkgLog.Logger) *Gateway {
	return &Gateway{syncer: syncer, l: l}
}

// Process handles one event. Only a Syncer failure yields an error.
func (g *Gateway) Process(ctx context.Context, ev Event) (Decision, error) {
	switch e := ev.(type) {
	case PushEvent:
		return g.processPush(ctx, e)
	case ReleaseEvent:
		return g.processRelease(ctx, e)
	case PingEvent:
		return Decision{Processed: true, Message: "Pong! Webhook configured successfully"}, nil
	case UnrecognizedEvent:
		return Decision{Message: fmt.Sprintf("Event type '%s' not processed", e.EventName)}, nil
	default:
		return Decision{}, fmt.Errorf("webhook: unhandled event %T", ev)
	}
}

func (g *Gateway) processPush(ctx context.Context, e PushEvent) (Decision, error) {
	repo := e.Repository
	if e.Ref != "refs/heads/"+repo.DefaultBranch {
		return Decision{Message: "Push to non-default branch ignored"}, nil
	}

	if !touchesSkillFile(e.Commits) {
		return Decision{Message: "No SKILL.md changes detected"}, nil
	}

	g.l.Infof(ctx, "webhook.processPush: SKILL.md modified in %s/%s, triggering sync", repo.Owner, repo.Name)

	result, err := g.syncer.SyncRepository(ctx, repo.Owner, repo.Name)
	if err != nil {
		return Decision{}, err
	}

	synced := result.Imported
	return Decision{
		Processed: true,
		Message: fmt.Sprintf("Synced %s/%s: %d imported, %d skipped, %d failed",
			repo.Owner, repo.Name, result.Imported, result.Skipped, result.Failed),
		SkillsSynced: &synced,
	}, nil
}

func (g *Gateway) processRelease(ctx context.Context, e ReleaseEvent) (Decision, error) {
	if e.Action != "published" {
		return Decision{Message: "Only 'published' release events are processed"}, nil
	}
	// Trust the release's own flags even on a "published" action.
	if e.Release.Draft || e.Release.Prerelease {
		return Decision{Message: "Draft and prerelease events ignored"}, nil
	}

	repo := e.Repository
	g.l.Infof(ctx, "webhook.processRelease: release %s published in %s/%s, triggering sync",
		e.Release.TagName, repo.Owner, repo.Name)

	result, err := g.syncer.SyncRepository(ctx, repo.Owner, repo.Name)
	if err != nil {
		return Decision{}, err
	}

	synced := result.Imported
	return Decision{
		Processed: true,
		Message: fmt.Sprintf("Release %s synced for %s/%s: %d imported, %d skipped",
			e.Release.TagName, repo.Owner, repo.Name, result.Imported, result.Skipped),
		SkillsSynced: &synced,
	}, nil
}

// touchesSkillFile reports whether any added or modified path names a
// SKILL.md file. Only the exact final segment counts.
func touchesSkillFile(commits []Commit) bool {
	for _, c := range commits {
		for _, files := range [][]string{c.Added, c.Modified} {
			for _, f := range files {
				if base := path.Base(f); base == "SKILL.md" || base == "skill.md" {
					return true
				}
			}
		}
	}
	return false
}

package skill

import (
	"context"

	"skill-registry/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Ingestion
	SyncRepository(ctx context.Context, owner, repo string) (model.SyncResult, error)
	Ingest(ctx context.Context, input IngestInput) (IngestOutput, error)
	PreviewScan(ctx context.Context, input PreviewScanInput) (PreviewScanOutput, error)
	Publish(ctx context.Context, input PublishInput) (PublishOutput, error)

	// Catalogue
	List(ctx context.Context, input ListSkillsInput) (ListSkillsOutput, error)
	Detail(ctx context.Context, slug string) (DetailSkillOutput, error)
	Install(ctx context.Context, input InstallInput) (InstallOutput, error)
	Stats(ctx context.Context) (model.RegistryStats, error)
}

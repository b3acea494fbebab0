package sqlite

import (
	"context"

	"skill-registry/internal/model"
	repo "skill-registry/internal/skill/repository"
)

// Stats counts skills per tier, total installs and trusted organisations.
func (r *implRepository) Stats(ctx context.Context) (model.RegistryStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM skills),
			(SELECT COUNT(*) FROM skills WHERE tier = ?),
			(SELECT COUNT(*) FROM skills WHERE tier = ?),
			(SELECT COUNT(*) FROM skills WHERE tier = ?),
			(SELECT COUNT(*) FROM skills WHERE tier = ?),
			(SELECT COALESCE(SUM(downloads), 0) FROM skills),
			(SELECT COUNT(*) FROM trusted_orgs)`

	var st model.RegistryStats
	err := r.db.QueryRowContext(ctx, query,
		int(model.TierVerified), int(model.TierTrusted), int(model.TierCommunity), int(model.TierUnverified),
	).Scan(
		&st.TotalSkills, &st.VerifiedSkills, &st.TrustedSkills, &st.CommunitySkills,
		&st.UnverifiedSkills, &st.TotalDownloads, &st.TrustedOrgs,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Stats"), err)
		return model.RegistryStats{}, repo.ErrFailedToGet
	}
	return st, nil
}

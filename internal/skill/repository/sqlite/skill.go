package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"skill-registry/internal/model"
	repo "skill-registry/internal/skill/repository"
)

const skillColumns = `id, slug, namespace, name, description, version, author, license,
	keywords, agents, source, source_repo, source_path, stars, downloads, skill_md, skill_md_hash,
	tier, tier_reason, scan_result, created_at, updated_at`

const insertSkill = `
	INSERT INTO skills (` + skillColumns + `, scan_passed)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// The update only applies while the stored row has the same provenance, so
// another repository can never take over a slug.
const upsertSkill = insertSkill + `
	ON CONFLICT(slug) DO UPDATE SET
		name = excluded.name,
		description = excluded.description,
		version = excluded.version,
		author = excluded.author,
		license = excluded.license,
		keywords = excluded.keywords,
		agents = excluded.agents,
		source_repo = excluded.source_repo,
		stars = excluded.stars,
		skill_md = excluded.skill_md,
		skill_md_hash = excluded.skill_md_hash,
		tier = excluded.tier,
		tier_reason = excluded.tier_reason,
		scan_result = excluded.scan_result,
		scan_passed = excluded.scan_passed,
		updated_at = excluded.updated_at
	WHERE skills.source = excluded.source
		AND lower(skills.source_repo) = lower(excluded.source_repo)
		AND skills.source_path = excluded.source_path`

const createSkill = insertSkill + `
	ON CONFLICT(slug) DO NOTHING`

const insertVersion = `
	INSERT INTO skill_versions (skill_id, version, hash, scan_passed, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(skill_id, hash) DO NOTHING`

// SaveSkill upserts the skill keyed by slug and records a version row the
// first time a hash is seen for it.
func (r *implRepository) SaveSkill(ctx context.Context, opt repo.SaveSkillOptions) (model.Skill, error) {
	return r.writeSkill(ctx, "SaveSkill", upsertSkill, opt, repo.ErrSourceConflict)
}

// CreateSkill inserts a skill whose slug must be new.
func (r *implRepository) CreateSkill(ctx context.Context, opt repo.SaveSkillOptions) (model.Skill, error) {
	return r.writeSkill(ctx, "CreateSkill", createSkill, opt, repo.ErrSlugExists)
}

// writeSkill runs query and the version insert in one transaction. A
// statement that touches no row means the slug is held by someone else and
// yields conflictErr.
func (r *implRepository) writeSkill(ctx context.Context, method, query string, opt repo.SaveSkillOptions, conflictErr error) (model.Skill, error) {
	slug := opt.Slug
	if slug == "" {
		slug = opt.Content.Slug()
	}
	slug = strings.ToLower(slug)

	source := opt.Source
	if source == "" {
		source = model.SourceGitHub
	}

	keywords, agents, scan, err := encodeSkillJSON(opt.Metadata, opt.Scan)
	if err != nil {
		r.l.Errorf(ctx, "%s encode: %v", r.dsn(method), err)
		return model.Skill{}, repo.ErrFailedToInsert
	}
	now := formatTime(time.Now())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn(method), err)
		return model.Skill{}, repo.ErrFailedToInsert
	}
	defer tx.Rollback()

	md := opt.Metadata
	res, err := tx.ExecContext(ctx, query,
		uuid.NewString(), slug, strings.ToLower(opt.Content.Owner), md.Name, md.Description,
		md.Version, md.Author, md.License, keywords, agents,
		string(source), opt.Content.FullName(), opt.Content.Path, opt.Stars, 0, opt.Content.Text, opt.Hash,
		int(opt.Tier), opt.TierReason, scan, now, now, opt.Scan.Passed,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s write %s: %v", r.dsn(method), slug, err)
		return model.Skill{}, repo.ErrFailedToInsert
	}
	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected %s: %v", r.dsn(method), slug, err)
		return model.Skill{}, repo.ErrFailedToInsert
	}
	if affected == 0 {
		return model.Skill{}, fmt.Errorf("%w: %s", conflictErr, slug)
	}

	var id string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM skills WHERE slug = ?`, slug).Scan(&id); err != nil {
		r.l.Errorf(ctx, "%s id %s: %v", r.dsn(method), slug, err)
		return model.Skill{}, repo.ErrFailedToInsert
	}

	if _, err := tx.ExecContext(ctx, insertVersion, id, md.Version, opt.Hash, opt.Scan.Passed, now); err != nil {
		r.l.Errorf(ctx, "%s version %s: %v", r.dsn(method), slug, err)
		return model.Skill{}, repo.ErrFailedToInsert
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn(method), err)
		return model.Skill{}, repo.ErrFailedToInsert
	}

	return r.GetSkill(ctx, slug)
}

// IncrementDownloads bumps the install counter of a skill.
func (r *implRepository) IncrementDownloads(ctx context.Context, slug string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE skills SET downloads = downloads + 1 WHERE slug = ?`, strings.ToLower(slug),
	); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("IncrementDownloads"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

// GetSkill retrieves a skill by slug.
// Returns zero-value Skill (ID == "") when not found.
func (r *implRepository) GetSkill(ctx context.Context, slug string) (model.Skill, error) {
	query := fmt.Sprintf(`SELECT %s FROM skills WHERE slug = ? LIMIT 1`, skillColumns)

	s, err := scanSkill(r.db.QueryRowContext(ctx, query, strings.ToLower(slug)))
	if err == sql.ErrNoRows {
		return model.Skill{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetSkill"), err)
		return model.Skill{}, repo.ErrFailedToGet
	}
	return s, nil
}

// ListSkills returns a page of skills, best tier first, and the total count.
func (r *implRepository) ListSkills(ctx context.Context, opt repo.ListSkillsOptions) ([]model.Skill, int, error) {
	where, args := r.buildListFilter(opt)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM skills WHERE %s", where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListSkills"), err)
		return nil, 0, repo.ErrFailedToList
	}

	page, pageArgs := r.buildPagination(opt)
	query := fmt.Sprintf(`SELECT %s FROM skills WHERE %s ORDER BY tier DESC, stars DESC, slug ASC%s`,
		skillColumns, where, page)
	rows, err := r.db.QueryContext(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListSkills"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	skills := []model.Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListSkills"), err)
			return nil, 0, repo.ErrFailedToList
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListSkills"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return skills, total, nil
}

// ListVersions returns the version history of a skill, newest first.
func (r *implRepository) ListVersions(ctx context.Context, slug string) ([]model.SkillVersion, error) {
	const query = `
		SELECT s.slug, v.version, v.hash, v.scan_passed, v.created_at
		FROM skill_versions v
		JOIN skills s ON s.id = v.skill_id
		WHERE s.slug = ?
		ORDER BY v.id DESC`

	rows, err := r.db.QueryContext(ctx, query, strings.ToLower(slug))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListVersions"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	versions := []model.SkillVersion{}
	for rows.Next() {
		var (
			v         model.SkillVersion
			createdAt string
		)
		if err := rows.Scan(&v.Slug, &v.Version, &v.Hash, &v.Passed, &createdAt); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListVersions"), err)
			return nil, repo.ErrFailedToList
		}
		v.CreatedAt = parseTime(createdAt)
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListVersions"), err)
		return nil, repo.ErrFailedToList
	}
	return versions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSkill(row rowScanner) (model.Skill, error) {
	var (
		s                    model.Skill
		source               string
		keywords, agents     string
		scan                 string
		tier                 int
		createdAt, updatedAt string
	)
	err := row.Scan(
		&s.ID, &s.Slug, &s.Namespace, &s.Metadata.Name, &s.Metadata.Description,
		&s.Metadata.Version, &s.Metadata.Author, &s.Metadata.License,
		&keywords, &agents, &source, &s.SourceRepo, &s.SourcePath, &s.Stars, &s.Downloads,
		&s.SkillMD, &s.SkillMDHash,
		&tier, &s.TierReason, &scan, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Skill{}, err
	}

	if err := json.Unmarshal([]byte(keywords), &s.Metadata.Keywords); err != nil {
		return model.Skill{}, fmt.Errorf("keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(agents), &s.Metadata.Agents); err != nil {
		return model.Skill{}, fmt.Errorf("agents: %w", err)
	}
	if err := json.Unmarshal([]byte(scan), &s.Scan); err != nil {
		return model.Skill{}, fmt.Errorf("scan_result: %w", err)
	}
	s.Source = model.SkillSource(source)
	s.Tier = model.QualityTier(tier)
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)
	return s, nil
}

func encodeSkillJSON(md model.ParsedSkillMetadata, scan model.SecurityScanResult) (keywords, agents, result string, err error) {
	kw := md.Keywords
	if kw == nil {
		kw = []string{}
	}
	ag := md.Agents
	if ag == nil {
		ag = []model.AgentType{}
	}

	var b []byte
	if b, err = json.Marshal(kw); err != nil {
		return "", "", "", err
	}
	keywords = string(b)
	if b, err = json.Marshal(ag); err != nil {
		return "", "", "", err
	}
	agents = string(b)
	if b, err = json.Marshal(scan); err != nil {
		return "", "", "", err
	}
	return keywords, agents, string(b), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

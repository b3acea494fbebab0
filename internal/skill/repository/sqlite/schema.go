package sqlite

// Schema is applied on every Open; every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS skills (
	id            TEXT PRIMARY KEY,
	slug          TEXT NOT NULL UNIQUE,
	namespace     TEXT NOT NULL,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	version       TEXT NOT NULL DEFAULT '',
	author        TEXT NOT NULL DEFAULT '',
	license       TEXT NOT NULL DEFAULT '',
	keywords      TEXT NOT NULL DEFAULT '[]',
	agents        TEXT NOT NULL DEFAULT '[]',
	source        TEXT NOT NULL DEFAULT 'github',
	source_repo   TEXT NOT NULL,
	source_path   TEXT NOT NULL DEFAULT '',
	stars         INTEGER NOT NULL DEFAULT 0,
	downloads     INTEGER NOT NULL DEFAULT 0,
	skill_md      TEXT NOT NULL,
	skill_md_hash TEXT NOT NULL,
	tier          INTEGER NOT NULL DEFAULT 0,
	tier_reason   TEXT NOT NULL DEFAULT '',
	scan_passed   INTEGER NOT NULL DEFAULT 0,
	scan_result   TEXT NOT NULL DEFAULT '{}',
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_skills_tier ON skills(tier DESC, stars DESC);
CREATE INDEX IF NOT EXISTS idx_skills_source ON skills(source_repo);

CREATE TABLE IF NOT EXISTS skill_versions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	skill_id    TEXT NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
	version     TEXT NOT NULL DEFAULT '',
	hash        TEXT NOT NULL,
	scan_passed INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL,
	UNIQUE(skill_id, hash)
);

CREATE TABLE IF NOT EXISTS trusted_orgs (
	name       TEXT PRIMARY KEY,
	created_at TEXT NOT NULL
);
`

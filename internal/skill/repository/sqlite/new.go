package sqlite

import (
	"database/sql"
	"fmt"

	"skill-registry/internal/skill/repository"
	"skill-registry/pkg/log"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a SQLite-backed Repository for the skill domain.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("skill/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l}
}

// Open opens (creating if needed) the database at path and applies Schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open skill db: %w", err)
	}
	// Every connection to :memory: is a separate database.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("skill/repository/sqlite.%s", method)
}

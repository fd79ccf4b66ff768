package lookups

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS lookup_entries (
	kind     TEXT NOT NULL,
	code     TEXT NOT NULL,
	id       INTEGER NOT NULL DEFAULT 0,
	name     TEXT NOT NULL DEFAULT '',
	slug     TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	ability  TEXT NOT NULL DEFAULT '',
	aliases  TEXT NOT NULL DEFAULT '[]',
	PRIMARY KEY (kind, code)
)`

type sqliteRepository struct {
	db *sql.DB
}

// SQLiteConfig contains configuration for the SQLite lookup repository.
type SQLiteConfig struct {
	DB *sql.DB
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

// OpenSQLite opens the SQLite database file at path
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db %s", path)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.FromContext(err, "failed to ping sqlite db")
	}
	return db, nil
}

// NewSQLite creates a SQLite-backed lookup repository and ensures its table exists
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if _, err := cfg.DB.Exec(sqliteSchema); err != nil {
		return nil, errors.Wrap(err, "failed to create lookup_entries table")
	}

	return &sqliteRepository{db: cfg.DB}, nil
}

func (r *sqliteRepository) ListByKind(ctx context.Context, input *ListByKindInput) (*ListByKindOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT code, id, name, slug, category, ability, aliases
		   FROM lookup_entries
		  WHERE kind = ?
		  ORDER BY id, code`,
		string(input.Kind),
	)
	if err != nil {
		return nil, errors.FromContext(err, "failed to query lookup entries").
			WithMeta("kind", string(input.Kind))
	}
	defer func() { _ = rows.Close() }()

	var entries []*lookup.Entry
	for rows.Next() {
		var (
			entry   lookup.Entry
			aliases string
		)
		if err := rows.Scan(&entry.Code, &entry.ID, &entry.Name, &entry.Slug, &entry.Category, &entry.Ability, &aliases); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to scan %s entry", input.Kind)
		}
		if err := json.Unmarshal([]byte(aliases), &entry.Aliases); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to decode aliases of %s entry %s", input.Kind, entry.Code)
		}
		if len(entry.Aliases) == 0 {
			entry.Aliases = nil
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.FromContext(err, "failed to read lookup entries")
	}

	if len(entries) == 0 {
		return nil, errors.NotFoundf("no lookup entries for kind %s", input.Kind)
	}

	return &ListByKindOutput{Entries: entries}, nil
}

func (r *sqliteRepository) Upsert(ctx context.Context, input *UpsertInput) (*UpsertOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}
	if err := validateEntries(input.Entries); err != nil {
		return nil, err
	}
	if len(input.Entries) == 0 {
		return &UpsertOutput{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.FromContext(err, "failed to begin lookup upsert")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO lookup_entries (kind, code, id, name, slug, category, ability, aliases)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (kind, code) DO UPDATE SET
		   id = excluded.id,
		   name = excluded.name,
		   slug = excluded.slug,
		   category = excluded.category,
		   ability = excluded.ability,
		   aliases = excluded.aliases`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare lookup upsert")
	}
	defer func() { _ = stmt.Close() }()

	for _, entry := range input.Entries {
		aliases := entry.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		encoded, err := json.Marshal(aliases)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode aliases of %s", entry.Code)
		}
		if _, err := stmt.ExecContext(ctx,
			string(input.Kind), entry.Code, entry.ID, entry.Name, entry.Slug, entry.Category, entry.Ability, string(encoded),
		); err != nil {
			return nil, errors.FromContext(err, "failed to upsert lookup entry").
				WithMeta("kind", string(input.Kind)).
				WithMeta("code", entry.Code)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.FromContext(err, "failed to commit lookup upsert")
	}

	return &UpsertOutput{Written: len(input.Entries)}, nil
}

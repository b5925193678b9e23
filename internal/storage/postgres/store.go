// Package postgres implements the PageStore on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/lib/pq"

	"github.com/appcanvas-dev/appcanvas/internal/page"
	"github.com/appcanvas-dev/appcanvas/internal/storage"
)

// Store implements storage.PageStore backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.PageStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and bootstraps the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	s := New(db)
	if err := s.EnsureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the builder tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS builder_pages (
			id         UUID PRIMARY KEY,
			app_key    TEXT NOT NULL,
			name       TEXT NOT NULL,
			slug       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS builder_pages_app_idx
			ON builder_pages (app_key, updated_at DESC);

		CREATE TABLE IF NOT EXISTS builder_instances (
			id       UUID PRIMARY KEY,
			page_id  UUID NOT NULL REFERENCES builder_pages (id) ON DELETE CASCADE,
			kind_id  TEXT NOT NULL,
			params   JSONB NOT NULL DEFAULT '{}',
			position INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS builder_instances_page_idx
			ON builder_instances (page_id, position);

		CREATE TABLE IF NOT EXISTS builder_kinds (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL DEFAULT '',
			category   TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (s *Store) CreatePage(ctx context.Context, p *page.Page) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builder_pages (id, app_key, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.AppKey, p.Name, p.Slug, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *Store) AttachInstances(ctx context.Context, pageID string, instances []*page.Instance) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM builder_instances WHERE page_id = $1`, pageID); err != nil {
		return err
	}

	for _, inst := range instances {
		paramsJSON, err := json.Marshal(inst.Params)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO builder_instances (id, page_id, kind_id, params, position)
			VALUES ($1, $2, $3, $4, $5)
		`, inst.ID, pageID, inst.KindID, paramsJSON, inst.Position); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) UpsertKind(ctx context.Context, rec storage.KindRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builder_kinds (id, name, category, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, category = EXCLUDED.category, updated_at = EXCLUDED.updated_at
	`, rec.ID, rec.Name, rec.Category, rec.UpdatedAt)
	return err
}

func (s *Store) GetKind(ctx context.Context, kindID string) (storage.KindRecord, error) {
	var rec storage.KindRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, updated_at FROM builder_kinds WHERE id = $1
	`, kindID).Scan(&rec.ID, &rec.Name, &rec.Category, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.KindRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.KindRecord{}, err
	}
	return rec, nil
}

func (s *Store) GetPage(ctx context.Context, pageID string) (*page.Page, error) {
	return s.queryPage(ctx, `
		SELECT id, app_key, name, slug, created_at, updated_at
		FROM builder_pages WHERE id = $1
	`, pageID)
}

func (s *Store) GetPageBySlug(ctx context.Context, appKey, slug string) (*page.Page, error) {
	return s.queryPage(ctx, `
		SELECT id, app_key, name, slug, created_at, updated_at
		FROM builder_pages
		WHERE app_key = $1 AND slug = $2
		ORDER BY updated_at DESC
		LIMIT 1
	`, appKey, slug)
}

func (s *Store) LatestPage(ctx context.Context, appKey string) (*page.Page, error) {
	return s.queryPage(ctx, `
		SELECT id, app_key, name, slug, created_at, updated_at
		FROM builder_pages
		WHERE app_key = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`, appKey)
}

func (s *Store) FindPagesByApp(ctx context.Context, appKey string) ([]*page.Page, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, app_key, name, slug, created_at, updated_at
		FROM builder_pages
		WHERE app_key = $1
		ORDER BY updated_at DESC
	`, appKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*page.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range pages {
		if err := s.loadInstances(ctx, p); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*page.Page, error) {
	var p page.Page
	if err := row.Scan(&p.ID, &p.AppKey, &p.Name, &p.Slug, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) queryPage(ctx context.Context, query string, args ...any) (*page.Page, error) {
	p, err := scanPage(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if err := s.loadInstances(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) loadInstances(ctx context.Context, p *page.Page) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind_id, params, position
		FROM builder_instances
		WHERE page_id = $1
		ORDER BY position ASC
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var inst page.Instance
		var paramsJSON []byte
		if err := rows.Scan(&inst.ID, &inst.KindID, &paramsJSON, &inst.Position); err != nil {
			return err
		}
		if err := json.Unmarshal(paramsJSON, &inst.Params); err != nil {
			return err
		}
		p.Instances = append(p.Instances, &inst)
	}
	return rows.Err()
}

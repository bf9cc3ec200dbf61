// Package edgestore is the edge service's durable fallback behind the
// in-process/Redis cache: the discovered semester catalog and the last
// rendered CSV per cache key both survive a process restart here.
package edgestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CatalogEntry is one row of the discovered semester catalog.
type CatalogEntry struct {
	Semester     int
	PDFURL       string
	DiscoveredAt string
}

// CSVCacheEntry is a durably-stored rendered CSV, keyed the same way as the
// in-process/Redis cache (the edge service uses one key per semester).
type CSVCacheEntry struct {
	CacheKey    string
	Semester    int
	CSVData     string
	ContentHash string
	CreatedAt   string
	HitCount    int
}

// Store wraps the SQLite database backing the edge service.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at dbPath and applies the schema
// and any pending migrations.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// UpsertCatalogEntry records (or updates) the PDF URL for one semester.
func (s *Store) UpsertCatalogEntry(ctx context.Context, semester int, pdfURL string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_entries (semester, pdf_url) VALUES (?, ?)
		ON CONFLICT(semester) DO UPDATE SET
			pdf_url = excluded.pdf_url,
			discovered_at = CURRENT_TIMESTAMP
	`, semester, pdfURL)
	return err
}

// GetCatalogEntry returns the catalog entry for a semester, or
// sql.ErrNoRows if the catalog hasn't discovered it yet.
func (s *Store) GetCatalogEntry(ctx context.Context, semester int) (CatalogEntry, error) {
	var e CatalogEntry
	e.Semester = semester
	err := s.db.QueryRowContext(ctx,
		"SELECT pdf_url, discovered_at FROM catalog_entries WHERE semester = ?", semester,
	).Scan(&e.PDFURL, &e.DiscoveredAt)
	return e, err
}

// ListCatalogEntries returns every discovered catalog entry, most recently
// discovered first.
func (s *Store) ListCatalogEntries(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT semester, pdf_url, discovered_at FROM catalog_entries ORDER BY discovered_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.Semester, &e.PDFURL, &e.DiscoveredAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PutCSV durably stores a rendered CSV under cacheKey, replacing any prior
// entry for that key.
func (s *Store) PutCSV(ctx context.Context, cacheKey string, semester int, csvData, contentHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO csv_cache (cache_key, semester, csv_data, content_hash) VALUES (?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			csv_data = excluded.csv_data,
			content_hash = excluded.content_hash,
			created_at = CURRENT_TIMESTAMP,
			hit_count = 0
	`, cacheKey, semester, csvData, contentHash)
	return err
}

// GetCSV returns the durably-stored CSV for cacheKey and bumps its hit
// counter, or sql.ErrNoRows if nothing is stored.
func (s *Store) GetCSV(ctx context.Context, cacheKey string) (CSVCacheEntry, error) {
	var e CSVCacheEntry
	e.CacheKey = cacheKey
	err := s.db.QueryRowContext(ctx,
		"SELECT semester, csv_data, content_hash, created_at, hit_count FROM csv_cache WHERE cache_key = ?",
		cacheKey,
	).Scan(&e.Semester, &e.CSVData, &e.ContentHash, &e.CreatedAt, &e.HitCount)
	if err != nil {
		return CSVCacheEntry{}, err
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE csv_cache SET hit_count = hit_count + 1 WHERE cache_key = ?", cacheKey); err != nil {
		return CSVCacheEntry{}, err
	}
	return e, nil
}

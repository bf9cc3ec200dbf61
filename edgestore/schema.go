package edgestore

// schemaSQL returns the DDL for the edge service's durable store: the
// semester catalog discovered by the crawler, and a disk-backed fallback
// of rendered CSVs keyed the same way as the in-process/Redis cache.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS catalog_entries (
	semester    INTEGER PRIMARY KEY,
	pdf_url     TEXT NOT NULL,
	discovered_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS csv_cache (
	cache_key   TEXT PRIMARY KEY,
	semester    INTEGER NOT NULL,
	csv_data    TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_csv_cache_semester ON csv_cache(semester);
`

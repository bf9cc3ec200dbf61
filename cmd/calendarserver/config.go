package main

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration for the calendar edge service.
type Config struct {
	ListenAddr string `json:"listen_addr"`

	// CatalogURL is the university page listing each semester's calendar
	// PDF. Empty disables catalog discovery (cal_link/csv then only serve
	// whatever is already in the durable store).
	CatalogURL string `json:"catalog_url"`

	// DBPath is the SQLite file backing the durable catalog/CSV store.
	DBPath string `json:"db_path"`

	// RedisURL configures the primary cache. Empty falls back to an
	// in-process LRU (see cache.go).
	RedisURL string `json:"redis_url"`
	LRUSize  int    `json:"lru_size"`

	RefreshInterval time.Duration `json:"refresh_interval"`

	// CORSOrigins is sent as-is as the Access-Control-Allow-Origin value
	// (a single origin or "*"). Empty disables CORS headers entirely.
	CORSOrigins string `json:"cors_origins"`

	FetchTimeout time.Duration `json:"fetch_timeout"`
}

// DefaultConfig returns a Config with sensible defaults for local use.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":8080",
		DBPath:          defaultDBPath(),
		LRUSize:         64,
		RefreshInterval: 6 * time.Hour,
		FetchTimeout:    30 * time.Second,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "chihlee-calendar.db"
	}
	return filepath.Join(home, ".chihlee-calendar", "edge.db")
}

//go:build cgo

package edgestore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewCreatesParentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub", "dir")
	s, err := New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("creating store in nested dir: %v", err)
	}
	s.Close()
}

func TestUpsertAndGetCatalogEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertCatalogEntry(ctx, 114, "https://example.edu/calendar/114.pdf"); err != nil {
		t.Fatalf("upserting catalog entry: %v", err)
	}

	got, err := s.GetCatalogEntry(ctx, 114)
	if err != nil {
		t.Fatalf("getting catalog entry: %v", err)
	}
	if got.PDFURL != "https://example.edu/calendar/114.pdf" {
		t.Fatalf("pdf_url = %q", got.PDFURL)
	}

	if err := s.UpsertCatalogEntry(ctx, 114, "https://example.edu/calendar/114-revised.pdf"); err != nil {
		t.Fatalf("updating catalog entry: %v", err)
	}
	got, err = s.GetCatalogEntry(ctx, 114)
	if err != nil {
		t.Fatalf("getting updated catalog entry: %v", err)
	}
	if got.PDFURL != "https://example.edu/calendar/114-revised.pdf" {
		t.Fatalf("pdf_url after update = %q", got.PDFURL)
	}
}

func TestGetCatalogEntryMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetCatalogEntry(context.Background(), 999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestPutAndGetCSVBumpsHitCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutCSV(ctx, "114:nopage,notable", 114, "date,event\n9/23,敬師餐會\n", "deadbeef"); err != nil {
		t.Fatalf("putting csv: %v", err)
	}

	first, err := s.GetCSV(ctx, "114:nopage,notable")
	if err != nil {
		t.Fatalf("getting csv: %v", err)
	}
	if first.HitCount != 0 {
		t.Fatalf("hit_count before second read = %d, want 0", first.HitCount)
	}

	second, err := s.GetCSV(ctx, "114:nopage,notable")
	if err != nil {
		t.Fatalf("getting csv again: %v", err)
	}
	if second.HitCount != 1 {
		t.Fatalf("hit_count after second read = %d, want 1", second.HitCount)
	}
}

func TestListCatalogEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.UpsertCatalogEntry(ctx, 113, "https://example.edu/calendar/113.pdf"); err != nil {
		t.Fatalf("upserting: %v", err)
	}
	if err := s.UpsertCatalogEntry(ctx, 114, "https://example.edu/calendar/114.pdf"); err != nil {
		t.Fatalf("upserting: %v", err)
	}
	entries, err := s.ListCatalogEntries(ctx)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v, want 2", entries)
	}
}

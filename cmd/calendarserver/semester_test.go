package main

import (
	"testing"
	"time"
)

func TestCurrentSemesterOnOrAfterCutover(t *testing.T) {
	// 2025-08-01 00:00 Taipei is the first instant of ROC 114's semester.
	now := time.Date(2025, time.August, 1, 0, 0, 0, 0, taipei)
	if got := CurrentSemester(now); got != 114 {
		t.Fatalf("CurrentSemester = %d, want 114", got)
	}
}

func TestCurrentSemesterBeforeCutover(t *testing.T) {
	// 2025-07-31 23:59 Taipei is still ROC 113's semester.
	now := time.Date(2025, time.July, 31, 23, 59, 0, 0, taipei)
	if got := CurrentSemester(now); got != 113 {
		t.Fatalf("CurrentSemester = %d, want 113", got)
	}
}

func TestCurrentSemesterConvertsFromOtherZone(t *testing.T) {
	// 2025-08-01 07:30 UTC is 2025-08-01 15:30 Taipei, after cutover.
	now := time.Date(2025, time.August, 1, 7, 30, 0, 0, time.UTC)
	if got := CurrentSemester(now); got != 114 {
		t.Fatalf("CurrentSemester = %d, want 114", got)
	}
}

func TestValidateSemesterRange(t *testing.T) {
	if err := ValidateSemester(0); err != nil {
		t.Fatalf("0 should be valid: %v", err)
	}
	if err := ValidateSemester(999); err != nil {
		t.Fatalf("999 should be valid: %v", err)
	}
	if err := ValidateSemester(-1); err == nil {
		t.Fatal("expected an error for -1")
	}
	if err := ValidateSemester(1000); err == nil {
		t.Fatal("expected an error for 1000")
	}
}

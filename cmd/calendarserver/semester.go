package main

import (
	"fmt"
	"time"
)

// taipei is loaded once; a missing tzdata falls back to a fixed UTC+8
// zone so the cutover rule still holds on minimal container images.
var taipei = loadTaipei()

func loadTaipei() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// CurrentSemester resolves "now" to a ROC-year semester using the August-1
// Asia/Taipei cutover rule (spec Glossary, "Semester (ROC year)"): on or
// after August 1 local time the current semester is the current ROC year,
// otherwise it is the previous one.
func CurrentSemester(now time.Time) int {
	t := now.In(taipei)
	rocYear := t.Year() - 1911
	cutover := time.Date(t.Year(), time.August, 1, 0, 0, 0, 0, taipei)
	if t.Before(cutover) {
		rocYear--
	}
	return rocYear
}

// ValidateSemester enforces the 0..=999 range spec.md §6 accepts.
func ValidateSemester(semester int) error {
	if semester < 0 || semester > 999 {
		return fmt.Errorf("semester %d out of range 0..999", semester)
	}
	return nil
}

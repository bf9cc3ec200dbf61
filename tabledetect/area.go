package tabledetect

import (
	"fmt"

	"github.com/ctlin/chihlee-calendar/model"
)

// DetectAll runs Detect over every page in document order, which is also
// detection order (spec.md §5: "page-major, line-major").
func DetectAll(pages []model.PageText, minCols int) []model.DetectedTable {
	var tables []model.DetectedTable
	for _, p := range pages {
		tables = append(tables, Detect(p, minCols)...)
	}
	return tables
}

// ApplyAreas folds manual recovery hints into an already-detected table list
// (spec.md §4.3's "Manual areas"). Since no page geometry is available from
// the text extractor, an area hint only identifies which page to rescan
// with a relaxed min_cols; it cannot crop to the rectangle itself, which is
// why the result is always marked ManualArea and flagged approximate.
func ApplyAreas(pages []model.PageText, auto []model.DetectedTable, areas []model.TableArea, minCols int) ([]model.DetectedTable, []model.ExtractWarning) {
	if len(areas) == 0 {
		return auto, nil
	}

	var warnings []model.ExtractWarning

	needsRecovery := len(auto) == 0
	var kept []model.DetectedTable
	for _, t := range auto {
		if t.LowConfidence() {
			needsRecovery = true
			continue
		}
		kept = append(kept, t)
	}

	if !needsRecovery {
		return auto, nil
	}

	warnings = append(warnings, model.NewWarning(model.WarningAreaFallbackApproximate,
		"manual areas supplied; falling back to approximate page rescan"))

	relaxed := minCols - 1
	if relaxed < 2 {
		relaxed = 2
	}

	byPage := make(map[uint32]model.PageText, len(pages))
	selected := make(map[uint32]bool, len(pages))
	for _, p := range pages {
		byPage[p.PageNumber] = p
		selected[p.PageNumber] = true
	}

	for _, area := range areas {
		if !selected[area.Page] {
			warnings = append(warnings, model.ExtractWarning{
				Kind:       model.WarningAreaFallbackApproximate,
				Page:       area.Page,
				TableID:    0,
				Confidence: -1,
				Message:    fmt.Sprintf("area for page %d is outside the selected pages", area.Page),
			})
			continue
		}
		page := byPage[area.Page]
		for _, t := range Detect(page, relaxed) {
			t.Origin = model.OriginManualArea
			kept = append(kept, t)
		}
	}

	return kept, warnings
}

// Package tabledetect groups consecutive whitespace-delimited lines into
// candidate tables and scores how consistent their row widths are.
package tabledetect

import (
	"sort"
	"strings"

	"github.com/ctlin/chihlee-calendar/linetok"
	"github.com/ctlin/chihlee-calendar/model"
)

// Detect walks page's lines in order, accumulating runs of multi-cell lines
// into DetectedTables (spec.md §4.3). minCols must be >= 2.
func Detect(page model.PageText, minCols int) []model.DetectedTable {
	var tables []model.DetectedTable
	var buf [][]string

	flush := func() {
		if len(buf) >= 2 {
			tables = append(tables, build(page.PageNumber, buf, model.OriginAuto))
		}
		buf = nil
	}

	for _, line := range strings.Split(page.Text, "\n") {
		if row, ok := splitRow(line, minCols); ok {
			buf = append(buf, row)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// splitRow decides whether line belongs in a table, trying hard split first
// and falling back to soft split under the constraints in spec.md §4.3.
func splitRow(line string, minCols int) ([]string, bool) {
	if hard := linetok.HardSplit(line); len(hard) >= minCols {
		return hard, true
	}

	soft := linetok.SoftSplit(line)
	if len(soft) < minCols {
		return nil, false
	}
	trimmed := strings.TrimRight(line, " \t")
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") || strings.HasSuffix(trimmed, "?") {
		return nil, false
	}
	if !hasDigit(line) && len(soft) > 6 {
		return nil, false
	}
	return soft, true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func build(page uint32, rows [][]string, origin model.TableOrigin) model.DetectedTable {
	return model.DetectedTable{
		Page:       page,
		Rows:       rows,
		Confidence: confidence(rows),
		Origin:     origin,
	}
}

// confidence implements spec.md §4.3's formula.
func confidence(rows [][]string) float64 {
	if len(rows) == 0 {
		return 0
	}

	counts := make(map[int]int)
	maxWidth, minWidth := 0, -1
	for _, r := range rows {
		w := len(r)
		counts[w]++
		if w > maxWidth {
			maxWidth = w
		}
		if minWidth == -1 || w < minWidth {
			minWidth = w
		}
	}

	modal := modalWidth(counts)
	consistent := float64(counts[modal]) / float64(len(rows))

	uniformity := 0.0
	if maxWidth != 0 {
		uniformity = 1 - float64(maxWidth-minWidth)/float64(maxWidth)
	}

	c := 0.75*consistent + 0.25*uniformity
	return clamp(c, 0, 1)
}

// modalWidth returns the most frequent row width, ties broken toward the
// larger width (spec.md's "Modal width" glossary entry).
func modalWidth(counts map[int]int) int {
	widths := make([]int, 0, len(counts))
	for w := range counts {
		widths = append(widths, w)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(widths)))

	best, bestCount := widths[0], counts[widths[0]]
	for _, w := range widths[1:] {
		if counts[w] > bestCount {
			best, bestCount = w, counts[w]
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package headerinfer decides whether a detected table's first row is a
// header row (spec.md §4.5).
package headerinfer

import (
	"strconv"
	"strings"

	"github.com/ctlin/chihlee-calendar/model"
)

// Result carries the header decision and, for AutoDetect, the confidence
// behind it.
type Result struct {
	DropFirstRow bool
	Confidence   float64
	LowConfidence bool
}

// Infer applies mode to rows (spec.md §4.5). calendarMode overrides
// AutoDetect to NoHeader, since calendar rows never carry a schema header.
func Infer(rows [][]string, mode model.HeaderMode, calendarMode bool) Result {
	effective := mode
	if calendarMode && mode == model.HeaderAutoDetect {
		effective = model.HeaderNoHeader
	}

	switch effective {
	case model.HeaderHasHeader:
		return Result{DropFirstRow: true, Confidence: 1}
	case model.HeaderNoHeader:
		return Result{DropFirstRow: false, Confidence: 1}
	default:
		return autoDetect(rows)
	}
}

func autoDetect(rows [][]string) Result {
	firstNN := nonNumericFraction(row(rows, 0))
	secondNN := nonNumericFraction(row(rows, 1))

	hasHeader := firstNN >= 0.6 && secondNN <= 0.7
	confidence := clamp(0.6*firstNN+0.4*(1-secondNN), 0, 1)

	res := Result{Confidence: confidence}
	if hasHeader && confidence >= 0.55 {
		res.DropFirstRow = true
	}
	if confidence < 0.55 {
		res.LowConfidence = true
	}
	return res
}

func row(rows [][]string, i int) []string {
	if i < 0 || i >= len(rows) {
		return nil
	}
	return rows[i]
}

// nonNumericFraction returns 0 for a missing row (spec.md §4.5: "0 if
// missing"), and otherwise the fraction of cells that are not numeric.
func nonNumericFraction(cells []string) float64 {
	if len(cells) == 0 {
		return 0
	}
	nonNumeric := 0
	for _, c := range cells {
		if !isNumeric(c) {
			nonNumeric++
		}
	}
	return float64(nonNumeric) / float64(len(cells))
}

// isNumeric reports whether trimming c and removing commas yields a string
// parseable as a decimal number.
func isNumeric(c string) bool {
	s := strings.ReplaceAll(strings.TrimSpace(c), ",", "")
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
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

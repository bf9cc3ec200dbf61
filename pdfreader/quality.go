package pdfreader

import (
	"strings"
	"unicode"

	"github.com/ctlin/chihlee-calendar/linetok"
)

// score implements spec.md §4.1's candidate scoring function, used both to
// pick the best of up to four extraction candidates per page and to decide
// whether the whole-document fallback is warranted.
//
//	score = 50*multi_cell_lines + 15*date_like_lines + non_empty_lines - 800*broken
func score(text string) int64 {
	if strings.TrimSpace(text) == "" {
		return minScore
	}

	var multiCell, dateLike, nonEmpty int64
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		if isMultiCellLine(line) {
			multiCell++
		}
		if isDateLikeLine(line) {
			dateLike++
		}
	}

	broken := int64(0)
	if looksBroken(text) {
		broken = 1
	}

	return 50*multiCell + 15*dateLike + nonEmpty - 800*broken
}

// minScore is i64::MIN/4 in spec.md's terms, reserved for empty-trim text.
const minScore int64 = (-1 << 63) / 4

func isMultiCellLine(line string) bool {
	if len(linetok.HardSplit(line)) >= 2 {
		return true
	}
	return len(linetok.SoftSplit(line)) >= 3
}

func isDateLikeLine(line string) bool {
	hasDigit, hasSlash := false, false
	for _, r := range line {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if r == '/' {
			hasSlash = true
		}
		if hasDigit && hasSlash {
			return true
		}
	}
	return false
}

// argmaxCandidate returns the index of the highest-scoring candidate. Ties
// keep the earliest candidate, making the policy deterministic (spec.md §9).
func argmaxCandidate(candidates []string) int {
	best := 0
	bestScore := score(candidates[0])
	for i := 1; i < len(candidates); i++ {
		if s := score(candidates[i]); s > bestScore {
			bestScore = s
			best = i
		}
	}
	return best
}

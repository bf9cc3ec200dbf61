// Package linetok splits a single line of extracted PDF text into cells
// using whitespace-run heuristics, since the text-only extraction this
// module works from carries no column geometry (spec.md §4.2).
package linetok

import (
	"strings"
	"unicode"
)

// HardSplit breaks line into cells on tabs and on any run of two or more
// whitespace runes; a single plain-space run is kept inside a cell as a
// literal space rather than treated as a separator. Each emitted cell is
// trimmed. Returns nil for a blank line.
func HardSplit(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	runes := []rune(line)
	n := len(runes)
	var cells []string
	var cur strings.Builder

	i := 0
	for i < n {
		r := runes[i]
		if unicode.IsSpace(r) {
			j := i
			hasTab := false
			for j < n && unicode.IsSpace(runes[j]) {
				if runes[j] == '\t' {
					hasTab = true
				}
				j++
			}
			runLen := j - i
			if hasTab || runLen >= 2 {
				cells = append(cells, strings.TrimSpace(cur.String()))
				cur.Reset()
			} else {
				cur.WriteRune(' ')
			}
			i = j
			continue
		}
		cur.WriteRune(r)
		i++
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// SoftSplit splits on any whitespace run, used only when HardSplit yields
// too few cells (spec.md §4.3).
func SoftSplit(line string) []string {
	return strings.Fields(line)
}

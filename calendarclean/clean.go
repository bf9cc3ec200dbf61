package calendarclean

import (
	"strings"

	"github.com/ctlin/chihlee-calendar/model"
)

var calendarHeaders = []string{"page", "table_id", "col_1", "col_2"}

// entry is the single "current entry" carried across lines while scanning
// raw full text (spec.md §4.6a).
type entry struct {
	date  string
	parts []string
}

func (e *entry) append(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	e.parts = append(e.parts, s)
}

// CleanFromText implements the "from raw full text" entry point. Output
// rows always carry synthetic page/table_id "1","1", since this path never
// tracks real table provenance.
func CleanFromText(text string) model.MergedOutput {
	type pair struct{ date, event string }
	var pairs []pair
	seen := make(map[string]bool)

	var current *entry
	push := func() {
		if current == nil {
			return
		}
		raw := strings.Join(current.parts, " ")
		for _, ev := range splitMixedEvent(cleanEvent(raw)) {
			key := current.date + "\x00" + ev
			if seen[key] {
				continue
			}
			seen[key] = true
			pairs = append(pairs, pair{date: current.date, event: ev})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		tokens := scanDateTokens(line)

		if len(tokens) == 0 {
			if looksLikeCalendarNote(line) || isNoiseToken(line) {
				continue
			}
			if current != nil {
				current.append(line)
			}
			continue
		}

		pre := line[:tokens[0].Start]
		if current != nil && !looksLikeCalendarNote(pre) && !isNoiseToken(pre) {
			current.append(pre)
		}

		for i, tok := range tokens {
			push()
			end := len(line)
			if i+1 < len(tokens) {
				end = tokens[i+1].Start
			}
			current = &entry{date: tok.Normalized}
			current.append(line[tok.End:end])
		}
	}
	push()

	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{"1", "1", p.date, p.event})
	}

	tableCount := 0
	if len(rows) > 0 {
		tableCount = 1
	}

	return model.MergedOutput{
		Headers:    calendarHeaders,
		Rows:       rows,
		TableCount: tableCount,
		RowCount:   len(rows),
	}
}

// CleanOutput implements the "post-process an already-detected merged
// table" entry point, used when the text path yields no rows.
func CleanOutput(merged model.MergedOutput) model.MergedOutput {
	type key struct{ page, table, date, event string }
	seen := make(map[key]bool)
	tableIDs := make(map[string]bool)
	var tableOrder []string
	var rows [][]string

	for _, row := range merged.Rows {
		if len(row) < 2 {
			continue
		}
		page, tableID := row[0], row[1]
		cells := row[2:]

		for i, cell := range cells {
			toks := scanDateTokens(cell)
			if len(toks) == 0 {
				continue
			}
			date := toks[0].Normalized

			event := ""
			for j := i + 1; j < len(cells); j++ {
				c := cells[j]
				if isNoiseToken(c) {
					continue
				}
				if len(scanDateTokens(c)) > 0 {
					// Another date cell means this date has no event of its
					// own; give up rather than attach a later date's text.
					break
				}
				event = strings.TrimSpace(c)
				break
			}
			if event == "" {
				continue
			}

			k := key{page: page, table: tableID, date: date, event: event}
			if seen[k] {
				continue
			}
			seen[k] = true
			if !tableIDs[tableID] {
				tableIDs[tableID] = true
				tableOrder = append(tableOrder, tableID)
			}
			rows = append(rows, []string{page, tableID, date, event})
		}
	}

	return model.MergedOutput{
		Headers:    calendarHeaders,
		Rows:       rows,
		TableCount: len(tableOrder),
		RowCount:   len(rows),
	}
}

// Clean applies the driver's choice between the two entry points (spec.md
// §4.6, §4.9 step 8): the text path wins whenever it produces any rows.
func Clean(fullText string, merged model.MergedOutput) model.MergedOutput {
	fromText := CleanFromText(fullText)
	if fromText.RowCount > 0 {
		return fromText
	}
	return CleanOutput(merged)
}

// Package csvwriter emits a MergedOutput as delimited text, with optional
// column projection and renaming (spec.md §4.8).
package csvwriter

import (
	"encoding/csv"
	"strings"

	"github.com/ctlin/chihlee-calendar/model"
)

// Project drops the page and/or table_id columns from out, operating on the
// header row and every data row by retained index. Calling Project twice
// with the same flags is idempotent: once a column is gone, the second call
// finds nothing left with that name to drop.
func Project(out model.MergedOutput, noPage, noTable bool) model.MergedOutput {
	drop := make(map[int]bool)
	for i, h := range out.Headers {
		if noPage && h == "page" {
			drop[i] = true
		}
		if noTable && h == "table_id" {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return out
	}

	out.Headers = retain(out.Headers, drop)
	rows := make([][]string, len(out.Rows))
	for i, r := range out.Rows {
		rows[i] = retain(r, drop)
	}
	out.Rows = rows
	return out
}

func retain(fields []string, drop map[int]bool) []string {
	kept := make([]string, 0, len(fields))
	for i, f := range fields {
		if !drop[i] {
			kept = append(kept, f)
		}
	}
	return kept
}

// Rename renames headers exactly named "col_1" and "col_2" to a and b
// (spec.md §4.8, invariant 6: it must touch nothing else).
func Rename(out model.MergedOutput, a, b string) model.MergedOutput {
	if a == "" && b == "" {
		return out
	}
	headers := make([]string, len(out.Headers))
	copy(headers, out.Headers)
	for i, h := range headers {
		switch h {
		case "col_1":
			if a != "" {
				headers[i] = a
			}
		case "col_2":
			if b != "" {
				headers[i] = b
			}
		}
	}
	out.Headers = headers
	return out
}

// Write serializes out as CSV using delimiter, following standard
// double-quote quoting rules (spec.md §4.8).
func Write(out model.MergedOutput, delimiter byte) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = rune(delimiter)

	if err := w.Write(out.Headers); err != nil {
		return "", err
	}
	for _, r := range out.Rows {
		if err := w.Write(r); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

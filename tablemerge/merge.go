// Package tablemerge normalizes ragged PreparedTable rows to a single
// global column count and emits one MergedOutput (spec.md §4.7).
package tablemerge

import (
	"strconv"

	"github.com/ctlin/chihlee-calendar/model"
)

// Merge computes width as the maximum row length across every table, builds
// the "page","table_id","col_1"... header row, and pads every row to width.
func Merge(tables []model.PreparedTable) model.MergedOutput {
	width := 0
	for _, t := range tables {
		for _, r := range t.Rows {
			if len(r) > width {
				width = len(r)
			}
		}
	}

	headers := make([]string, 0, width+2)
	headers = append(headers, "page", "table_id")
	for i := 1; i <= width; i++ {
		headers = append(headers, "col_"+strconv.Itoa(i))
	}

	distinct := make(map[int]bool)
	var rows [][]string
	for _, t := range tables {
		distinct[t.TableID] = true
		pageStr := strconv.FormatUint(uint64(t.Page), 10)
		idStr := strconv.Itoa(t.TableID)
		for _, r := range t.Rows {
			row := make([]string, 0, width+2)
			row = append(row, pageStr, idStr)
			for i := 0; i < width; i++ {
				if i < len(r) {
					row = append(row, r[i])
				} else {
					row = append(row, "")
				}
			}
			rows = append(rows, row)
		}
	}

	return model.MergedOutput{
		Headers:    headers,
		Rows:       rows,
		TableCount: len(distinct),
		RowCount:   len(rows),
	}
}

// PrepareTables assigns table_id := 1,2,... in detection order after the
// Header Inferrer has decided which rows survive for each table.
func PrepareTables(tables []model.DetectedTable, dropFirstRow []bool) []model.PreparedTable {
	var prepared []model.PreparedTable
	for i, t := range tables {
		rows := t.Rows
		if i < len(dropFirstRow) && dropFirstRow[i] && len(rows) > 0 {
			rows = rows[1:]
		}
		prepared = append(prepared, model.PreparedTable{
			Page:    t.Page,
			TableID: i + 1,
			Rows:    rows,
		})
	}
	return prepared
}

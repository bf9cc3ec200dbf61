package calendarclean

import (
	"strings"
	"testing"

	"github.com/ctlin/chihlee-calendar/model"
)

func TestCleanFromTextDateRangeParsing(t *testing.T) {
	text := "9/15~9/19 開學週；日間部延\n修生註冊；舊生於9/15前申請\n9/23 敬師餐會"
	out := CleanFromText(text)
	if out.RowCount != 2 {
		t.Fatalf("row_count = %d, want 2 (rows: %v)", out.RowCount, out.Rows)
	}
	if out.Rows[0][2] != "9/15~9/19" {
		t.Fatalf("row 0 date = %q, want 9/15~9/19", out.Rows[0][2])
	}
	if !strings.Contains(out.Rows[0][3], "修生註冊") {
		t.Fatalf("row 0 event = %q, want it to contain 修生註冊", out.Rows[0][3])
	}
}

func TestCleanFromTextMixedEventSplit(t *testing.T) {
	text := "6/19 端午節 四技甄選入學實作面試(日期未定)遇端午連假，招策會尚未確定"
	out := CleanFromText(text)
	if out.RowCount != 2 {
		t.Fatalf("row_count = %d, want 2 (rows: %v)", out.RowCount, out.Rows)
	}
	for _, r := range out.Rows {
		if r[2] != "6/19" {
			t.Fatalf("expected both rows dated 6/19, got %q", r[2])
		}
	}
	if out.Rows[0][3] != "端午節" {
		t.Fatalf("row 0 event = %q, want 端午節", out.Rows[0][3])
	}
	if !strings.Contains(out.Rows[1][3], "四技甄選入學實作面試") {
		t.Fatalf("row 1 event = %q, want it to start with the marker", out.Rows[1][3])
	}
}

func TestCleanOutputPostProcessPath(t *testing.T) {
	merged := model.MergedOutput{
		Headers: []string{"page", "table_id", "col_1", "col_2", "col_3"},
		Rows: [][]string{
			{"1", "1", "8/1", "開學", ""},
			{"1", "2", "11/17~11/21", "期中考試週", ""},
			{"1", "2", "備註", "說明", ""},
		},
	}
	out := CleanOutput(merged)
	if out.RowCount != 2 {
		t.Fatalf("row_count = %d, want 2 (rows: %v)", out.RowCount, out.Rows)
	}
	if out.Rows[0][2] != "8/1" || out.Rows[0][3] != "開學" {
		t.Fatalf("row 0 = %v", out.Rows[0])
	}
	if out.Rows[1][2] != "11/17~11/21" || out.Rows[1][3] != "期中考試週" {
		t.Fatalf("row 1 = %v", out.Rows[1])
	}
}

func TestCleanOutputGivesUpWhenNextCellIsAlsoADate(t *testing.T) {
	merged := model.MergedOutput{
		Headers: []string{"page", "table_id", "col_1", "col_2", "col_3"},
		Rows: [][]string{
			{"1", "1", "8/1", "9/1", "開學"},
		},
	}
	out := CleanOutput(merged)
	// 8/1's event search must stop at the next date cell ("9/1") rather
	// than skip past it to 開學, so only 9/1 gets that event.
	if out.RowCount != 1 {
		t.Fatalf("row_count = %d, want 1: %v", out.RowCount, out.Rows)
	}
	if out.Rows[0][2] != "9/1" || out.Rows[0][3] != "開學" {
		t.Fatalf("row 0 = %v, want date=9/1 event=開學", out.Rows[0])
	}
}

func TestCleanDriverPrefersTextPathWhenNonEmpty(t *testing.T) {
	text := "9/23 敬師餐會"
	merged := model.MergedOutput{
		Headers: []string{"page", "table_id", "col_1", "col_2"},
		Rows:    [][]string{{"1", "1", "備註", "無關內容"}},
	}
	out := Clean(text, merged)
	if out.RowCount != 1 || out.Rows[0][2] != "9/23" {
		t.Fatalf("expected text-path result to win, got %v", out.Rows)
	}
}

func TestCleanDriverFallsBackToPostProcessWhenTextPathEmpty(t *testing.T) {
	merged := model.MergedOutput{
		Headers: []string{"page", "table_id", "col_1", "col_2"},
		Rows:    [][]string{{"1", "1", "8/1", "開學"}},
	}
	out := Clean("no dates here at all", merged)
	if out.RowCount != 1 || out.Rows[0][2] != "8/1" {
		t.Fatalf("expected post-process fallback, got %v", out.Rows)
	}
}

func TestScanDateTokensRejectsEmbeddedInID(t *testing.T) {
	toks := scanDateTokens("A12/31B")
	if len(toks) != 0 {
		t.Fatalf("expected date token inside an alnum run to be rejected, got %v", toks)
	}
}

func TestScanDateTokensKeepsFirstDateWhenRangeTailInvalid(t *testing.T) {
	toks := scanDateTokens("3/5~3/35 test")
	if len(toks) != 1 {
		t.Fatalf("expected a single token for an invalid range tail, got %v", toks)
	}
	if toks[0].Normalized != "3/5" {
		t.Fatalf("normalized = %q, want 3/5 (the range must not swallow the valid first date)", toks[0].Normalized)
	}
}

func TestIsNoiseTokenWeekday(t *testing.T) {
	if !isNoiseToken("一") {
		t.Fatal("a bare weekday character must be noise")
	}
	if isNoiseToken("開學") {
		t.Fatal("real event text must not be noise")
	}
}

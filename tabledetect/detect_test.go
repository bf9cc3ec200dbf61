package tabledetect

import (
	"testing"

	"github.com/ctlin/chihlee-calendar/model"
)

func TestDetectSimpleThreeColumnTable(t *testing.T) {
	page := model.PageText{PageNumber: 1, Text: "Name  Age  Score\nAlice  30  98\nBob  22  87"}
	tables := Detect(page, 2)
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	if len(tables[0].Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tables[0].Rows))
	}
}

func TestDetectDiscardsSingleLineRuns(t *testing.T) {
	page := model.PageText{PageNumber: 1, Text: "Name  Age  Score\nnot a table line at all, just prose."}
	tables := Detect(page, 2)
	if len(tables) != 0 {
		t.Fatalf("expected no tables from a single accumulated row, got %d", len(tables))
	}
}

func TestDetectAmbiguousRowWidthsLowConfidence(t *testing.T) {
	page := model.PageText{PageNumber: 1, Text: "A  B  C\n1  2\n3  4  5  6\n7  8"}
	tables := Detect(page, 2)
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	if !tables[0].LowConfidence() {
		t.Fatalf("expected ambiguous widths to yield low confidence, got %.2f", tables[0].Confidence)
	}
}

func TestConfidenceUniformTableIsHigh(t *testing.T) {
	rows := [][]string{{"a", "b", "c"}, {"d", "e", "f"}, {"g", "h", "i"}}
	c := confidence(rows)
	if c < 0.99 {
		t.Fatalf("confidence of a perfectly uniform table = %.4f, want ~1.0", c)
	}
}

func TestModalWidthTiesBreakTowardLarger(t *testing.T) {
	counts := map[int]int{2: 1, 3: 1}
	if got := modalWidth(counts); got != 3 {
		t.Fatalf("modalWidth tie = %d, want 3", got)
	}
}

func TestDetectAllPreservesPageMajorOrder(t *testing.T) {
	pages := []model.PageText{
		{PageNumber: 1, Text: "City  Pop  Rank\nA  10  1\nB  20  2"},
		{PageNumber: 2, Text: "Product  Qty  Price\nPen  3  1.5\nBook  1  9.9"},
	}
	tables := DetectAll(pages, 2)
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if tables[0].Page != 1 || tables[1].Page != 2 {
		t.Fatalf("expected page-major order, got pages %d then %d", tables[0].Page, tables[1].Page)
	}
}

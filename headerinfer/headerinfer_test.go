package headerinfer

import (
	"testing"

	"github.com/ctlin/chihlee-calendar/model"
)

func TestInferHasHeaderDropsFirstRow(t *testing.T) {
	r := Infer([][]string{{"Name", "Age"}, {"Alice", "30"}}, model.HeaderHasHeader, false)
	if !r.DropFirstRow {
		t.Fatal("HasHeader must drop the first row")
	}
}

func TestInferNoHeaderKeepsAllRows(t *testing.T) {
	r := Infer([][]string{{"Name", "Age"}, {"Alice", "30"}}, model.HeaderNoHeader, false)
	if r.DropFirstRow {
		t.Fatal("NoHeader must keep all rows")
	}
}

func TestInferAutoDetectTextHeader(t *testing.T) {
	rows := [][]string{{"Name", "Age", "Score"}, {"Alice", "30", "98"}}
	r := Infer(rows, model.HeaderAutoDetect, false)
	if !r.DropFirstRow {
		t.Fatalf("expected a text-looking first row to be inferred as header, confidence=%.2f", r.Confidence)
	}
}

func TestInferAutoDetectAllNumericFirstRowNoHeader(t *testing.T) {
	rows := [][]string{{"1", "2", "3"}, {"4", "5", "6"}}
	r := Infer(rows, model.HeaderAutoDetect, false)
	if r.DropFirstRow {
		t.Fatal("an all-numeric first row must never be inferred as a header")
	}
}

func TestInferCalendarModeOverridesAutoDetectToNoHeader(t *testing.T) {
	rows := [][]string{{"Name", "Age"}, {"Alice", "30"}}
	r := Infer(rows, model.HeaderAutoDetect, true)
	if r.DropFirstRow {
		t.Fatal("calendar mode must override AutoDetect to NoHeader")
	}
}

package linetok

import (
	"reflect"
	"testing"
)

func TestHardSplit(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{"three columns", "Name  Age  Score", []string{"Name", "Age", "Score"}},
		{"single space kept", "Union Cit  y", []string{"Union Cit", "y"}},
		{"tab always breaks", "A\tB", []string{"A", "B"}},
		{"tab with single char run", "A\t B", []string{"A", "B"}},
		{"blank line", "   ", nil},
		{"trims each cell", "  Alice  30  98", []string{"", "Alice", "30", "98"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HardSplit(tc.line)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("HardSplit(%q) = %#v, want %#v", tc.line, got, tc.want)
			}
		})
	}
}

func TestSoftSplit(t *testing.T) {
	got := SoftSplit("9/23 敬師餐會 notes")
	want := []string{"9/23", "敬師餐會", "notes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SoftSplit = %#v, want %#v", got, want)
	}
}

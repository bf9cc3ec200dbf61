package pdfreader

import (
	"testing"

	"golang.org/x/text/encoding/traditionalchinese"
)

func TestDecodeRunBig5(t *testing.T) {
	raw, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte("測試"))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	got := decodeRun(raw, "ETen-B5-H")
	if got != "測試" {
		t.Fatalf("decodeRun(Big5, ETen-B5-H) = %q, want %q", got, "測試")
	}
}

func TestDecodeRunPlainASCII(t *testing.T) {
	got := decodeRun([]byte("2026/08/01"), "")
	if got != "2026/08/01" {
		t.Fatalf("decodeRun(ascii) = %q", got)
	}
}

func TestLooksBrokenIdentityHMarker(t *testing.T) {
	if !looksBroken("?Identity-H Unimplemented?") {
		t.Fatal("expected Identity-H marker text to be flagged broken")
	}
}

func TestLooksBrokenReplacementFraction(t *testing.T) {
	if !looksBroken("��a") {
		t.Fatal("expected high replacement-char fraction to be flagged broken")
	}
	if looksBroken("a valid line of normal text") {
		t.Fatal("expected normal ASCII text to not be flagged broken")
	}
}

func TestLooksBrokenEmpty(t *testing.T) {
	if looksBroken("") {
		t.Fatal("empty string must never be flagged broken")
	}
}

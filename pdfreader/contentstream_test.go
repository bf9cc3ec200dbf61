package pdfreader

import "testing"

func noHint(string) string { return "" }

func TestContentWalkSimpleTj(t *testing.T) {
	stream := []byte(`BT /F1 12 Tf (Hello World) Tj ET`)
	got := contentWalk(stream, noHint)
	if got != "Hello World" {
		t.Fatalf("contentWalk simple Tj = %q", got)
	}
}

func TestContentWalkTJKerningThresholds(t *testing.T) {
	// Small kerning adjustments (magnitude < 100) concatenate without a
	// space; a large negative adjustment (a real word gap) inserts one.
	stream := []byte(`BT [(Hel)-30(lo)-4704.6(World)] TJ ET`)
	got := contentWalk(stream, noHint)
	if got != "Hello World" {
		t.Fatalf("contentWalk TJ kerning = %q, want %q", got, "Hello World")
	}
}

func TestContentWalkFlushesOnLineBreakOperators(t *testing.T) {
	stream := []byte(`BT (line one) Tj T* (line two) Tj Td (line three) Tj TD ET`)
	got := contentWalk(stream, noHint)
	want := "line one\nline two\nline three\n"
	if got != want {
		t.Fatalf("contentWalk line breaks = %q, want %q", got, want)
	}
}

func TestContentWalkQuoteOperatorsFlushLine(t *testing.T) {
	stream := []byte(`BT (first) ' (second) " ET`)
	got := contentWalk(stream, noHint)
	want := "first\nsecond\n"
	if got != want {
		t.Fatalf("contentWalk quote operators = %q, want %q", got, want)
	}
}

func TestContentWalkTfSwitchesEncodingHint(t *testing.T) {
	var seenHints []string
	hint := func(name string) string {
		seenHints = append(seenHints, name)
		return ""
	}
	stream := []byte(`BT /F1 12 Tf (a) Tj /F2 10 Tf (b) Tj ET`)
	contentWalk(stream, hint)

	if len(seenHints) != 2 || seenHints[0] != "F1" || seenHints[1] != "F2" {
		t.Fatalf("expected Tf to resolve F1 then F2, got %v", seenHints)
	}
}

func TestTokenizeContentStreamEscapedParens(t *testing.T) {
	toks := tokenizeContentStream([]byte(`(a \(b\) c)`))
	if len(toks) != 1 || toks[0].kind != tokString {
		t.Fatalf("expected single string token, got %v", toks)
	}
	if toks[0].str != "a (b) c" {
		t.Fatalf("escaped parens = %q, want %q", toks[0].str, "a (b) c")
	}
}

func TestTokenizeContentStreamHexString(t *testing.T) {
	toks := tokenizeContentStream([]byte(`<48656C6C6F>`))
	if len(toks) != 1 || toks[0].kind != tokString {
		t.Fatalf("expected single string token, got %v", toks)
	}
	if toks[0].str != "Hello" {
		t.Fatalf("hex string = %q, want %q", toks[0].str, "Hello")
	}
}

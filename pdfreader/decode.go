package pdfreader

import (
	"strings"

	"golang.org/x/text/encoding/traditionalchinese"
	xunicode "golang.org/x/text/encoding/unicode"
)

// decodeRun turns the raw bytes of one PDF string operand into text, given
// an encoding hint read from the page's font resources (spec.md §4.1's
// decoding policy). hint is typically a /Encoding name like "Identity-H",
// "UniCNS-UCS2-H", or "ETen-B5-H" — CJK PDFs name their CMaps this way, and
// those names double as our fallback-selection hint.
func decodeRun(raw []byte, hint string) string {
	lowerHint := strings.ToLower(hint)
	utf16Hint := containsAny(lowerHint, "utf16", "ucs2", "identity-h", "unicode")
	big5Hint := containsAny(lowerHint, "big5", "b5", "eten", "cns")

	generic := decodeGeneric(raw)
	if utf16Hint || big5Hint {
		// A multi-byte CMap has no byte-to-code-point table, so the generic
		// decode reads the bytes as UTF-8 and marks invalid runs with U+FFFD.
		generic = string(decodeLossyUTF8(raw))
	}
	if !looksBroken(generic) {
		return generic
	}

	if len(raw) >= 2 && isUTF16BOM(raw) {
		if s, err := decodeUTF16BE(raw[2:]); err == nil {
			return s
		}
	}

	if utf16Hint {
		if s, err := decodeUTF16BE(raw); err == nil {
			return s
		}
	}
	if big5Hint {
		if s, err := decodeBig5(raw); err == nil {
			return s
		}
	}

	return string(decodeLossyUTF8(raw))
}

func isUTF16BOM(raw []byte) bool {
	return (raw[0] == 0xFE && raw[1] == 0xFF) || (raw[0] == 0xFF && raw[1] == 0xFE)
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// decodeGeneric stands in for "the library's generic text decoder" when the
// font hint names no multi-byte CMap: absent an embedded CMap, a simple PDF
// font maps each byte directly onto a Latin-1 code point. This is correct
// for most Western-text PDFs. It rarely "looks broken", so decodeRun reads
// the bytes as lossy UTF-8 instead whenever the hint names a UTF-16 or Big5
// family CMap, which is what lets the fallback chain trigger for CJK text.
func decodeGeneric(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

func decodeUTF16BE(raw []byte) (string, error) {
	dec := xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeBig5(raw []byte) (string, error) {
	dec := traditionalchinese.Big5.NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeLossyUTF8(raw []byte) []byte {
	if isValidUTF8(raw) {
		return raw
	}
	return []byte(strings.ToValidUTF8(string(raw), "�"))
}

func isValidUTF8(raw []byte) bool {
	for i := 0; i < len(raw); {
		r := raw[i]
		if r < 0x80 {
			i++
			continue
		}
		_, size := decodeRuneBounded(raw[i:])
		if size == 0 {
			return false
		}
		i += size
	}
	return true
}

// decodeRuneBounded reports the size (in bytes) of the UTF-8 sequence
// starting at b, or 0 if b does not start a valid sequence. Avoids
// importing unicode/utf8 twice for a single call site while keeping the
// loop above simple.
func decodeRuneBounded(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	switch {
	case b[0]&0x80 == 0:
		return rune(b[0]), 1
	case b[0]&0xE0 == 0xC0 && len(b) >= 2 && b[1]&0xC0 == 0x80:
		return 0, 2
	case b[0]&0xF0 == 0xE0 && len(b) >= 3 && b[1]&0xC0 == 0x80 && b[2]&0xC0 == 0x80:
		return 0, 3
	case b[0]&0xF8 == 0xF0 && len(b) >= 4 && b[1]&0xC0 == 0x80 && b[2]&0xC0 == 0x80 && b[3]&0xC0 == 0x80:
		return 0, 4
	default:
		return 0, 0
	}
}

// looksBroken implements spec.md §4.1's decoding-broken predicate, used
// both to trigger the decode fallback chain and (via the quality score's
// `broken` term) to penalize a whole candidate page text.
func looksBroken(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, "?Identity-H Unimplemented?") {
		return true
	}

	var total, replacement, control, cjkBase, cjkExtA int
	for _, r := range s {
		total++
		switch {
		case r == '�':
			replacement++
		case r < 0x20 && r != '\n' && r != '\r' && r != '\t':
			control++
		case r >= 0x4E00 && r <= 0x9FFF:
			cjkBase++
		case r >= 0x3400 && r <= 0x4DBF:
			cjkExtA++
		}
	}
	if total == 0 {
		return false
	}
	if float64(replacement)/float64(total) > 1.0/8 {
		return true
	}
	if float64(control)/float64(total) > 1.0/5 {
		return true
	}
	cjkTotal := cjkBase + cjkExtA
	if cjkTotal > 20 && float64(cjkExtA)/float64(cjkTotal) > 1.0/4 {
		return true
	}
	return false
}

// Package pdfreader implements the PDF Reader pipeline stage: it turns raw
// PDF bytes into one decoded PageText per selected page.
//
// ledongthuc/pdf's public API (Content, GetPlainText) already applies a
// font's embedded CMap when one is present, which is exactly right for most
// documents but loses information for the CJK calendars this project
// targets: a font declared with a bare /Encoding name and no embedded CMap
// decodes as mismatched code points unless something resolves that name
// itself. So ReadPages generates several candidate extractions per page and
// keeps the highest-scoring one, the same "read the structure yourself, the
// public API doesn't expose this" move the teacher's image extraction code
// makes via readRawStreamBytes.
package pdfreader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ctlin/chihlee-calendar/model"
)

// ReadPages opens data as a PDF and returns the decoded text of each page in
// pages (1-based, already validated and deduplicated by the caller). An
// empty pages slice means "all pages".
func ReadPages(data []byte, pages []uint32) ([]model.PageText, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, model.WrapErr(model.KindPDFLoad, fmt.Errorf("opening PDF: %w", err))
	}

	totalPages := r.NumPage()
	selected := pages
	if len(selected) == 0 {
		selected = make([]uint32, totalPages)
		for i := range selected {
			selected[i] = uint32(i + 1)
		}
	}

	whole := wholeDocumentPages(r, totalPages)

	out := make([]model.PageText, 0, len(selected))
	for _, pn := range selected {
		if pn < 1 || int(pn) > totalPages {
			continue
		}
		text, err := extractPage(r, int(pn), whole)
		if err != nil {
			return nil, model.WrapErr(model.KindPDFExtract, fmt.Errorf("page %d: %w", pn, err))
		}
		out = append(out, model.PageText{PageNumber: pn, Text: text})
	}
	return out, nil
}

// wholeDocumentPages splits the whole document's plain text on form-feed
// characters, which many PDF writers emit as page separators. It is used as
// candidate 1 only when the split yields exactly one chunk per page — a
// mismatch means the document doesn't use form feeds this way and the split
// is meaningless.
func wholeDocumentPages(r *pdf.Reader, totalPages int) []string {
	all, err := r.GetPlainText()
	if err != nil {
		return nil
	}
	buf := new(strings.Builder)
	if _, err := buf.ReadFrom(all); err != nil {
		return nil
	}
	chunks := strings.Split(buf.String(), "\f")
	if len(chunks) != totalPages {
		return nil
	}
	return chunks
}

// extractPage runs every available candidate for page pn and returns the
// highest-scoring one (spec.md §4.1). If every candidate scores below 80
// and pn is the first page, a final fallback re-derives it from the whole
// document's plain text taken as a single page, even when the document has
// more than one page and the earlier form-feed split didn't apply.
func extractPage(r *pdf.Reader, pn int, whole []string) (string, error) {
	page := r.Page(pn)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d is null", pn)
	}

	var candidates []string

	if whole != nil && pn-1 < len(whole) {
		candidates = append(candidates, whole[pn-1])
	} else {
		candidates = append(candidates, "")
	}

	candidates = append(candidates, contentStreamCandidate(r, page))

	if plain, err := page.GetPlainText(nil); err == nil {
		buf := new(strings.Builder)
		if _, err := buf.ReadFrom(plain); err == nil {
			candidates = append(candidates, buf.String())
		} else {
			candidates = append(candidates, "")
		}
	} else {
		candidates = append(candidates, "")
	}

	best := argmaxCandidate(candidates)
	if score(candidates[best]) >= 80 {
		return candidates[best], nil
	}

	if pn == 1 {
		if all, err := r.GetPlainText(); err == nil {
			buf := new(strings.Builder)
			if _, err := buf.ReadFrom(all); err == nil && score(buf.String()) > score(candidates[best]) {
				return buf.String(), nil
			}
		}
	}

	return candidates[best], nil
}

// contentStreamCandidate walks page pn's raw content stream bytes directly,
// resolving each Tf operator's font name against the page's own /Font
// resources to get a decoding hint (spec.md §4.1's candidate 2).
func contentStreamCandidate(r *pdf.Reader, page pdf.Page) string {
	content, err := contentBytes(page)
	if err != nil || len(content) == 0 {
		return ""
	}

	fonts := page.Resources().Key("Font")
	hint := func(resourceName string) string {
		return resolveFontHint(fonts, resourceName)
	}
	return contentWalk(content, hint)
}

// resolveFontHint reads a page's /Font/<name>/Encoding entry, following the
// teacher's lenient chaining idiom: each Key/Name call on a non-existent or
// wrong-kind Value returns its zero value rather than panicking, so a
// missing Encoding just yields an empty hint instead of needing an explicit
// existence check at each step.
func resolveFontHint(fonts pdf.Value, resourceName string) string {
	if fonts.IsNull() {
		return ""
	}
	font := fonts.Key(resourceName)
	enc := font.Key("Encoding")
	if name := enc.Name(); name != "" {
		return name
	}
	if base := enc.Key("BaseEncoding").Name(); base != "" {
		return base
	}
	return ""
}

// contentBytes reads the raw bytes of a page's /Contents entry, which may be
// a single stream or an array of streams (concatenated per the PDF spec).
func contentBytes(page pdf.Page) ([]byte, error) {
	contents := page.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Stream:
		return readStream(contents)
	case pdf.Array:
		var buf bytes.Buffer
		for i := 0; i < contents.Len(); i++ {
			b, err := readStream(contents.Index(i))
			if err != nil {
				continue
			}
			buf.Write(b)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("page has no readable /Contents")
	}
}

func readStream(v pdf.Value) ([]byte, error) {
	rdr := v.Reader()
	if rdr == nil {
		return nil, fmt.Errorf("stream has no reader")
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rdr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

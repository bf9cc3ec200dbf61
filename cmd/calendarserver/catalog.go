package main

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CatalogEntry pairs a ROC-year semester with the URL of its calendar PDF.
type CatalogEntry struct {
	Semester int
	PDFURL   string
}

// semesterInText pulls the first run of one to three digits (a ROC year in
// the 0..999 range) out of a catalog row's label, e.g. "114學年度行事曆" or
// "113-2 學期行事曆".
var semesterInText = regexp.MustCompile(`\d{1,3}`)

// FetchCatalog downloads catalogURL and parses every calendar-PDF link into
// a CatalogEntry. Candidate selectors are tried in order and the first one
// that yields any links wins, the same widening-selector strategy the
// crawler's product-listing parser uses.
func FetchCatalog(ctx context.Context, client *http.Client, catalogURL string) ([]CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, catalogURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching catalog: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog page: %w", err)
	}

	linkSelectors := []string{
		"a[href$='.pdf']",
		".calendar-list a",
		"table a",
		"a",
	}

	var links *goquery.Selection
	for _, sel := range linkSelectors {
		links = doc.Find(sel)
		if links.Length() > 0 {
			break
		}
	}

	seen := make(map[int]bool)
	var entries []CatalogEntry
	links.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(strings.ToLower(href), ".pdf") {
			return
		}
		label := strings.TrimSpace(a.Text())
		semester, ok := parseSemesterLabel(label)
		if !ok {
			semester, ok = parseSemesterLabel(href)
		}
		if !ok || seen[semester] {
			return
		}
		seen[semester] = true
		entries = append(entries, CatalogEntry{
			Semester: semester,
			PDFURL:   resolveCatalogURL(catalogURL, href),
		})
	})

	return entries, nil
}

func parseSemesterLabel(s string) (int, bool) {
	m := semesterInText.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n > 999 {
		return 0, false
	}
	return n, true
}

func resolveCatalogURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if idx := strings.Index(base, "://"); idx >= 0 {
		if slash := strings.Index(base[idx+3:], "/"); slash >= 0 {
			origin := base[:idx+3+slash]
			if strings.HasPrefix(href, "/") {
				return origin + href
			}
			return strings.TrimSuffix(base, "/") + "/" + href
		}
	}
	return href
}

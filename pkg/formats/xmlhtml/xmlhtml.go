// Package xmlhtml is the non-core XML/HTML wrapper spec.md §1 lists: it
// parses an HTML document with github.com/PuerkitoBio/goquery and pulls
// JSON candidates out of `<script type="application/json">`-shaped
// elements and table cells and returns each candidate's text; it does not
// repair or parse them, so callers run that text through
// pkg/extract/pkg/repair/pkg/jsonparse as the JSON core would a fenced block.
package xmlhtml

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// JSONScriptCandidates returns the text content of every <script> element
// whose type attribute contains "json" (application/json,
// application/ld+json, etc.).
func JSONScriptCandidates(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	var out []string
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		typ, _ := sel.Attr("type")
		if strings.Contains(strings.ToLower(typ), "json") {
			out = append(out, strings.TrimSpace(sel.Text()))
		}
	})
	return out, nil
}

// TableCellCandidates returns the trimmed text of every <td>/<th> cell,
// for documents that embed structured fragments in table markup instead
// of a script tag.
func TableCellCandidates(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	var out []string
	doc.Find("td, th").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			out = append(out, text)
		}
	})
	return out, nil
}

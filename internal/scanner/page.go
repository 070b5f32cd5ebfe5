package scanner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractPageInfo pulls basic metadata out of the page markup. Returns nil
// when the document carries none of the known fields.
func ExtractPageInfo(htmlText string) *PageInfo {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil
	}

	info := &PageInfo{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		info.Description = strings.TrimSpace(desc)
	}
	if gen, ok := doc.Find(`meta[name="generator"]`).Attr("content"); ok {
		info.Generator = strings.TrimSpace(gen)
	}
	if canonical, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		info.Canonical = strings.TrimSpace(canonical)
	}

	if info.Title == "" && info.Description == "" && info.Generator == "" && info.Canonical == "" {
		return nil
	}

	return info
}

package parser

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"springer_downloader/internal/models"
)

// resultScope returns <main> when the page has one, the whole document otherwise.
func resultScope(doc *goquery.Document) *goquery.Selection {
	if main := doc.Find("main").First(); main.Length() > 0 {
		return main
	}
	return doc.Selection
}

// ParseResultPage extracts result-title links and the "next page" marker from a search results page.
// Links are resolved against pageURL.
func ParseResultPage(body io.Reader, pageURL string) (models.ResultPage, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return models.ResultPage{}, fmt.Errorf("read result page HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return models.ResultPage{}, fmt.Errorf("parse page url %q: %w", pageURL, err)
	}

	page := models.ResultPage{URL: pageURL}
	scope := resultScope(doc)

	scope.Find("a.title").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		page.Results = append(page.Results, models.SearchResult{
			Title: strings.TrimSpace(a.Text()),
			URL:   base.ResolveReference(ref).String(),
		})
	})

	page.HasNext = scope.Find(`img[alt="next"]`).Length() > 0
	return page, nil
}

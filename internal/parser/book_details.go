package parser

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"springer_downloader/internal/models"
)

var (
	ErrAuthorNotFound = errors.New("author not found on book page")
	ErrTitleNotFound  = errors.New("title not found on book page")
)

const formatTitleTemplate = "Download this book in %s format"

// FormatLinkTitle is the title attribute of the download anchor for f, e.g. "Download this book in PDF format".
func FormatLinkTitle(f models.Format) string {
	return fmt.Sprintf(formatTitleTemplate, strings.ToUpper(string(f)))
}

// DetectFormats reports which of models.AllFormats the book page offers, in AllFormats order.
func DetectFormats(doc *goquery.Document) []models.Format {
	var formats []models.Format
	for _, f := range models.AllFormats {
		if doc.Find(fmt.Sprintf("a[title=%q]", FormatLinkTitle(f))).Length() > 0 {
			formats = append(formats, f)
		}
	}
	return formats
}

// ParseBookPage parses a book detail page. A missing or blank author or title is an error.
func ParseBookPage(body io.Reader, bookURL string) (models.BookPage, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return models.BookPage{}, fmt.Errorf("read book page HTML: %w", err)
	}

	book := models.BookPage{
		URL:  bookURL,
		ISBN: ISBNFromURL(bookURL),
	}

	book.Author = strings.TrimSpace(strings.ReplaceAll(doc.Find(".authors__name").First().Text(), "\u00a0", " "))
	if book.Author == "" {
		return models.BookPage{}, fmt.Errorf("%s: %w", bookURL, ErrAuthorNotFound)
	}

	// Only the first page-title block counts; its heading is the book title.
	book.Title = strings.TrimSpace(doc.Find("div.page-title").First().Find("h1").First().Text())
	if book.Title == "" {
		return models.BookPage{}, fmt.Errorf("%s: %w", bookURL, ErrTitleNotFound)
	}

	book.Formats = DetectFormats(doc)
	return book, nil
}

// ISBNFromURL returns the last path segment of a book URL,
// e.g. ".../book/10.1007/978-3-030-12345-6" -> "978-3-030-12345-6".
func ISBNFromURL(bookURL string) string {
	p := bookURL
	if u, err := url.Parse(bookURL); err == nil {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

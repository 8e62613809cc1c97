package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"springer_downloader/internal/models"
)

const resultPageHTML = `<html><body>
<nav><a class="title" href="/book/ignored">Menu link</a></nav>
<main>
  <ol>
    <li><a class="title" href="/book/10.1007/978-3-030-00001-1">First Book</a></li>
    <li><a class="title" href="book/10.1007/978-3-030-00002-2"> Second Book </a></li>
    <li><a class="title" href="">Broken</a></li>
    <li><a href="/book/not-a-title">Not a title</a></li>
  </ol>
  <a class="next" href="/search/page/2"><img alt="next" src="/arrow.png"></a>
</main>
</body></html>`

func TestParseResultPage(t *testing.T) {
	page, err := ParseResultPage(strings.NewReader(resultPageHTML), "https://link.springer.com/search/page/1?q=x")
	require.NoError(t, err)

	require.Equal(t, []models.SearchResult{
		{Title: "First Book", URL: "https://link.springer.com/book/10.1007/978-3-030-00001-1"},
		{Title: "Second Book", URL: "https://link.springer.com/search/page/book/10.1007/978-3-030-00002-2"},
	}, page.Results)
	require.True(t, page.HasNext)
}

func TestParseResultPageLastPage(t *testing.T) {
	html := `<html><body><main><a class="title" href="/book/x">X</a></main>
<footer><img alt="next"></footer></body></html>`

	page, err := ParseResultPage(strings.NewReader(html), "https://link.springer.com/search/page/9")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.False(t, page.HasNext, "next marker outside <main> must be ignored")
}

func TestParseResultPageWithoutMain(t *testing.T) {
	html := `<html><body><a class="title" href="https://example.org/book/1">One</a><img alt="next"></body></html>`

	page, err := ParseResultPage(strings.NewReader(html), "https://link.springer.com/search/page/1")
	require.NoError(t, err)
	require.Equal(t, "https://example.org/book/1", page.Results[0].URL)
	require.True(t, page.HasNext)
}

func bookHTML(author, title string, formats ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body>`)
	if author != "" {
		b.WriteString(`<ul><li><span class="authors__name">` + author + `</span></li></ul>`)
	}
	if title != "" {
		b.WriteString(`<div class="page-title"><h1>` + title + `</h1></div>`)
	}
	for _, f := range formats {
		b.WriteString(`<a title="Download this book in ` + f + ` format" href="#">` + f + `</a>`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func TestParseBookPage(t *testing.T) {
	html := bookHTML("Jane D'Oe", " Intro, to/C\\S ", "PDF", "EPUB")

	book, err := ParseBookPage(strings.NewReader(html), "https://link.springer.com/book/10.1007/978-3-030-00001-1")
	require.NoError(t, err)

	require.Equal(t, "Jane D'Oe", book.Author)
	require.Equal(t, `Intro, to/C\S`, book.Title)
	require.Equal(t, "978-3-030-00001-1", book.ISBN)
	require.Equal(t, []models.Format{models.FormatPDF, models.FormatEPUB}, book.Formats)
}

func TestDetectFormatsPDFOnly(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bookHTML("A B", "T", "PDF")))
	require.NoError(t, err)

	require.Equal(t, []models.Format{models.FormatPDF}, DetectFormats(doc))
}

func TestDetectFormatsIgnoresLowercaseLabel(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bookHTML("A B", "T", "epub")))
	require.NoError(t, err)

	require.Empty(t, DetectFormats(doc))
}

func TestParseBookPageMissingFields(t *testing.T) {
	_, err := ParseBookPage(strings.NewReader(bookHTML("", "Title", "PDF")), "https://x/book/1")
	require.True(t, errors.Is(err, ErrAuthorNotFound))

	_, err = ParseBookPage(strings.NewReader(bookHTML("A B", "", "PDF")), "https://x/book/1")
	require.True(t, errors.Is(err, ErrTitleNotFound))
}

func TestISBNFromURL(t *testing.T) {
	require.Equal(t, "978-1", ISBNFromURL("https://link.springer.com/book/10.1007/978-1"))
	require.Equal(t, "978-1", ISBNFromURL("https://link.springer.com/book/10.1007/978-1/"))
	require.Equal(t, "978-1", ISBNFromURL("https://link.springer.com/book/10.1007/978-1?x=1"))
}

func TestFormatLinkTitle(t *testing.T) {
	require.Equal(t, "Download this book in EPUB format", FormatLinkTitle(models.FormatEPUB))
}

func TestParseBookPageBlankAuthor(t *testing.T) {
	html := `<html><body><span class="authors__name">  &nbsp; </span>
<div class="page-title"><h1>T</h1></div></body></html>`

	_, err := ParseBookPage(strings.NewReader(html), "https://x/book/1")
	require.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestParseBookPageTitleFromFirstBlockOnly(t *testing.T) {
	html := `<html><body><span class="authors__name">A B</span>
<div class="page-title"><h2>Subtitle</h2></div>
<div class="page-title"><h1>Other</h1></div></body></html>`

	_, err := ParseBookPage(strings.NewReader(html), "https://x/book/1")
	require.ErrorIs(t, err, ErrTitleNotFound)
}

func TestDetectFormatsIgnoresOtherTitles(t *testing.T) {
	html := `<html><body>
<a title="Download this book in PDF format (preview)" href="#">x</a>
<a title="Download this chapter in EPUB format" href="#">y</a>
<a title="Download this book in EPUB format" href="#">z</a>
</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	require.Equal(t, []models.Format{models.FormatEPUB}, DetectFormats(doc))
}

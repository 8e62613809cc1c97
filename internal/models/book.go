package models

// Format is a downloadable file type offered on a book page.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatEPUB Format = "epub"
)

// AllFormats is the fixed set of formats the scraper looks for, in detection order.
var AllFormats = []Format{FormatPDF, FormatEPUB}

// SearchResult is a single result-title link on a search results page.
type SearchResult struct {
	Title string
	URL   string
}

// ResultPage is one parsed page of paginated search results.
type ResultPage struct {
	Number  int
	URL     string
	Results []SearchResult
	HasNext bool
}

// BookPage holds the fields extracted from a book detail page.
type BookPage struct {
	URL     string
	ISBN    string
	Author  string
	Title   string
	Formats []Format
}

// DownloadTarget is a file to be fetched for a book.
type DownloadTarget struct {
	Format   Format
	Filename string
	URL      string
}

// Stats summarizes a download run.
type Stats struct {
	Pages      int
	Books      int
	Downloaded int
	Skipped    int
}

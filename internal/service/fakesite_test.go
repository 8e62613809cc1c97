package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeBook struct {
	author  string
	title   string
	formats []string
}

// fakeSite serves a tiny Springer-like site: search pages, book pages and files.
type fakeSite struct {
	t       *testing.T
	server  *httptest.Server
	pages   [][]string // book ISBNs per result page, pages[0] is page 1
	books   map[string]fakeBook
	mu      sync.Mutex
	hits    map[string]int
	queries []string
}

func newFakeSite(t *testing.T, pages [][]string, books map[string]fakeBook) *fakeSite {
	t.Helper()

	site := &fakeSite{t: t, pages: pages, books: books, hits: make(map[string]int)}
	site.server = httptest.NewServer(http.HandlerFunc(site.serve))
	t.Cleanup(site.server.Close)
	return site
}

func (s *fakeSite) URL() string {
	return s.server.URL + "/"
}

func (s *fakeSite) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *fakeSite) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.EscapedPath()

	s.mu.Lock()
	s.hits[path]++
	if strings.HasPrefix(path, "/search/page/") {
		s.queries = append(s.queries, r.URL.RawQuery)
	}
	s.mu.Unlock()

	switch {
	case strings.HasPrefix(path, "/search/page/"):
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(path, "/search/page/"), "%d", &n); err != nil || n < 1 || n > len(s.pages) {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, s.resultPage(n))

	case strings.HasPrefix(path, "/book/10.1007/"):
		isbn := strings.TrimPrefix(path, "/book/10.1007/")
		book, ok := s.books[isbn]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, bookPage(book))

	case strings.HasPrefix(path, "/content/pdf/10.1007%2F"):
		isbn := strings.TrimSuffix(strings.TrimPrefix(path, "/content/pdf/10.1007%2F"), ".pdf")
		fmt.Fprintf(w, "PDF-%s", isbn)

	case strings.HasPrefix(path, "/download/epub/10.1007%2F"):
		isbn := strings.TrimSuffix(strings.TrimPrefix(path, "/download/epub/10.1007%2F"), ".epub")
		fmt.Fprintf(w, "EPUB-%s", isbn)

	default:
		http.NotFound(w, r)
	}
}

func (s *fakeSite) resultPage(n int) string {
	var b strings.Builder
	b.WriteString("<html><body><main><ol>")
	for _, isbn := range s.pages[n-1] {
		fmt.Fprintf(&b, `<li><a class="title" href="/book/10.1007/%s">%s</a></li>`, isbn, s.books[isbn].title)
	}
	b.WriteString("</ol>")
	if n < len(s.pages) {
		fmt.Fprintf(&b, `<a href="/search/page/%d"><img alt="next" src="/next.png"></a>`, n+1)
	}
	b.WriteString("</main></body></html>")
	return b.String()
}

func bookPage(book fakeBook) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if book.author != "" {
		fmt.Fprintf(&b, `<span class="authors__name">%s</span>`, book.author)
	}
	fmt.Fprintf(&b, `<div class="page-title"><h1>%s</h1></div>`, book.title)
	for _, f := range book.formats {
		fmt.Fprintf(&b, `<a title="Download this book in %s format" href="#">%s</a>`, f, f)
	}
	b.WriteString("</body></html>")
	return b.String()
}

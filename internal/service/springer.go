package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"springer_downloader/internal/models"
	"springer_downloader/internal/naming"
	"springer_downloader/internal/parser"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrUnknownFormat    = errors.New("unknown format")
)

// doiPrefix is the Springer DOI registrant prefix, with the slash already escaped.
const doiPrefix = "10.1007%2F"

type SpringerClient struct {
	httpClient  *http.Client
	baseURL     string
	querySuffix string
	logger      *zap.Logger
}

// NewSpringerClient builds a client for the site at baseURL. querySuffix is appended
// verbatim to every search page URL, so it normally starts with "?".
func NewSpringerClient(client *http.Client, baseURL string, querySuffix string, logger *zap.Logger) *SpringerClient {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &SpringerClient{
		httpClient:  client,
		baseURL:     baseURL,
		querySuffix: querySuffix,
		logger:      logger,
	}
}

// SearchPageURL returns the URL of result page n: {base}search/page/{n}{suffix}.
func (s *SpringerClient) SearchPageURL(n int) string {
	return s.baseURL + "search/page/" + strconv.Itoa(n) + s.querySuffix
}

// FetchResultPage downloads and parses result page n.
func (s *SpringerClient) FetchResultPage(ctx context.Context, n int) (models.ResultPage, error) {
	pageURL := s.SearchPageURL(n)

	resp, err := s.get(ctx, pageURL)
	if err != nil {
		return models.ResultPage{}, err
	}
	defer resp.Body.Close()

	page, err := parser.ParseResultPage(resp.Body, pageURL)
	if err != nil {
		return models.ResultPage{}, fmt.Errorf("page %d: %w", n, err)
	}
	page.Number = n
	return page, nil
}

// GetBookPage fetches and parses a book detail page.
func (s *SpringerClient) GetBookPage(ctx context.Context, bookURL string) (models.BookPage, error) {
	resp, err := s.get(ctx, bookURL)
	if err != nil {
		return models.BookPage{}, err
	}
	defer resp.Body.Close()

	return parser.ParseBookPage(resp.Body, bookURL)
}

// Open starts a download. The returned body MUST be closed by the caller.
func (s *SpringerClient) Open(ctx context.Context, downloadURL string) (io.ReadCloser, error) {
	resp, err := s.get(ctx, downloadURL)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Target builds the download target of one format of a book.
func (s *SpringerClient) Target(book models.BookPage, f models.Format) (models.DownloadTarget, error) {
	downloadURL, err := DownloadURL(s.baseURL, f, book.ISBN)
	if err != nil {
		return models.DownloadTarget{}, err
	}

	return models.DownloadTarget{
		Format:   f,
		Filename: naming.Filename(book.Author, book.Title, f),
		URL:      downloadURL,
	}, nil
}

// DownloadURL maps a format to its file URL on the site.
func DownloadURL(base string, f models.Format, isbn string) (string, error) {
	if isbn == "" {
		return "", fmt.Errorf("empty isbn for %s download", f)
	}

	switch f {
	case models.FormatPDF:
		return base + "content/pdf/" + doiPrefix + isbn + ".pdf", nil
	case models.FormatEPUB:
		return base + "download/epub/" + doiPrefix + isbn + ".epub", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func (s *SpringerClient) get(ctx context.Context, targetURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", targetURL, err)
	}

	s.logger.Debug("GET", zap.String("url", targetURL))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", targetURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w: %s", targetURL, ErrUnexpectedStatus, resp.Status)
	}

	return resp, nil
}

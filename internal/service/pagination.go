package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"springer_downloader/internal/models"
)

// PageAction is called once for every fetched result page.
type PageAction func(ctx context.Context, page models.ResultPage) error

// ForEachPage walks the search results from startPage until a page without a
// "next" marker has been processed. It returns all parsed pages, mostly for debugging.
// The first error stops the walk.
func (s *SpringerClient) ForEachPage(ctx context.Context, startPage int, action PageAction) ([]models.ResultPage, error) {
	if startPage < 1 {
		startPage = 1
	}

	var pages []models.ResultPage
	for n := startPage; ; n++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		s.logger.Info("Processing page", zap.Int("page", n))

		page, err := s.FetchResultPage(ctx, n)
		if err != nil {
			return pages, err
		}
		pages = append(pages, page)

		if err := action(ctx, page); err != nil {
			return pages, fmt.Errorf("page %d: %w", n, err)
		}

		if !page.HasNext {
			return pages, nil
		}
	}
}

package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"springer_downloader/internal/models"
	"springer_downloader/internal/notify"
	"springer_downloader/internal/storage"
)

// Downloader walks every result page and saves each offered format of every book into dir.
type Downloader struct {
	client   *SpringerClient
	dir      string
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewDownloader(client *SpringerClient, dir string, notifier notify.Notifier, logger *zap.Logger) *Downloader {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Downloader{
		client:   client,
		dir:      dir,
		notifier: notifier,
		logger:   logger,
	}
}

// Run processes result pages starting at startPage. It stops at the first error
// and returns the stats gathered so far.
func (d *Downloader) Run(ctx context.Context, startPage int) (models.Stats, error) {
	var stats models.Stats

	_, err := d.client.ForEachPage(ctx, startPage, func(ctx context.Context, page models.ResultPage) error {
		stats.Pages++
		for _, result := range page.Results {
			if err := d.DownloadBook(ctx, result.URL, &stats); err != nil {
				return err
			}
		}

		d.logger.Info("Page done",
			zap.Int("page", page.Number),
			zap.Int("results", len(page.Results)),
			zap.Bool("hasNext", page.HasNext),
		)
		return nil
	})
	if err != nil {
		return stats, err
	}

	d.logger.Info("Run finished",
		zap.Int("pages", stats.Pages),
		zap.Int("books", stats.Books),
		zap.Int("downloaded", stats.Downloaded),
		zap.Int("skipped", stats.Skipped),
	)

	if err := d.notifier.RunFinished(ctx, stats); err != nil {
		d.logger.Warn("Notification failed", zap.Error(err))
	}

	return stats, nil
}

// DownloadBook fetches one book page and saves every format it offers.
// stats may be nil.
func (d *Downloader) DownloadBook(ctx context.Context, bookURL string, stats *models.Stats) error {
	if stats == nil {
		stats = &models.Stats{}
	}

	book, err := d.client.GetBookPage(ctx, bookURL)
	if err != nil {
		return err
	}
	stats.Books++

	if len(book.Formats) == 0 {
		d.logger.Info("No downloadable formats", zap.String("url", bookURL), zap.String("title", book.Title))
		return nil
	}

	for _, f := range book.Formats {
		target, err := d.client.Target(book, f)
		if err != nil {
			return fmt.Errorf("%s: %w", bookURL, err)
		}

		saved, err := storage.FetchFile(ctx, d.dir, target.Filename, func(ctx context.Context) (io.ReadCloser, error) {
			return d.client.Open(ctx, target.URL)
		})
		if err != nil {
			return fmt.Errorf("download %s: %w", target.Filename, err)
		}

		if saved.Skipped {
			stats.Skipped++
			d.logger.Info("File exists, skipping", zap.String("path", saved.Path))
			continue
		}

		stats.Downloaded++
		d.logger.Info("File saved",
			zap.String("path", saved.Path),
			zap.String("format", string(f)),
			zap.Float64("sizeMB", float64(saved.SizeBytes)/1024/1024),
		)

		if err := d.notifier.BookSaved(ctx, book, target); err != nil {
			d.logger.Warn("Notification failed", zap.String("file", target.Filename), zap.Error(err))
		}
	}

	return nil
}

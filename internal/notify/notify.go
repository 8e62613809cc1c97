// Package notify reports download progress to an external channel.
package notify

import (
	"context"

	"springer_downloader/internal/models"
)

type Notifier interface {
	BookSaved(ctx context.Context, book models.BookPage, target models.DownloadTarget) error
	RunFinished(ctx context.Context, stats models.Stats) error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) BookSaved(context.Context, models.BookPage, models.DownloadTarget) error { return nil }

func (Nop) RunFinished(context.Context, models.Stats) error { return nil }

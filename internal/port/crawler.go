package port

import (
	"context"

	"localsearch/internal/domain"
)

// Crawler walks root directories and yields readable document contents.
// Per-file failures and missing roots come back as warnings; the crawl as a
// whole only fails on context cancellation.
type Crawler interface {
	Crawl(ctx context.Context, roots []string) ([]domain.RawDocument, []domain.Warning, error)
}

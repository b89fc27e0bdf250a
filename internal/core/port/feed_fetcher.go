package port

import (
	"context"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
)

// FeedFetcherPort загружает и разбирает один синдицированный фид.
type FeedFetcherPort interface {
	FetchEntries(ctx context.Context, feedURL string) ([]domain.FeedEntry, error)
}

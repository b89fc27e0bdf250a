package usecase

import (
	"context"
	"fmt"

	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
)

// IngestFeedsUseCase — фидовая ветка пайплайна: записи синдицированного
// фида минуют frontier и пул обхода деталей и идут сразу в нормализатор.
// Доставка — через общий диспатчер, отдельного пути нет.
type IngestFeedsUseCase struct {
	feedFetcher port.FeedFetcherPort
}

// NewIngestFeedsUseCase создает новый экземпляр use case
func NewIngestFeedsUseCase(fetcher port.FeedFetcherPort) *IngestFeedsUseCase {
	return &IngestFeedsUseCase{feedFetcher: fetcher}
}

// Execute загружает фид и превращает записи в кандидатов.
// Ссылка записи становится url; записи без ссылки пропускаются.
// Время публикации фида — надежная метка источника, идет в postedAt.
func (uc *IngestFeedsUseCase) Execute(ctx context.Context, source domain.Source) ([]domain.ListingCandidate, error) {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{
		"use_case": "IngestFeeds",
		"source":   source.Name,
	})

	entries, err := uc.feedFetcher.FetchEntries(ctx, source.BaseURL)
	if err != nil {
		ucLogger.Error("Feed fetch failed", err, port.Fields{"feed_url": source.BaseURL})
		return nil, fmt.Errorf("ingest feeds: fetch '%s': %w", source.Name, err)
	}

	candidates := make([]domain.ListingCandidate, 0, len(entries))
	for _, entry := range entries {
		if entry.Link == "" {
			continue
		}

		extracted := domain.ExtractedFields{}
		if entry.Title != "" {
			title := entry.Title
			extracted.Title = &title
		}
		if entry.Summary != "" {
			summary := entry.Summary
			extracted.DescriptionText = &summary
		}

		candidates = append(candidates, NormalizeCandidate(extracted, source, entry.Link, entry.PublishedAt))
	}

	ucLogger.Info("Feed processed", port.Fields{
		"entries":    len(entries),
		"candidates": len(candidates),
	})
	return candidates, nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/stijnvandrunen98/huurkans/internal/constants"
	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
)

// DiscoverLinksUseCase обходит пагинацию источника и собирает множество
// уникальных ссылок на детальные страницы (URL Frontier).
type DiscoverLinksUseCase struct {
	pageFetcher   port.PageFetcherPort
	linkExtractor port.LinkExtractorPort
	pageDelay     time.Duration
}

// NewDiscoverLinksUseCase создает новый экземпляр use case
func NewDiscoverLinksUseCase(
	fetcher port.PageFetcherPort,
	linkExtractor port.LinkExtractorPort,
) *DiscoverLinksUseCase {
	return &DiscoverLinksUseCase{
		pageFetcher:   fetcher,
		linkExtractor: linkExtractor,
		pageDelay:     constants.ListPageDelay,
	}
}

// Execute собирает ссылки постранично, пока не исчерпаны MaxListPages,
// не достигнут MaxDetailURLs, страница не перестала давать новые ссылки
// или не истек дедлайн. Ошибка загрузки страницы списка не фатальна:
// пагинация этого источника останавливается, уже найденное сохраняется.
func (uc *DiscoverLinksUseCase) Execute(ctx context.Context, source domain.Source, clock *domain.RunClock) ([]string, error) {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{
		"use_case": "DiscoverLinks",
		"source":   source.Name,
	})

	seen := make(map[string]struct{})
	var discovered []string
	var firstErr error

	for page := 1; page <= source.MaxListPages; page++ {
		select {
		case <-ctx.Done():
			return truncate(discovered, source.MaxDetailURLs), ctx.Err()
		default:
		}

		if clock.Expired() {
			ucLogger.Warn("Global deadline reached, stopping pagination", port.Fields{"page": page})
			break
		}

		pageURL := source.BaseURL
		if page > 1 {
			pageURL = fmt.Sprintf(constants.PaginationSuffixFormat, source.BaseURL, page)
		}

		pageLogger := ucLogger.WithFields(port.Fields{"page": page, "page_url": pageURL})
		pageLogger.Debug("Fetching list page", nil)

		content, err := uc.pageFetcher.FetchPage(ctx, pageURL)
		if err != nil {
			pageLogger.Error("List page fetch failed, stopping pagination for this source", err, nil)
			firstErr = fmt.Errorf("discover: list page %d of '%s': %w", page, source.Name, err)
			break
		}

		links, err := uc.linkExtractor.ExtractDetailLinks(content, source)
		if err != nil {
			pageLogger.Error("List page parse failed, stopping pagination for this source", err, nil)
			firstErr = fmt.Errorf("discover: parse page %d of '%s': %w", page, source.Name, err)
			break
		}

		newOnPage := 0
		for _, link := range links {
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			discovered = append(discovered, link)
			newOnPage++
		}

		pageLogger.Debug("List page processed", port.Fields{
			"links_on_page": len(links),
			"new_links":     newOnPage,
			"total_unique":  len(discovered),
		})

		// пустая страница — сигнал конца пагинации
		if newOnPage == 0 {
			pageLogger.Debug("No new links on page. Stopping.", nil)
			break
		}

		if len(discovered) >= source.MaxDetailURLs {
			pageLogger.Debug("Detail URL cap reached. Stopping.", port.Fields{"cap": source.MaxDetailURLs})
			break
		}

		if page < source.MaxListPages {
			sleepWithContext(ctx, uc.pageDelay)
		}
	}

	result := truncate(discovered, source.MaxDetailURLs)
	ucLogger.Info("Discovery finished", port.Fields{"discovered": len(result)})
	return result, firstErr
}

func truncate(links []string, max int) []string {
	if max > 0 && len(links) > max {
		return links[:max]
	}
	return links
}

// sleepWithContext ждет delay, но просыпается раньше при отмене контекста.
func sleepWithContext(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

package usecase

import (
	"context"
	"sync"

	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
)

// crawlOutcome — результат обработки одного URL: либо кандидат, либо неудача.
type crawlOutcome struct {
	candidate *domain.ListingCandidate
	failure   *domain.FetchFailure
}

// CrawlDetailsUseCase обрабатывает найденные ссылки пулом воркеров
// ограниченного размера: загрузка детальной страницы, извлечение полей,
// нормализация. Ретраев нет; неудача одного URL изолирована —
// одна плохая страница никогда не роняет запуск.
type CrawlDetailsUseCase struct {
	pageFetcher port.PageFetcherPort
	extractor   port.ListingExtractorPort
}

// NewCrawlDetailsUseCase создает новый экземпляр use case
func NewCrawlDetailsUseCase(
	fetcher port.PageFetcherPort,
	extractor port.ListingExtractorPort,
) *CrawlDetailsUseCase {
	return &CrawlDetailsUseCase{
		pageFetcher: fetcher,
		extractor:   extractor,
	}
}

// Execute прогоняет все URL через пул. Одновременно в полете не больше
// source.FetchConcurrency запросов; слоты выдаются по мере освобождения.
// После истечения дедлайна новые URL не принимаются, начатые дорабатывают.
func (uc *CrawlDetailsUseCase) Execute(ctx context.Context, source domain.Source, urls []string, clock *domain.RunClock) ([]domain.ListingCandidate, []domain.FetchFailure) {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{
		"use_case": "CrawlDetails",
		"source":   source.Name,
	})

	concurrency := source.FetchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	semaphore := make(chan struct{}, concurrency)
	outcomes := make(chan crawlOutcome, len(urls))
	var wg sync.WaitGroup

	admitted := 0
	for _, pageURL := range urls {
		if clock.Expired() {
			ucLogger.Warn("Global deadline reached, not admitting remaining URLs", port.Fields{
				"admitted":  admitted,
				"remaining": len(urls) - admitted,
			})
			break
		}

		// select при свободном слоте и отмененном контексте выбирает ветку
		// псевдослучайно; явная проверка делает остановку детерминированной
		if ctx.Err() != nil {
			ucLogger.Warn("Context cancelled, not admitting remaining URLs", nil)
			break
		}

		select {
		case <-ctx.Done():
			ucLogger.Warn("Context cancelled, not admitting remaining URLs", nil)
		case semaphore <- struct{}{}:
			admitted++
			wg.Add(1)
			go func(u string) {
				defer wg.Done()
				defer func() { <-semaphore }()
				outcomes <- uc.processOne(ctx, source, u)
			}(pageURL)
			continue
		}
		break
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var candidates []domain.ListingCandidate
	var failures []domain.FetchFailure
	for outcome := range outcomes {
		if outcome.candidate != nil {
			candidates = append(candidates, *outcome.candidate)
		}
		if outcome.failure != nil {
			failures = append(failures, *outcome.failure)
		}
	}

	ucLogger.Info("Crawl finished", port.Fields{
		"admitted": admitted,
		"ok":       len(candidates),
		"failed":   len(failures),
	})
	return candidates, failures
}

// processOne обрабатывает один URL. Любой сбой на любом шаге превращается
// в FetchFailure, а не в ошибку пайплайна.
func (uc *CrawlDetailsUseCase) processOne(ctx context.Context, source domain.Source, pageURL string) crawlOutcome {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CrawlDetails(worker)",
		"url":       pageURL,
	})

	content, err := uc.pageFetcher.FetchPage(ctx, pageURL)
	if err != nil {
		logger.Warn("Detail fetch failed, skipping URL", port.Fields{"error": err.Error()})
		return crawlOutcome{failure: &domain.FetchFailure{URL: pageURL, Reason: err.Error()}}
	}

	extracted := uc.extractor.Extract(content)
	candidate := NormalizeCandidate(extracted, source, pageURL, nil)

	logger.Debug("Detail page processed", port.Fields{
		"has_title": candidate.Title != nil,
		"has_price": candidate.Price != nil,
	})
	return crawlOutcome{candidate: &candidate}
}

package usecase

import (
	"context"
	"time"

	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
	usecases_port "github.com/stijnvandrunen98/huurkans/internal/core/port/usecases"

	"github.com/google/uuid"
)

// RunPipelineUseCase — координатор одного запуска: для каждого источника
// discovery -> пул обхода -> нормализация, затем общая доставка батчами.
// Жесткий wall-clock дедлайн проверяется перед каждой новой единицей работы;
// уже начатые запросы дорабатывают, уже произведенные кандидаты доставляются
// в любом случае. Это гарантия завершения за ограниченное время,
// а не оптимизация: пайплайн живет в time-boxed окружении.
type RunPipelineUseCase struct {
	sources    []domain.Source
	discoverUC usecases_port.DiscoverLinksPort
	crawlUC    usecases_port.CrawlDetailsPort
	feedsUC    usecases_port.IngestFeedsPort
	dispatchUC usecases_port.DispatchBatchesPort
	deadline   time.Duration
}

// NewRunPipelineUseCase создает новый экземпляр use case
func NewRunPipelineUseCase(
	sources []domain.Source,
	discoverUC usecases_port.DiscoverLinksPort,
	crawlUC usecases_port.CrawlDetailsPort,
	feedsUC usecases_port.IngestFeedsPort,
	dispatchUC usecases_port.DispatchBatchesPort,
	deadline time.Duration,
) *RunPipelineUseCase {
	return &RunPipelineUseCase{
		sources:    sources,
		discoverUC: discoverUC,
		crawlUC:    crawlUC,
		feedsUC:    feedsUC,
		dispatchUC: dispatchUC,
		deadline:   deadline,
	}
}

// Execute выполняет один сквозной запуск и возвращает сводку.
// Все сбои ниже координатора уже превращены в счетчики и записи лога;
// сюда они доходят только как числа и первые диагностические сообщения.
func (uc *RunPipelineUseCase) Execute(ctx context.Context) domain.RunSummary {
	runID := uuid.New().String()

	baseLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RunPipeline",
		"run_id":   runID,
	})
	runCtx := contextkeys.ContextWithLogger(ctx, baseLogger)

	clock := domain.NewRunClock(uc.deadline)
	summary := domain.RunSummary{RunID: runID}

	baseLogger.Info("Run started", port.Fields{
		"sources":  len(uc.sources),
		"deadline": uc.deadline.String(),
	})

	var produced []domain.ListingCandidate

	for _, source := range uc.sources {
		if clock.Expired() {
			baseLogger.Warn("Global deadline reached, skipping remaining sources", port.Fields{"source": source.Name})
			break
		}
		if ctx.Err() != nil {
			baseLogger.Warn("Context cancelled, skipping remaining sources", nil)
			break
		}

		sourceLogger := baseLogger.WithFields(port.Fields{"source": source.Name, "kind": string(source.Kind)})
		sourceCtx := contextkeys.ContextWithLogger(runCtx, sourceLogger)

		switch source.Kind {
		case domain.SourceKindFeed:
			candidates, err := uc.feedsUC.Execute(sourceCtx, source)
			if err != nil {
				summary.NoteDiscoveryError(err)
			}
			summary.Discovered += len(candidates)
			summary.ScrapedOK += len(candidates)
			produced = append(produced, candidates...)

		case domain.SourceKindPaginatedSite:
			links, err := uc.discoverUC.Execute(sourceCtx, source, clock)
			if err != nil {
				summary.NoteDiscoveryError(err)
			}
			summary.Discovered += len(links)

			candidates, failures := uc.crawlUC.Execute(sourceCtx, source, links, clock)
			summary.ScrapedOK += len(candidates)
			summary.ScrapeFailed += len(failures)
			for _, failure := range failures {
				summary.NoteScrapeError(failure.Reason)
			}
			produced = append(produced, candidates...)

		default:
			sourceLogger.Warn("Unknown source kind, skipping", nil)
		}
	}

	// Доставляем всё произведенное, даже если дедлайн уже истек
	results := uc.dispatchUC.Execute(runCtx, produced)
	for _, result := range results {
		summary.DeliveredOK += result.Accepted
		summary.DeliveryFailed += result.Rejected
		summary.NoteDeliveryError(result.FirstError)
	}

	summary.Elapsed = clock.Elapsed()

	baseLogger.Info("Run finished", port.Fields{
		"discovered":      summary.Discovered,
		"scraped_ok":      summary.ScrapedOK,
		"scrape_failed":   summary.ScrapeFailed,
		"delivered_ok":    summary.DeliveredOK,
		"delivery_failed": summary.DeliveryFailed,
		"degraded":        summary.Degraded(),
		"elapsed":         summary.Elapsed.String(),
	})
	return summary
}

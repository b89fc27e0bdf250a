package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/stijnvandrunen98/huurkans/internal/adapters/extractor"
	"github.com/stijnvandrunen98/huurkans/internal/adapters/feedfetcher"
	"github.com/stijnvandrunen98/huurkans/internal/adapters/htmlfetcher"
	"github.com/stijnvandrunen98/huurkans/internal/adapters/ingestclient"
	logger_adapter "github.com/stijnvandrunen98/huurkans/internal/adapters/logger"
	"github.com/stijnvandrunen98/huurkans/internal/configs"
	"github.com/stijnvandrunen98/huurkans/internal/constants"
	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
	usecases_port "github.com/stijnvandrunen98/huurkans/internal/core/port/usecases"
	"github.com/stijnvandrunen98/huurkans/internal/core/usecase"
	"github.com/stijnvandrunen98/huurkans/pkg/fluentlogger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	pipelineUC usecases_port.RunPipelinePort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	pageFetcher, err := htmlfetcher.NewHTMLFetcherAdapter(htmlfetcher.Config{
		Timeout:     appConfig.Crawl.FetchTimeout,
		Parallelism: appConfig.Crawl.FetchConcurrency,
		RandomDelay: constants.DetailFetchDelay,
	})
	if err != nil {
		appLogger.Error("Failed to create HTML Fetcher Adapter", err, nil)
		return nil, fmt.Errorf("failed to initialize html fetcher: %w", err)
	}
	appLogger.Info("HTML Fetcher Adapter initialized.", nil)

	feedFetcher := feedfetcher.NewFeedFetcherAdapter(
		appConfig.Crawl.FetchTimeout,
		"Mozilla/5.0 (compatible; HuurkansBot/1.0; +https://huurkans.vercel.app)",
	)

	ingestGateway, err := ingestclient.NewIngestClientAdapter(
		appConfig.Ingest.URL,
		appConfig.Ingest.Secret,
		appConfig.Ingest.Timeout,
	)
	if err != nil {
		appLogger.Error("Failed to create Ingest Client Adapter", err, nil)
		return nil, fmt.Errorf("failed to initialize ingest client: %w", err)
	}
	appLogger.Info("Ingest Client Adapter initialized.", port.Fields{"endpoint": appConfig.Ingest.URL})

	registry := extractor.NewRegistry()
	htmlStrategy, ok := registry.ExtractorFor(domain.SourceKindPaginatedSite)
	if !ok {
		return nil, fmt.Errorf("no extractor strategy registered for kind '%s'", domain.SourceKindPaginatedSite)
	}
	linkExtractor := extractor.NewLinkExtractor()

	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 3. ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики) ---
	discoverUC := usecase.NewDiscoverLinksUseCase(pageFetcher, linkExtractor)
	crawlUC := usecase.NewCrawlDetailsUseCase(pageFetcher, htmlStrategy)
	feedsUC := usecase.NewIngestFeedsUseCase(feedFetcher)
	dispatchUC := usecase.NewDispatchBatchesUseCase(ingestGateway, appConfig.Ingest.BatchSize)

	sources := buildSources(appConfig)
	appLogger.Info("Sources configured", port.Fields{"count": len(sources)})

	pipelineUC := usecase.NewRunPipelineUseCase(
		sources,
		discoverUC,
		crawlUC,
		feedsUC,
		dispatchUC,
		appConfig.Crawl.GlobalDeadline,
	)
	appLogger.Info("All use cases initialized.", nil)

	return &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
		pipelineUC:   pipelineUC,
	}, nil
}

// Run выполняет один запуск пайплайна и возвращает его сводку.
// Сигнал завершения (SIGINT/SIGTERM) кооперативно останавливает выдачу
// новой работы; уже произведенные кандидаты всё равно доставляются.
func (a *App) Run() domain.RunSummary {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		receivedSignal := <-quit
		a.logger.Warn("Received signal, stopping new work", port.Fields{"signal": receivedSignal.String()})
		cancelApp()
	}()

	defer func() {
		if a.fluentClient != nil {
			a.logger.Info("Closing Fluent Bit connection...", nil)
			if err := a.fluentClient.Close(); err != nil {
				log.Printf("App: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	runCtx := contextkeys.ContextWithLogger(appCtx, a.logger)
	summary := a.pipelineUC.Execute(runCtx)

	if summary.Degraded() {
		a.logger.Warn("Run finished with degradations", port.Fields{
			"first_discovery_error": summary.FirstDiscoveryError,
			"first_scrape_error":    summary.FirstScrapeError,
			"first_delivery_error":  summary.FirstDeliveryError,
		})
	}

	return summary
}

// buildSources собирает список источников запуска: города Pararius
// из констант плюс фиды из конфигурации.
func buildSources(cfg *configs.AppConfig) []domain.Source {
	var sources []domain.Source

	for _, city := range constants.ParariusCities {
		sources = append(sources, domain.Source{
			Name:              "pararius-" + city,
			Kind:              domain.SourceKindPaginatedSite,
			BaseURL:           constants.ParariusBaseURL + "/" + city,
			City:              city,
			DetailPathPrefix:  constants.ParariusDetailPathPrefix,
			ExcludeSubstrings: constants.ParariusExcludeSubstrings,
			MaxListPages:      cfg.Crawl.MaxListPages,
			MaxDetailURLs:     cfg.Crawl.MaxDetailURLs,
			FetchConcurrency:  cfg.Crawl.FetchConcurrency,
			FetchTimeout:      cfg.Crawl.FetchTimeout,
		})
	}

	for i, feedURL := range cfg.FeedURLs {
		sources = append(sources, domain.Source{
			Name:    fmt.Sprintf("feed-%d", i+1),
			Kind:    domain.SourceKindFeed,
			BaseURL: feedURL,
		})
	}

	return sources
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}

package feedfetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// FeedFetcherAdapter загружает и разбирает синдицированные фиды (RSS/Atom).
// Реализует port.FeedFetcherPort.
type FeedFetcherAdapter struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

// NewFeedFetcherAdapter - конструктор
func NewFeedFetcherAdapter(timeout time.Duration, userAgent string) *FeedFetcherAdapter {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	return &FeedFetcherAdapter{parser: parser, timeout: timeout}
}

// FetchEntries возвращает записи фида. Записи без ссылки пропускаются
// молча: без url кандидата не бывает.
func (a *FeedFetcherAdapter) FetchEntries(ctx context.Context, feedURL string) ([]domain.FeedEntry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	feedLogger := logger.WithFields(port.Fields{"component": "FeedFetcherAdapter"})

	feedLogger.Debug("Fetching feed", port.Fields{"feed_url": feedURL})

	feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("feed fetcher: parse %s: %w", feedURL, err)
	}

	entries := make([]domain.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		entry := domain.FeedEntry{
			Title:       item.Title,
			Link:        item.Link,
			Summary:     plainText(item.Description),
			PublishedAt: item.PublishedParsed,
		}
		if entry.Summary == "" {
			entry.Summary = plainText(item.Content)
		}
		entries = append(entries, entry)
	}

	feedLogger.Debug("Feed parsed", port.Fields{
		"feed_url": feedURL,
		"items":    len(feed.Items),
		"usable":   len(entries),
	})
	return entries, nil
}

// plainText убирает встроенную HTML-разметку из текста записи фида.
// Фиды часто кладут в description целые фрагменты разметки; дальше
// по пайплайну описание идет только как текст.
func plainText(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.ContainsRune(raw, '<') {
		return strings.TrimSpace(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(doc.Text())
}

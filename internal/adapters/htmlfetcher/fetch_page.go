package htmlfetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"

	"github.com/gocolly/colly/v2"
)

// FetchPage загружает одну страницу и возвращает её тело как строку.
// Любой неуспех (сетевая ошибка, таймаут, не-2xx статус) приходит как
// ошибка; ретраев на этом уровне нет.
func (a *HTMLFetcherAdapter) FetchPage(ctx context.Context, pageURL string) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "HTMLFetcherAdapter(FetchPage)"})

	// ранний выход, если запуск уже отменен — новый запрос не начинаем
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("FetchPage: %w", err)
	}

	collector := a.collector.Clone()

	var body string
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		fetchLogger.Debug("Making request", port.Fields{"url": r.URL.String()})
	})

	collector.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchLogger.Warn("Request failed", port.Fields{
			"url":    pageURL,
			"status": r.StatusCode,
			"error":  err.Error(),
		})
		fetchErr = fmt.Errorf("FetchPage: %s: status %d: %w", pageURL, r.StatusCode, err)
	})

	if err := collector.Visit(pageURL); err != nil {
		return "", fmt.Errorf("FetchPage: visit %s: %w", pageURL, err)
	}
	collector.Wait() // Ждем завершения HTTP запроса

	if fetchErr != nil {
		return "", fetchErr
	}
	if body == "" {
		return "", errors.New("FetchPage: empty response body")
	}
	return body, nil
}

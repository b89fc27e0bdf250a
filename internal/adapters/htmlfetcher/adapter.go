package htmlfetcher

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// Config — настройки HTTP-обхода.
type Config struct {
	// Timeout — таймаут одного запроса; его превышение — неудача
	// только этого URL, соседние запросы не затрагиваются.
	Timeout time.Duration
	// Parallelism — лимит colly на одновременные запросы к одному домену.
	// Сам пул воркеров ограничивается выше, в юзкейсе.
	Parallelism int
	// RandomDelay — случайная пауза вежливости между запросами.
	RandomDelay time.Duration
}

// HTMLFetcherAdapter отвечает за все HTTP-взаимодействия с целевыми сайтами.
// Реализует port.PageFetcherPort.
type HTMLFetcherAdapter struct {
	// родительский коллектор, который разделяет лимиты
	collector *colly.Collector
}

// NewHTMLFetcherAdapter - конструктор
func NewHTMLFetcherAdapter(cfg Config) (*HTMLFetcherAdapter, error) {
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}

	// родительский коллектор; клоны наследуют лимиты и таймаут
	c := colly.NewCollector(colly.AllowURLRevisit())
	c.SetRequestTimeout(cfg.Timeout)

	err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Parallelism,
		RandomDelay: cfg.RandomDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("HTMLFetcherAdapter: failed to set limit rule: %w", err)
	}

	extensions.RandomUserAgent(c) // На каждый запрос будет подставлен User-Agent реального браузера
	extensions.Referer(c)         // Автоматически подставляет заголовок Referer, имитируя навигацию

	return &HTMLFetcherAdapter{collector: c}, nil
}

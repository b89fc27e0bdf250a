package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"

	"github.com/PuerkitoBio/goquery"
)

// LinkExtractor достает из HTML страницы списка ссылки на детальные
// страницы. Реализует port.LinkExtractorPort.
type LinkExtractor struct{}

// NewLinkExtractor - конструктор
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractDetailLinks возвращает нормализованные абсолютные ссылки
// в порядке документа. Нормализация: относительный путь резолвится
// относительно базового URL источника, query string и фрагмент
// отбрасываются — варианты с трекинговыми параметрами схлопываются
// в один ключ еще до дедупликации во frontier.
func (e *LinkExtractor) ExtractDetailLinks(pageContent string, source domain.Source) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageContent))
	if err != nil {
		return nil, fmt.Errorf("link extractor: parse list page: %w", err)
	}

	base, err := url.Parse(source.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("link extractor: invalid base URL '%s': %w", source.BaseURL, err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		// чужие хосты не обходим
		if resolved.Host != base.Host {
			return
		}
		if !strings.HasPrefix(resolved.Path, source.DetailPathPrefix) {
			return
		}
		// сам список и его страницы пагинации — не детальные страницы
		if resolved.Path == base.Path || strings.TrimSuffix(resolved.Path, "/") == base.Path {
			return
		}
		if strings.HasPrefix(resolved.Path, strings.TrimSuffix(base.Path, "/")+"/page-") {
			return
		}
		for _, excluded := range source.ExcludeSubstrings {
			if strings.Contains(resolved.Path, excluded) {
				return
			}
		}

		resolved.RawQuery = ""
		resolved.Fragment = ""
		links = append(links, resolved.String())
	})

	return links, nil
}

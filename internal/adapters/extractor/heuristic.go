package extractor

import (
	"regexp"
	"strings"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"

	"github.com/PuerkitoBio/goquery"
)

// Регулярные выражения эвристик. Страницы третьих сторон нестабильны,
// поэтому извлечение текстовыми шаблонами, а не семантическим парсером;
// structured data (schema.org) сознательно игнорируется — эвристики
// применяются одинаково ко всем страницам.
var (
	// валютный токен: € с цифрами, опциональные разделители тысяч
	// и десятичная часть через запятую
	priceRe = regexp.MustCompile(`€\s*(?:\d{1,3}(?:[.\s\x{00a0}]\d{3})+|\d+)(?:,\d+)?`)

	// площадь: число из 2-4 цифр перед m² (или m2)
	areaRe = regexp.MustCompile(`(?i)\d{2,4}\s*m[²2]`)

	// kamers и slaapkamers — разные поля: "комнаты" не равно "спальни"
	roomsRe    = regexp.MustCompile(`(?i)\d+\s*kamers?\b`)
	bedroomsRe = regexp.MustCompile(`(?i)\d+\s*slaapkamers?\b`)
)

// Selectors — CSS-селекторы регионов страницы для одной стратегии.
// Пустой селектор означает "региона нет, ищем по всему тексту".
type Selectors struct {
	PriceRegion    string
	FeaturesRegion string
	Location       string
	Description    string
}

// HeuristicExtractor — стратегия best-effort извлечения полей из HTML.
// Чистая функция без I/O; никогда не паникует и не возвращает ошибку:
// сбой парсинга любого поля деградирует до nil.
type HeuristicExtractor struct {
	selectors         Selectors
	maxDescriptionLen int
	descriptionSuffix string
}

// NewHeuristicExtractor создает стратегию с заданными селекторами.
func NewHeuristicExtractor(selectors Selectors, maxDescriptionLen int, ellipsis string) *HeuristicExtractor {
	return &HeuristicExtractor{
		selectors:         selectors,
		maxDescriptionLen: maxDescriptionLen,
		descriptionSuffix: ellipsis,
	}
}

// Extract применяет эвристики к содержимому страницы.
func (e *HeuristicExtractor) Extract(pageContent string) domain.ExtractedFields {
	fields := domain.ExtractedFields{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageContent))
	if err != nil {
		// даже без DOM пробуем регулярки по сырому тексту
		fields.PriceText = firstMatch(priceRe, pageContent)
		fields.AreaText = firstMatch(areaRe, pageContent)
		fields.RoomsText = firstMatch(roomsRe, pageContent)
		fields.BedroomsText = firstMatch(bedroomsRe, pageContent)
		return fields
	}

	bodyText := doc.Text()

	fields.Title = e.extractTitle(doc)
	fields.PriceText = e.extractInRegion(doc, e.selectors.PriceRegion, priceRe, bodyText)
	fields.AreaText = e.extractInRegion(doc, e.selectors.FeaturesRegion, areaRe, bodyText)
	fields.RoomsText = firstMatch(roomsRe, bodyText)
	fields.BedroomsText = firstMatch(bedroomsRe, bodyText)
	fields.LocationText = e.extractLocation(doc)
	fields.DescriptionText = e.extractDescription(doc)
	fields.ImageURLs = e.extractImages(doc)

	return fields
}

// extractTitle: первый h1, иначе og:title.
func (e *HeuristicExtractor) extractTitle(doc *goquery.Document) *string {
	if heading := strings.TrimSpace(doc.Find("h1").First().Text()); heading != "" {
		return &heading
	}
	if og, ok := doc.Find(`meta[property='og:title']`).First().Attr("content"); ok {
		if trimmed := strings.TrimSpace(og); trimmed != "" {
			return &trimmed
		}
	}
	return nil
}

// extractInRegion ищет первое совпадение регулярки в размеченном регионе,
// если он есть на странице, иначе — по всему тексту документа.
func (e *HeuristicExtractor) extractInRegion(doc *goquery.Document, selector string, re *regexp.Regexp, bodyText string) *string {
	if selector != "" {
		region := doc.Find(selector).First()
		if region.Length() > 0 {
			if match := firstMatch(re, region.Text()); match != nil {
				return match
			}
		}
	}
	return firstMatch(re, bodyText)
}

func (e *HeuristicExtractor) extractLocation(doc *goquery.Document) *string {
	if e.selectors.Location == "" {
		return nil
	}
	location := strings.TrimSpace(doc.Find(e.selectors.Location).First().Text())
	if location == "" {
		return nil
	}
	return &location
}

// extractDescription: размеченный блок описания, иначе meta description.
// Встроенная разметка отбрасывается (берется только текст), результат
// обрезается до максимума с маркером многоточия.
func (e *HeuristicExtractor) extractDescription(doc *goquery.Document) *string {
	description := ""
	if e.selectors.Description != "" {
		description = strings.TrimSpace(doc.Find(e.selectors.Description).First().Text())
	}
	if description == "" {
		if meta, ok := doc.Find(`meta[name='description']`).First().Attr("content"); ok {
			description = strings.TrimSpace(meta)
		}
	}
	if description == "" {
		return nil
	}

	if e.maxDescriptionLen > 0 {
		runes := []rune(description)
		if len(runes) > e.maxDescriptionLen {
			description = string(runes[:e.maxDescriptionLen]) + e.descriptionSuffix
		}
	}
	return &description
}

// extractImages: og:image в приоритете, затем img[src]/img[data-src]
// в порядке документа; data-URI пропускаются, дубликаты схлопываются
// с сохранением порядка.
func (e *HeuristicExtractor) extractImages(doc *goquery.Document) []string {
	var images []string
	seen := make(map[string]struct{})

	add := func(src string) {
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		images = append(images, src)
	}

	if og, ok := doc.Find(`meta[property='og:image']`).First().Attr("content"); ok {
		add(og)
	}

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok && src != "" {
			add(src)
			return
		}
		if src, ok := sel.Attr("data-src"); ok {
			add(src)
		}
	})

	return images
}

func firstMatch(re *regexp.Regexp, text string) *string {
	match := re.FindString(text)
	if match == "" {
		return nil
	}
	return &match
}

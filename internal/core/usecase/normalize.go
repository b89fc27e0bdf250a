package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/stijnvandrunen98/huurkans/internal/constants"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
)

// NormalizeCandidate приводит извлеченные поля к канонической записи объявления.
// Тотальная функция: нераспарсиваемое поле становится nil, а не ошибкой.
// Подсказка города из конфигурации источника имеет приоритет над текстом
// локации со страницы. postedAt никогда не фабрикуется из времени обхода:
// если источник не дал надежной метки — остается nil.
func NormalizeCandidate(extracted domain.ExtractedFields, source domain.Source, pageURL string, postedAt *time.Time) domain.ListingCandidate {
	candidate := domain.ListingCandidate{
		URL:      pageURL,
		Status:   domain.StatusActive,
		PostedAt: postedAt,
	}

	candidate.Title = trimmedOrNil(extracted.Title)
	candidate.Description = cappedOrNil(trimmedOrNil(extracted.DescriptionText))
	candidate.Price = parseEuroAmount(extracted.PriceText)
	candidate.AreaM2 = positiveOrNil(parseLeadingInt(extracted.AreaText))
	candidate.Bedrooms = nonNegativeOrNil(parseLeadingInt(extracted.BedroomsText))

	if source.City != "" {
		city := source.City
		candidate.City = &city
	} else {
		candidate.City = trimmedOrNil(extracted.LocationText)
	}

	if len(extracted.ImageURLs) > 0 {
		img := extracted.ImageURLs[0]
		candidate.ImageURL = &img
	}

	return candidate
}

// parseEuroAmount извлекает целую сумму в евро из текста цены.
// Точки и пробелы считаются разделителями тысяч, запятая — десятичной
// частью и отбрасывается: "€ 1.499,50 p/m" -> 1499.
func parseEuroAmount(text *string) *int {
	if text == nil {
		return nil
	}

	s := *text
	if idx := strings.IndexRune(s, ','); idx >= 0 {
		s = s[:idx]
	}

	return nonNegativeOrNil(digitsOnly(s))
}

// parseLeadingInt извлекает первое число из текста ("75 m²" -> 75).
func parseLeadingInt(text *string) *int {
	if text == nil {
		return nil
	}
	return digitsOnly(*text)
}

// digitsOnly собирает первую непрерывную группу цифр
// (разделители тысяч внутри группы допускаются).
func digitsOnly(s string) *int {
	value := 0
	found := false

	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			value = value*10 + int(r-'0')
			found = true
		case found && (r == '.' || r == ' ' || r == ' '):
			// разделитель тысяч внутри числа — продолжаем
			continue
		case found:
			return &value
		}
	}

	if !found {
		return nil
	}
	return &value
}

func positiveOrNil(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

func nonNegativeOrNil(v *int) *int {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}

// cappedOrNil обрезает описание до MaxDescriptionLength рун с маркером
// многоточия. Лимит применяется здесь, после стратегий извлечения:
// описание ограничено у каждого кандидата независимо от того, из какой
// ветки пайплайна (HTML или фид) оно пришло. Идемпотентно для текста,
// уже обрезанного стратегией.
func cappedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	runes := []rune(*s)
	if len(runes) <= constants.MaxDescriptionLength {
		return s
	}
	capped := string(runes[:constants.MaxDescriptionLength]) + constants.DescriptionEllipsis
	return &capped
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package port

import "github.com/stijnvandrunen98/huurkans/internal/core/domain"

// ListingExtractorPort — стратегия извлечения полей со страницы объявления.
// Чистая функция без I/O: любой сбой парсинга деградирует до nil-поля,
// а не до ошибки пайплайна.
type ListingExtractorPort interface {
	Extract(pageContent string) domain.ExtractedFields
}

// LinkExtractorPort извлекает ссылки на детальные страницы из HTML
// страницы списка: фильтрация по префиксу пути, исключения,
// относительные ссылки приводятся к абсолютным, query string отбрасывается.
type LinkExtractorPort interface {
	ExtractDetailLinks(pageContent string, source domain.Source) ([]string, error)
}

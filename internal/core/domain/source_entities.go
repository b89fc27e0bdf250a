package domain

import "time"

// SourceKind определяет тип источника объявлений.
type SourceKind string

const (
	// SourceKindPaginatedSite — сайт со списком объявлений и пагинацией.
	SourceKindPaginatedSite SourceKind = "paginated-site"
	// SourceKindFeed — синдицированный XML-фид (RSS/Atom).
	SourceKindFeed SourceKind = "feed"
)

// Source — конфигурация одного источника для обхода.
// Неизменяема в течение одного запуска; задается снаружи (constants + env),
// пайплайн её не редактирует.
type Source struct {
	Name string
	Kind SourceKind

	// BaseURL — базовый URL списка объявлений (для paginated-site)
	// или URL фида (для feed).
	BaseURL string

	// City — подсказка по городу; имеет приоритет над текстом,
	// извлеченным со страницы.
	City string

	// DetailPathPrefix — префикс пути ссылок на детальные страницы.
	DetailPathPrefix string
	// ExcludeSubstrings — подстроки, при наличии которых ссылка отбрасывается
	// (проекты, переводные версии страниц и т.п.).
	ExcludeSubstrings []string

	// Лимиты обхода для этого источника.
	MaxListPages     int
	MaxDetailURLs    int
	FetchConcurrency int
	FetchTimeout     time.Duration
}

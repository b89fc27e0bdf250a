package domain

import "time"

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// ExtractedFields — "сырой" результат эвристического извлечения полей
// со страницы объявления. Каждое поле опционально: отсутствие значения —
// это нормальный исход, а не ошибка. nil означает "не найдено",
// в отличие от пустой строки.
type ExtractedFields struct {
	Title           *string
	PriceText       *string
	LocationText    *string
	AreaText        *string
	RoomsText       *string
	BedroomsText    *string
	DescriptionText *string

	// ImageURLs — все найденные изображения в порядке обнаружения.
	// Дальше по пайплайну уходит только первое; полный список
	// сохраняется для диагностики.
	ImageURLs []string
}

// ListingCandidate — каноническая запись объявления после нормализации.
// Единица доставки на границу инжеста. URL — единственный ключ идентичности:
// граница делает upsert по нему, поэтому повторная доставка идемпотентна.
type ListingCandidate struct {
	URL         string     `json:"url"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Price       *int       `json:"price"`
	City        *string    `json:"city"`
	AreaM2      *int       `json:"area_m2"`
	Bedrooms    *int       `json:"bedrooms"`
	ImageURL    *string    `json:"image_url"`
	PostedAt    *time.Time `json:"posted_at"`
	Status      string     `json:"status"`
}

// FetchFailure — терминальная неудача обработки одного URL в рамках запуска.
// Не ретраится; фиксируется в счетчиках и пропускается.
type FetchFailure struct {
	URL    string
	Reason string
}

// FeedEntry — одна запись синдицированного фида.
type FeedEntry struct {
	Title       string
	Link        string
	Summary     string
	PublishedAt *time.Time
}

package constants

import "time"

// Лимиты обхода по умолчанию (переопределяются через env).
const (
	DefaultMaxListPages     = 2
	DefaultMaxDetailURLs    = 50
	DefaultFetchConcurrency = 4
	DefaultFetchTimeout     = 45 * time.Second
	DefaultGlobalDeadline   = 10 * time.Minute
)

// Доставка.
const (
	DefaultBatchSize     = 25
	DefaultIngestTimeout = 30 * time.Second
	DeliveryBatchDelay   = 500 * time.Millisecond
)

// Паузы вежливости между запросами к целевому сайту.
const (
	ListPageDelay    = 1 * time.Second
	DetailFetchDelay = 500 * time.Millisecond
)

// MaxDescriptionLength — верхняя граница длины описания; более длинный
// текст обрезается с маркером многоточия.
const MaxDescriptionLength = 1000

// DescriptionEllipsis добавляется к обрезанному описанию.
const DescriptionEllipsis = "…"

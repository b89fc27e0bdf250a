package port

import "context"

// PageFetcherPort — исходящий порт для загрузки одной страницы
// (списка или детальной). Один вызов — один сетевой запрос со своим
// таймаутом. Неуспех возвращается как ошибка и не ретраится:
// вызывающая сторона решает, что с ним делать.
type PageFetcherPort interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

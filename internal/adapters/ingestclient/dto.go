package ingestclient

import "github.com/stijnvandrunen98/huurkans/internal/core/domain"

// ingestRequest — тело батчевого запроса к границе инжеста:
// { "items": [ listing, ... ] }. Граница также принимает одиночный
// объект без обертки, но пайплайн всегда шлет батчи.
type ingestRequest struct {
	Items []domain.ListingCandidate `json:"items"`
}

// ingestResponse — минимальная часть ответа границы, которую мы читаем.
type ingestResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

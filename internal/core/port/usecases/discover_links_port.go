package usecases_port

import (
	"context"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
)

// DiscoverLinksPort — юзкейс обхода пагинации источника.
// Возвращает уникальные ссылки на детальные страницы (не больше
// source.MaxDetailURLs). Ошибка discovery не фатальна: уже найденные
// ссылки возвращаются вместе с ней.
type DiscoverLinksPort interface {
	Execute(ctx context.Context, source domain.Source, clock *domain.RunClock) ([]string, error)
}

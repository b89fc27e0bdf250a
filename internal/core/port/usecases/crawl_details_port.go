package usecases_port

import (
	"context"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
)

// CrawlDetailsPort — юзкейс обработки найденных ссылок пулом воркеров.
// На каждый URL: загрузка, извлечение полей, нормализация.
// Неудача одного URL изолирована и не влияет на соседей.
type CrawlDetailsPort interface {
	Execute(ctx context.Context, source domain.Source, urls []string, clock *domain.RunClock) ([]domain.ListingCandidate, []domain.FetchFailure)
}

package usecases_port

import (
	"context"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
)

// IngestFeedsPort — юзкейс фидовой ветки пайплайна: записи фида
// проходят через тот же нормализатор и уходят в тот же диспатчер,
// отдельного пути доставки нет.
type IngestFeedsPort interface {
	Execute(ctx context.Context, source domain.Source) ([]domain.ListingCandidate, error)
}

package usecases_port

import (
	"context"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
)

// DispatchBatchesPort — юзкейс доставки кандидатов батчами.
// Отказ одного батча не прерывает доставку остальных.
type DispatchBatchesPort interface {
	Execute(ctx context.Context, candidates []domain.ListingCandidate) []domain.BatchDeliveryResult
}

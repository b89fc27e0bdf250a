package port

import (
	"context"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
)

// IngestGatewayPort — исходящий порт доставки кандидатов на границу инжеста.
// Один вызов — один аутентифицированный запрос с одним батчем.
// Отказ (не-2xx, сетевая ошибка) возвращается как ошибка батча;
// решение продолжать принимает вызывающий юзкейс.
type IngestGatewayPort interface {
	DeliverBatch(ctx context.Context, items []domain.ListingCandidate) error
}

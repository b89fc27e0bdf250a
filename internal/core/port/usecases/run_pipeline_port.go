package usecases_port

import (
	"context"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
)

// RunPipelinePort — юзкейс одного сквозного запуска:
// discovery -> обход деталей -> нормализация -> доставка, под общим дедлайном.
type RunPipelinePort interface {
	Execute(ctx context.Context) domain.RunSummary
}

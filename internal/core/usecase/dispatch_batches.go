package usecase

import (
	"context"
	"time"

	"github.com/stijnvandrunen98/huurkans/internal/constants"
	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
)

// DispatchBatchesUseCase режет список кандидатов на батчи фиксированного
// размера (порядок внутри батча сохраняется) и доставляет их на границу
// инжеста. Отказ батча — локальное событие: фиксируется и доставка
// продолжается со следующего батча.
type DispatchBatchesUseCase struct {
	gateway    port.IngestGatewayPort
	batchSize  int
	batchDelay time.Duration
}

// NewDispatchBatchesUseCase создает новый экземпляр use case
func NewDispatchBatchesUseCase(gateway port.IngestGatewayPort, batchSize int) *DispatchBatchesUseCase {
	if batchSize < 1 {
		batchSize = constants.DefaultBatchSize
	}
	return &DispatchBatchesUseCase{
		gateway:    gateway,
		batchSize:  batchSize,
		batchDelay: constants.DeliveryBatchDelay,
	}
}

// Execute доставляет все батчи. Дедлайн запуска здесь не проверяется:
// всё, что уже произведено, должно быть доставлено.
func (uc *DispatchBatchesUseCase) Execute(ctx context.Context, candidates []domain.ListingCandidate) []domain.BatchDeliveryResult {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{"use_case": "DispatchBatches"})

	if len(candidates) == 0 {
		ucLogger.Info("Nothing to deliver", nil)
		return nil
	}

	var results []domain.BatchDeliveryResult
	batchNumber := 0

	for start := 0; start < len(candidates); start += uc.batchSize {
		end := start + uc.batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]
		batchNumber++

		batchLogger := ucLogger.WithFields(port.Fields{"batch": batchNumber, "size": len(batch)})
		batchLogger.Debug("Delivering batch", nil)

		result := domain.BatchDeliveryResult{Attempted: len(batch)}
		if err := uc.gateway.DeliverBatch(ctx, batch); err != nil {
			batchLogger.Error("Batch delivery failed, continuing with next batch", err, nil)
			result.Rejected = len(batch)
			result.FirstError = err.Error()
		} else {
			batchLogger.Info("Batch delivered", nil)
			result.Accepted = len(batch)
		}
		results = append(results, result)

		// пауза вежливости между батчами, чтобы не заливать границу инжеста
		if end < len(candidates) {
			sleepWithContext(ctx, uc.batchDelay)
		}
	}

	return results
}

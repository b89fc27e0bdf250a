package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGateway запоминает доставленные батчи и умеет отказывать
// выбранным по номеру.
type recordingGateway struct {
	batches     [][]domain.ListingCandidate
	failBatches map[int]error
}

func (g *recordingGateway) DeliverBatch(_ context.Context, items []domain.ListingCandidate) error {
	g.batches = append(g.batches, items)
	if err, ok := g.failBatches[len(g.batches)]; ok {
		return err
	}
	return nil
}

func makeCandidates(n int) []domain.ListingCandidate {
	out := make([]domain.ListingCandidate, n)
	for i := range out {
		out[i] = domain.ListingCandidate{
			URL:    fmt.Sprintf("https://site.test/ad/%d", i),
			Status: domain.StatusActive,
		}
	}
	return out
}

func newDispatchForTest(gateway *recordingGateway, batchSize int) *DispatchBatchesUseCase {
	uc := NewDispatchBatchesUseCase(gateway, batchSize)
	uc.batchDelay = 0
	return uc
}

func TestDispatchBatchesPartitionsPreservingOrder(t *testing.T) {
	gateway := &recordingGateway{}
	uc := newDispatchForTest(gateway, 25)

	results := uc.Execute(context.Background(), makeCandidates(60))

	require.Len(t, gateway.batches, 3)
	assert.Len(t, gateway.batches[0], 25)
	assert.Len(t, gateway.batches[1], 25)
	assert.Len(t, gateway.batches[2], 10)

	// глобальный порядок кандидатов не перемешивается
	assert.Equal(t, "https://site.test/ad/0", gateway.batches[0][0].URL)
	assert.Equal(t, "https://site.test/ad/25", gateway.batches[1][0].URL)
	assert.Equal(t, "https://site.test/ad/59", gateway.batches[2][9].URL)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, r.Attempted, r.Accepted)
		assert.Zero(t, r.Rejected)
	}
}

func TestDispatchBatchesContinuesAfterFailedBatch(t *testing.T) {
	gateway := &recordingGateway{failBatches: map[int]error{
		2: errors.New("ingest boundary returned 500"),
	}}
	uc := newDispatchForTest(gateway, 10)

	results := uc.Execute(context.Background(), makeCandidates(30))

	require.Len(t, gateway.batches, 3, "delivery must continue past a failed batch")
	require.Len(t, results, 3)

	assert.Equal(t, 10, results[0].Accepted)
	assert.Equal(t, 10, results[1].Rejected)
	assert.Contains(t, results[1].FirstError, "500")
	assert.Equal(t, 10, results[2].Accepted)
}

func TestDispatchBatchesEmptyInput(t *testing.T) {
	gateway := &recordingGateway{}
	uc := newDispatchForTest(gateway, 25)

	results := uc.Execute(context.Background(), nil)

	assert.Nil(t, results)
	assert.Empty(t, gateway.batches)
}

func TestDispatchBatchesSingleShortBatch(t *testing.T) {
	gateway := &recordingGateway{}
	uc := newDispatchForTest(gateway, 25)

	results := uc.Execute(context.Background(), makeCandidates(3))

	require.Len(t, gateway.batches, 1)
	assert.Len(t, gateway.batches[0], 3)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Accepted)
}

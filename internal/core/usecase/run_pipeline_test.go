package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscover struct {
	links []string
	err   error
	delay time.Duration
	calls int
}

func (f *fakeDiscover) Execute(_ context.Context, _ domain.Source, _ *domain.RunClock) ([]string, error) {
	f.calls++
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.links, f.err
}

type fakeCrawl struct {
	candidates []domain.ListingCandidate
	failures   []domain.FetchFailure
	gotURLs    []string
}

func (f *fakeCrawl) Execute(_ context.Context, _ domain.Source, urls []string, _ *domain.RunClock) ([]domain.ListingCandidate, []domain.FetchFailure) {
	f.gotURLs = urls
	return f.candidates, f.failures
}

type fakeFeeds struct {
	candidates []domain.ListingCandidate
	err        error
}

func (f *fakeFeeds) Execute(_ context.Context, _ domain.Source) ([]domain.ListingCandidate, error) {
	return f.candidates, f.err
}

type fakeDispatch struct {
	got     []domain.ListingCandidate
	results []domain.BatchDeliveryResult
	calls   int
}

func (f *fakeDispatch) Execute(_ context.Context, candidates []domain.ListingCandidate) []domain.BatchDeliveryResult {
	f.calls++
	f.got = candidates
	return f.results
}

func TestRunPipelinePaginatedSourceCounts(t *testing.T) {
	links := []string{
		"https://site.test/ad/a",
		"https://site.test/ad/b",
		"https://site.test/ad/c",
	}
	discover := &fakeDiscover{links: links}
	crawl := &fakeCrawl{
		candidates: makeCandidates(2),
		failures:   []domain.FetchFailure{{URL: links[2], Reason: "timeout"}},
	}
	dispatch := &fakeDispatch{results: []domain.BatchDeliveryResult{{Attempted: 2, Accepted: 2}}}

	uc := NewRunPipelineUseCase(
		[]domain.Source{{Name: "site", Kind: domain.SourceKindPaginatedSite}},
		discover, crawl, &fakeFeeds{}, dispatch, 0,
	)
	summary := uc.Execute(context.Background())

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, summary.Discovered)
	assert.Equal(t, 2, summary.ScrapedOK)
	assert.Equal(t, 1, summary.ScrapeFailed)
	assert.Equal(t, 2, summary.DeliveredOK)
	assert.Zero(t, summary.DeliveryFailed)
	assert.Equal(t, "timeout", summary.FirstScrapeError)
	assert.True(t, summary.Degraded())
	assert.Equal(t, links, crawl.gotURLs)
}

func TestRunPipelineFeedSourceCounts(t *testing.T) {
	feeds := &fakeFeeds{candidates: makeCandidates(4)}
	dispatch := &fakeDispatch{results: []domain.BatchDeliveryResult{{Attempted: 4, Accepted: 4}}}

	uc := NewRunPipelineUseCase(
		[]domain.Source{{Name: "feed", Kind: domain.SourceKindFeed}},
		&fakeDiscover{}, &fakeCrawl{}, feeds, dispatch, 0,
	)
	summary := uc.Execute(context.Background())

	assert.Equal(t, 4, summary.Discovered)
	assert.Equal(t, 4, summary.ScrapedOK)
	assert.Equal(t, 4, summary.DeliveredOK)
	assert.False(t, summary.Degraded())
}

func TestRunPipelineDiscoveryErrorKeepsPartialResults(t *testing.T) {
	discover := &fakeDiscover{
		links: []string{"https://site.test/ad/a"},
		err:   errors.New("list page 2: HTTP 503"),
	}
	crawl := &fakeCrawl{candidates: makeCandidates(1)}
	dispatch := &fakeDispatch{results: []domain.BatchDeliveryResult{{Attempted: 1, Accepted: 1}}}

	uc := NewRunPipelineUseCase(
		[]domain.Source{{Name: "site", Kind: domain.SourceKindPaginatedSite}},
		discover, crawl, &fakeFeeds{}, dispatch, 0,
	)
	summary := uc.Execute(context.Background())

	assert.Equal(t, 1, summary.Discovered)
	assert.Equal(t, 1, summary.DeliveredOK)
	assert.Contains(t, summary.FirstDiscoveryError, "503")
	assert.True(t, summary.Degraded())
}

// Дедлайн, истекший посреди запуска, не отменяет доставку уже
// произведенных кандидатов, но оставшиеся источники пропускаются.
func TestRunPipelineDeliversProducedWorkAfterDeadline(t *testing.T) {
	discover := &fakeDiscover{
		links: []string{"https://site.test/ad/a", "https://site.test/ad/b"},
		delay: 40 * time.Millisecond,
	}
	crawl := &fakeCrawl{candidates: makeCandidates(2)}
	dispatch := &fakeDispatch{results: []domain.BatchDeliveryResult{{Attempted: 2, Accepted: 2}}}

	sources := []domain.Source{
		{Name: "first", Kind: domain.SourceKindPaginatedSite},
		{Name: "second", Kind: domain.SourceKindPaginatedSite},
	}
	uc := NewRunPipelineUseCase(sources, discover, crawl, &fakeFeeds{}, dispatch, 30*time.Millisecond)
	summary := uc.Execute(context.Background())

	assert.Equal(t, 1, discover.calls, "second source must be skipped after the deadline")
	require.Equal(t, 1, dispatch.calls, "delivery still runs after the deadline")
	assert.Len(t, dispatch.got, 2)
	assert.Equal(t, 2, summary.DeliveredOK)
}

func TestRunPipelineDeliveryFailureReflectedInSummary(t *testing.T) {
	crawl := &fakeCrawl{candidates: makeCandidates(2)}
	dispatch := &fakeDispatch{results: []domain.BatchDeliveryResult{
		{Attempted: 2, Rejected: 2, FirstError: "ingest boundary returned 401"},
	}}

	uc := NewRunPipelineUseCase(
		[]domain.Source{{Name: "site", Kind: domain.SourceKindPaginatedSite}},
		&fakeDiscover{links: []string{"https://site.test/ad/a", "https://site.test/ad/b"}},
		crawl, &fakeFeeds{}, dispatch, 0,
	)
	summary := uc.Execute(context.Background())

	assert.Equal(t, 2, summary.DeliveryFailed)
	assert.Contains(t, summary.FirstDeliveryError, "401")
	assert.True(t, summary.Degraded())
}

func TestRunPipelineUnknownSourceKindSkipped(t *testing.T) {
	dispatch := &fakeDispatch{}

	uc := NewRunPipelineUseCase(
		[]domain.Source{{Name: "weird", Kind: domain.SourceKind("carrier-pigeon")}},
		&fakeDiscover{}, &fakeCrawl{}, &fakeFeeds{}, dispatch, 0,
	)
	summary := uc.Execute(context.Background())

	assert.Zero(t, summary.Discovered)
	assert.Empty(t, dispatch.got)
}

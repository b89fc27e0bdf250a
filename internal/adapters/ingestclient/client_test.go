package ingestclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(n int) []domain.ListingCandidate {
	out := make([]domain.ListingCandidate, n)
	for i := range out {
		out[i] = domain.ListingCandidate{URL: "https://site.test/ad/1", Status: domain.StatusActive}
	}
	return out
}

func TestDeliverBatchSendsAuthenticatedJSON(t *testing.T) {
	var gotSecret, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get(SecretHeader)
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "count": 2})
	}))
	defer server.Close()

	client, err := NewIngestClientAdapter(server.URL, "s3cret", 5*time.Second)
	require.NoError(t, err)

	err = client.DeliverBatch(context.Background(), candidates(2))

	require.NoError(t, err)
	assert.Equal(t, "s3cret", gotSecret)
	assert.Equal(t, "application/json", gotContentType)

	var payload struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Len(t, payload.Items, 2)
}

func TestDeliverBatchNonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	client, err := NewIngestClientAdapter(server.URL, "wrong", 5*time.Second)
	require.NoError(t, err)

	err = client.DeliverBatch(context.Background(), candidates(1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestDeliverBatchToleratesUnparsableSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client, err := NewIngestClientAdapter(server.URL, "s3cret", 5*time.Second)
	require.NoError(t, err)

	assert.NoError(t, client.DeliverBatch(context.Background(), candidates(1)))
}

func TestDeliverBatchUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // адрес известен, но никто не слушает

	client, err := NewIngestClientAdapter(server.URL, "s3cret", time.Second)
	require.NoError(t, err)

	assert.Error(t, client.DeliverBatch(context.Background(), candidates(1)))
}

func TestNewIngestClientAdapterValidation(t *testing.T) {
	_, err := NewIngestClientAdapter("", "s3cret", time.Second)
	assert.Error(t, err)

	_, err = NewIngestClientAdapter("https://ingest.test/api/ingest", "", time.Second)
	assert.Error(t, err)
}

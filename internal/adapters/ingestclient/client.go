package ingestclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
)

// SecretHeader — заголовок аутентификации границы инжеста.
// Сервер сравнивает значение со своим секретом байт-в-байт;
// обязанность клиента — только приложить заголовок,
// ротацией секретов он не занимается.
const SecretHeader = "x-ingest-secret"

// maxErrorBodyBytes ограничивает, сколько байт тела ошибки попадет в лог.
const maxErrorBodyBytes = 512

// IngestClientAdapter доставляет батчи кандидатов на границу инжеста
// одним аутентифицированным POST-запросом на батч.
// Реализует port.IngestGatewayPort.
type IngestClientAdapter struct {
	httpClient *http.Client
	endpoint   string
	secret     string
}

// NewIngestClientAdapter - конструктор
func NewIngestClientAdapter(endpoint, secret string, timeout time.Duration) (*IngestClientAdapter, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("ingest client: endpoint is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("ingest client: secret is required")
	}

	return &IngestClientAdapter{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		secret:     secret,
	}, nil
}

// DeliverBatch шлет один батч. Не-2xx статус — ошибка этого батча;
// автоматических ретраев нет, решение об операторском ретрае — снаружи.
func (a *IngestClientAdapter) DeliverBatch(ctx context.Context, items []domain.ListingCandidate) error {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{"component": "IngestClientAdapter"})

	payload, err := json.Marshal(ingestRequest{Items: items})
	if err != nil {
		return fmt.Errorf("ingest client: marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ingest client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, a.secret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ingest client: POST %s: %w", a.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		clientLogger.Warn("Ingest boundary rejected batch", port.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return fmt.Errorf("ingest client: boundary returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ingestResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// батч принят (2xx); нечитаемое тело ответа — не повод считать его отказом
		clientLogger.Debug("Could not decode ingest response body", port.Fields{"error": err.Error()})
	}

	clientLogger.Debug("Batch accepted by ingest boundary", port.Fields{"items": len(items)})
	return nil
}

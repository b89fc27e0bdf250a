package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stijnvandrunen98/huurkans/internal/contextkeys"
	"github.com/stijnvandrunen98/huurkans/internal/contracts"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
)

// SecretHeader — заголовок с общим секретом; сравнивается байт-в-байт.
const SecretHeader = "x-ingest-secret"

// IngestHandler — обработчик локальной заглушки границы инжеста.
// Принимает либо один объект объявления, либо { "items": [ ... ] };
// каждый объект валидируется против контракта и апсертится по url.
type IngestHandler struct {
	store  *ListingStore
	secret string
}

// NewIngestHandler - конструктор
func NewIngestHandler(store *ListingStore, secret string) *IngestHandler {
	return &IngestHandler{store: store, secret: secret}
}

// Ingest обрабатывает POST /api/ingest.
// Ответы: 200 {ok:true,...} — принято; 400 — нарушен контракт
// (нет url и т.п.); 401 — секрет не совпал.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "Ingest"})

	secret := r.Header.Get(SecretHeader)
	if secret == "" || secret != h.secret {
		handlerLogger.Warn("Ingest secret mismatch", nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid ingest secret")
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		handlerLogger.Warn("Malformed request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	items, err := itemsFromPayload(payload)
	if err != nil {
		handlerLogger.Warn("Invalid payload shape", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// сначала валидируем весь батч, потом апсертим: батч с нарушением
	// контракта отклоняется целиком
	for i, item := range items {
		if err := contracts.ValidateListing(item); err != nil {
			handlerLogger.Warn("Listing rejected by contract", port.Fields{
				"index": i,
				"error": err.Error(),
			})
			WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("item %d: %v", i, err))
			return
		}
	}

	created := 0
	for _, item := range items {
		url, _ := item["url"].(string)
		if h.store.Upsert(url, item) {
			created++
		}
	}

	handlerLogger.Info("Listings upserted", port.Fields{
		"count":   len(items),
		"created": created,
		"updated": len(items) - created,
	})

	RespondWithJSON(w, http.StatusOK, IngestResponse{
		OK:      true,
		Count:   len(items),
		Created: created,
		Updated: len(items) - created,
	})
}

// itemsFromPayload принимает оба формата тела: батч { items: [...] }
// и одиночный объект объявления.
func itemsFromPayload(payload map[string]interface{}) ([]map[string]interface{}, error) {
	rawItems, isBatch := payload["items"]
	if !isBatch {
		return []map[string]interface{}{payload}, nil
	}

	list, ok := rawItems.([]interface{})
	if !ok {
		return nil, fmt.Errorf("'items' must be an array")
	}

	items := make([]map[string]interface{}, 0, len(list))
	for i, raw := range list {
		item, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("item %d is not an object", i)
		}
		items = append(items, item)
	}
	return items, nil
}

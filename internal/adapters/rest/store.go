package rest

import (
	"sync"
	"time"
)

// StoredListing — то, что sink хранит по каждому url.
type StoredListing struct {
	Fields    map[string]interface{} `json:"fields"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ListingStore — in-memory хранилище локальной заглушки границы инжеста
// с семантикой upsert-by-url: повторная доставка того же url обновляет
// значения, а не создает дубликат. Настоящая граница (с персистентным
// хранилищем) остается внешней; заглушка нужна для локальной разработки
// и интеграционных тестов контракта доставки.
type ListingStore struct {
	mu       sync.RWMutex
	listings map[string]StoredListing
}

// NewListingStore создает пустое хранилище.
func NewListingStore() *ListingStore {
	return &ListingStore{listings: make(map[string]StoredListing)}
}

// Upsert вставляет или обновляет запись по url.
// Возвращает true, если запись была создана впервые.
func (s *ListingStore) Upsert(url string, fields map[string]interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.listings[url]
	s.listings[url] = StoredListing{Fields: fields, UpdatedAt: time.Now().UTC()}
	return !existed
}

// Get возвращает запись по url.
func (s *ListingStore) Get(url string) (StoredListing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listing, ok := s.listings[url]
	return listing, ok
}

// Len возвращает число уникальных url в хранилище.
func (s *ListingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

package extractor

import (
	"github.com/stijnvandrunen98/huurkans/internal/constants"
	"github.com/stijnvandrunen98/huurkans/internal/core/domain"
	"github.com/stijnvandrunen98/huurkans/internal/core/port"
)

// Registry — реестр стратегий извлечения по виду источника.
// Особенности конкретных сайтов живут в подменяемых стратегиях,
// а не в размноженных почти одинаковых скриптах.
type Registry struct {
	strategies map[domain.SourceKind]port.ListingExtractorPort
}

// NewRegistry создает реестр со стандартным набором стратегий.
// Фидовый вид источника не требует HTML-стратегии: записи фида
// попадают в нормализатор уже структурированными.
func NewRegistry() *Registry {
	return &Registry{
		strategies: map[domain.SourceKind]port.ListingExtractorPort{
			domain.SourceKindPaginatedSite: NewHeuristicExtractor(
				ParariusSelectors(),
				constants.MaxDescriptionLength,
				constants.DescriptionEllipsis,
			),
		},
	}
}

// ExtractorFor возвращает стратегию для вида источника.
func (r *Registry) ExtractorFor(kind domain.SourceKind) (port.ListingExtractorPort, bool) {
	strategy, ok := r.strategies[kind]
	return strategy, ok
}

// Register подменяет или добавляет стратегию для вида источника.
func (r *Registry) Register(kind domain.SourceKind, strategy port.ListingExtractorPort) {
	r.strategies[kind] = strategy
}

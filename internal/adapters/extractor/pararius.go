package extractor

// Константы, специфичные для разметки Pararius
const (
	parariusPriceRegion    = ".listing-detail-summary__price"
	parariusFeaturesRegion = ".listing-features"
	parariusLocation       = ".listing-detail-summary__location"
	parariusDescription    = ".listing-detail-description, [data-test*='description']"
)

// ParariusSelectors возвращает селекторы регионов детальной страницы Pararius.
func ParariusSelectors() Selectors {
	return Selectors{
		PriceRegion:    parariusPriceRegion,
		FeaturesRegion: parariusFeaturesRegion,
		Location:       parariusLocation,
		Description:    parariusDescription,
	}
}

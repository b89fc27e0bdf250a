package extractor

import (
	"strings"
	"testing"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *HeuristicExtractor {
	return NewHeuristicExtractor(ParariusSelectors(), 1000, "…")
}

const detailPage = `<!DOCTYPE html>
<html>
<head>
	<title>Huurwoning</title>
	<meta property="og:title" content="Appartement Keizersgracht (og)">
	<meta property="og:image" content="https://img.test/hero.jpg">
	<meta name="description" content="Meta omschrijving.">
</head>
<body>
	<h1>Appartement Keizersgracht 100</h1>
	<div class="listing-detail-summary__price">€ 1.499 p/m</div>
	<div class="listing-detail-summary__location">1017 WV Amsterdam (Centrum)</div>
	<ul class="listing-features">
		<li>75 m²</li>
		<li>3 kamers</li>
		<li>2 slaapkamers</li>
	</ul>
	<div class="listing-detail-description">
		<p>Licht appartement <strong>in het centrum</strong> van Amsterdam.</p>
	</div>
	<img src="https://img.test/1.jpg">
	<img src="data:image/png;base64,AAAA">
	<img data-src="https://img.test/2.jpg">
	<img src="https://img.test/1.jpg">
</body>
</html>`

func TestExtractDetailPageFields(t *testing.T) {
	fields := newTestExtractor().Extract(detailPage)

	require.NotNil(t, fields.Title)
	assert.Equal(t, "Appartement Keizersgracht 100", *fields.Title)

	require.NotNil(t, fields.PriceText)
	assert.Equal(t, "€ 1.499", *fields.PriceText)

	require.NotNil(t, fields.AreaText)
	assert.Equal(t, "75 m²", *fields.AreaText)

	require.NotNil(t, fields.RoomsText)
	assert.Equal(t, "3 kamers", *fields.RoomsText)

	require.NotNil(t, fields.BedroomsText)
	assert.Equal(t, "2 slaapkamers", *fields.BedroomsText)

	require.NotNil(t, fields.LocationText)
	assert.Equal(t, "1017 WV Amsterdam (Centrum)", *fields.LocationText)

	require.NotNil(t, fields.DescriptionText)
	assert.Equal(t, "Licht appartement in het centrum van Amsterdam.", *fields.DescriptionText)

	// og:image первым, data-URI пропущен, дубликат схлопнут
	assert.Equal(t, []string{
		"https://img.test/hero.jpg",
		"https://img.test/1.jpg",
		"https://img.test/2.jpg",
	}, fields.ImageURLs)
}

func TestExtractFallsBackToBodyTextWithoutRegions(t *testing.T) {
	page := `<html><body>
		<p>Te huur voor € 950 per maand, 55 m2, 2 kamers.</p>
	</body></html>`

	fields := newTestExtractor().Extract(page)

	require.NotNil(t, fields.PriceText)
	assert.Equal(t, "€ 950", *fields.PriceText)
	require.NotNil(t, fields.AreaText)
	assert.Equal(t, "55 m2", *fields.AreaText)
	require.NotNil(t, fields.RoomsText)
	assert.Equal(t, "2 kamers", *fields.RoomsText)
	assert.Nil(t, fields.BedroomsText)
}

func TestExtractTitleFallsBackToOpenGraph(t *testing.T) {
	page := `<html><head>
		<meta property="og:title" content="Studio Jordaan">
	</head><body><p>geen h1</p></body></html>`

	fields := newTestExtractor().Extract(page)

	require.NotNil(t, fields.Title)
	assert.Equal(t, "Studio Jordaan", *fields.Title)
}

func TestExtractDescriptionFallsBackToMeta(t *testing.T) {
	page := `<html><head>
		<meta name="description" content="Korte meta omschrijving.">
	</head><body><h1>Woning</h1></body></html>`

	fields := newTestExtractor().Extract(page)

	require.NotNil(t, fields.DescriptionText)
	assert.Equal(t, "Korte meta omschrijving.", *fields.DescriptionText)
}

func TestExtractDescriptionTruncatedWithEllipsis(t *testing.T) {
	longText := strings.Repeat("woord ", 50) // 300 символов
	page := `<html><body><div class="listing-detail-description">` + longText + `</div></body></html>`

	ex := NewHeuristicExtractor(ParariusSelectors(), 100, "…")
	fields := ex.Extract(page)

	require.NotNil(t, fields.DescriptionText)
	assert.Equal(t, 101, len([]rune(*fields.DescriptionText)))
	assert.True(t, strings.HasSuffix(*fields.DescriptionText, "…"))
}

func TestExtractRoomsDoesNotMatchInsideSlaapkamers(t *testing.T) {
	page := `<html><body><p>3 slaapkamers</p></body></html>`

	fields := newTestExtractor().Extract(page)

	assert.Nil(t, fields.RoomsText, "slaapkamers must not count as kamers")
	require.NotNil(t, fields.BedroomsText)
	assert.Equal(t, "3 slaapkamers", *fields.BedroomsText)
}

func TestExtractPriceWithNonBreakingSpaceSeparator(t *testing.T) {
	page := "<html><body><p>€ 2 100 per maand</p></body></html>"

	fields := newTestExtractor().Extract(page)

	require.NotNil(t, fields.PriceText)
	assert.Equal(t, "€ 2 100", *fields.PriceText)
}

func TestExtractEmptyAndGarbageInputNeverPanics(t *testing.T) {
	for _, page := range []string{"", "   ", "<<<>>>", "plain text € 800"} {
		fields := newTestExtractor().Extract(page)
		assert.IsType(t, domain.ExtractedFields{}, fields)
	}
}

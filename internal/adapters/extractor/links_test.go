package extractor

import (
	"testing"

	"github.com/stijnvandrunen98/huurkans/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parariusTestSource() domain.Source {
	return domain.Source{
		Name:              "pararius-amsterdam",
		Kind:              domain.SourceKindPaginatedSite,
		BaseURL:           "https://www.pararius.nl/huurwoningen/amsterdam",
		DetailPathPrefix:  "/huurwoningen/",
		ExcludeSubstrings: []string{"/project/", "/english"},
	}
}

const listPage = `<html><body>
	<a href="/huurwoningen/amsterdam/appartement-keizersgracht">Keizersgracht</a>
	<a href="https://www.pararius.nl/huurwoningen/amsterdam/studio-jordaan?utm_source=x#foto">Jordaan</a>
	<a href="/huurwoningen/amsterdam/project/nieuwbouw-zuid">Project</a>
	<a href="/english/rentals/amsterdam">English</a>
	<a href="/huurwoningen/amsterdam">Lijst zelf</a>
	<a href="/huurwoningen/amsterdam/">Lijst met slash</a>
	<a href="https://ads.example.com/huurwoningen/elders">Vreemde host</a>
	<a href="/over-ons">Over ons</a>
	<a href="mailto:info@pararius.nl">Mail</a>
	<a href="/huurwoningen/amsterdam/appartement-keizersgracht">Keizersgracht nogmaals</a>
</body></html>`

func TestExtractDetailLinksFiltersAndNormalizes(t *testing.T) {
	links, err := NewLinkExtractor().ExtractDetailLinks(listPage, parariusTestSource())

	require.NoError(t, err)
	// дедупликация — обязанность frontier, экстрактор сохраняет порядок документа
	assert.Equal(t, []string{
		"https://www.pararius.nl/huurwoningen/amsterdam/appartement-keizersgracht",
		"https://www.pararius.nl/huurwoningen/amsterdam/studio-jordaan",
		"https://www.pararius.nl/huurwoningen/amsterdam/appartement-keizersgracht",
	}, links)
}

func TestExtractDetailLinksSkipsPaginationSiblings(t *testing.T) {
	page := `<html><body>
		<a href="/huurwoningen/amsterdam/page-2">Volgende</a>
		<a href="/huurwoningen/amsterdam/page-15">Pagina 15</a>
		<a href="/huurwoningen/amsterdam/huis-1">Huis</a>
	</body></html>`

	links, err := NewLinkExtractor().ExtractDetailLinks(page, parariusTestSource())

	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.pararius.nl/huurwoningen/amsterdam/huis-1"}, links,
		"pagination pages share the detail prefix but are list pages")
}

func TestExtractDetailLinksStripsQueryAndFragment(t *testing.T) {
	page := `<html><body>
		<a href="/huurwoningen/amsterdam/huis-1?utm_campaign=mail&ref=home#kaart">Huis</a>
	</body></html>`

	links, err := NewLinkExtractor().ExtractDetailLinks(page, parariusTestSource())

	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://www.pararius.nl/huurwoningen/amsterdam/huis-1", links[0])
}

func TestExtractDetailLinksEmptyPage(t *testing.T) {
	links, err := NewLinkExtractor().ExtractDetailLinks("<html><body></body></html>", parariusTestSource())

	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestExtractDetailLinksInvalidBaseURL(t *testing.T) {
	source := parariusTestSource()
	source.BaseURL = "://not-a-url"

	_, err := NewLinkExtractor().ExtractDetailLinks(listPage, source)

	assert.Error(t, err)
}

func TestRegistryReturnsStrategyForPaginatedSite(t *testing.T) {
	registry := NewRegistry()

	strategy, ok := registry.ExtractorFor(domain.SourceKindPaginatedSite)
	require.True(t, ok)
	assert.NotNil(t, strategy)

	_, ok = registry.ExtractorFor(domain.SourceKindFeed)
	assert.False(t, ok, "feed sources bypass HTML extraction")
}

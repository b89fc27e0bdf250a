package constants

// Pararius
const (
	ParariusHost    = "https://www.pararius.nl"
	ParariusBaseURL = "https://www.pararius.nl/huurwoningen"

	// Ссылки на детальные страницы начинаются с этого префикса пути.
	ParariusDetailPathPrefix = "/huurwoningen/"

	// Суффикс пагинации: страница 1 — базовый URL, страница n — "<base>/page-n".
	PaginationSuffixFormat = "%s/page-%d"
)

// ParariusExcludeSubstrings — ссылки с этими подстроками не являются
// детальными страницами объявлений.
var ParariusExcludeSubstrings = []string{"/project/", "/english"}

// ParariusCities — города, по которым обходим Pararius.
var ParariusCities = []string{
	"amsterdam",
	// "rotterdam",
	// "utrecht",
}

package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInvalidRequest               = "INVALID_REQUEST"
	CodeMethodNotAllowed             = "METHOD_NOT_ALLOWED"
	CodeThresholdNotNumber           = "THRESHOLD_NOT_NUMBER"
	CodeThresholdNegative            = "THRESHOLD_NEGATIVE"
	CodeThresholdSevereBelowMajor    = "THRESHOLD_SEVERE_BELOW_MAJOR"
	CodeThresholdDSNotNumber         = "THRESHOLD_DS_NOT_NUMBER"
	CodeThresholdDSNegative          = "THRESHOLD_DS_NEGATIVE"
	CodeThresholdDSBelowSevere       = "THRESHOLD_DS_BELOW_SEVERE"
	CodeDaggerheartInvalidThresholds = "DAGGERHEART_INVALID_THRESHOLDS"
	CodeDaggerheartInvalidLevel      = "DAGGERHEART_INVALID_LEVEL"
	CodeLoadoutFull                  = "LOADOUT_FULL"
	CodeLoadoutCardNotFound          = "LOADOUT_CARD_NOT_FOUND"
	CodeLoadoutDuplicateCard         = "LOADOUT_DUPLICATE_CARD"
	CodeCatalogInvalidFilter         = "CATALOG_INVALID_FILTER"
	CodeCatalogInvalidPageToken      = "CATALOG_INVALID_PAGE_TOKEN"
	CodeCatalogUnavailable           = "CATALOG_UNAVAILABLE"
	CodeNotFound                     = "NOT_FOUND"
)

var enUSMessages = map[Code]string{
	CodeInvalidRequest:               "The request could not be read: {{.Reason}}",
	CodeMethodNotAllowed:             "Method {{.Method}} is not allowed here",
	CodeThresholdNotNumber:           "Major and Severe must be whole numbers",
	CodeThresholdNegative:            "Thresholds cannot be negative",
	CodeThresholdSevereBelowMajor:    "Severe must be ≥ Major",
	CodeThresholdDSNotNumber:         "Major Damage must be a whole number",
	CodeThresholdDSNegative:          "Major Damage cannot be negative",
	CodeThresholdDSBelowSevere:       "Major Damage must be ≥ Severe",
	CodeDaggerheartInvalidThresholds: "Severe threshold must be at least the Major threshold, and neither may be negative",
	CodeDaggerheartInvalidLevel:      "Level must be between 1 and 10",
	CodeLoadoutFull:                  "The loadout already holds the maximum number of cards",
	CodeLoadoutCardNotFound:          "Card {{.CardID}} is not in the expected zone",
	CodeLoadoutDuplicateCard:         "Card {{.CardID}} appears in both the loadout and the vault",
	CodeCatalogInvalidFilter:         "The filter expression is invalid: {{.Reason}}",
	CodeCatalogInvalidPageToken:      "The page token is invalid",
	CodeCatalogUnavailable:           "The card catalog is not available",
	CodeNotFound:                     "{{if .CardID}}Domain card {{.CardID}} not found{{else}}Not found{{end}}",
}

var ptBRMessages = map[Code]string{
	CodeInvalidRequest:               "Não foi possível ler a requisição: {{.Reason}}",
	CodeMethodNotAllowed:             "O método {{.Method}} não é permitido aqui",
	CodeThresholdNotNumber:           "Maior e Severo devem ser números inteiros",
	CodeThresholdNegative:            "Limiares não podem ser negativos",
	CodeThresholdSevereBelowMajor:    "Severo deve ser ≥ Maior",
	CodeThresholdDSNotNumber:         "Dano Massivo deve ser um número inteiro",
	CodeThresholdDSNegative:          "Dano Massivo não pode ser negativo",
	CodeThresholdDSBelowSevere:       "Dano Massivo deve ser ≥ Severo",
	CodeDaggerheartInvalidThresholds: "O limiar Severo deve ser pelo menos o Maior, e nenhum pode ser negativo",
	CodeDaggerheartInvalidLevel:      "O nível deve estar entre 1 e 10",
	CodeLoadoutFull:                  "O equipamento já contém o número máximo de cartas",
	CodeLoadoutCardNotFound:          "A carta {{.CardID}} não está na zona esperada",
	CodeLoadoutDuplicateCard:         "A carta {{.CardID}} aparece no equipamento e no cofre",
	CodeCatalogInvalidFilter:         "A expressão de filtro é inválida: {{.Reason}}",
	CodeCatalogInvalidPageToken:      "O token de página é inválido",
	CodeCatalogUnavailable:           "O catálogo de cartas não está disponível",
	CodeNotFound:                     "{{if .CardID}}Carta de domínio {{.CardID}} não encontrada{{else}}Não encontrado{{end}}",
}

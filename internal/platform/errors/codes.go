// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Request errors
	CodeInvalidRequest   Code = "INVALID_REQUEST"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"

	// Threshold validation errors
	CodeThresholdNotNumber        Code = "THRESHOLD_NOT_NUMBER"
	CodeThresholdNegative         Code = "THRESHOLD_NEGATIVE"
	CodeThresholdSevereBelowMajor Code = "THRESHOLD_SEVERE_BELOW_MAJOR"
	CodeThresholdDSNotNumber      Code = "THRESHOLD_DS_NOT_NUMBER"
	CodeThresholdDSNegative       Code = "THRESHOLD_DS_NEGATIVE"
	CodeThresholdDSBelowSevere    Code = "THRESHOLD_DS_BELOW_SEVERE"

	// Daggerheart rules errors
	CodeDaggerheartInvalidThresholds Code = "DAGGERHEART_INVALID_THRESHOLDS"
	CodeDaggerheartInvalidLevel      Code = "DAGGERHEART_INVALID_LEVEL"

	// Loadout errors
	CodeLoadoutFull          Code = "LOADOUT_FULL"
	CodeLoadoutCardNotFound  Code = "LOADOUT_CARD_NOT_FOUND"
	CodeLoadoutDuplicateCard Code = "LOADOUT_DUPLICATE_CARD"

	// Catalog errors
	CodeCatalogInvalidFilter    Code = "CATALOG_INVALID_FILTER"
	CodeCatalogInvalidPageToken Code = "CATALOG_INVALID_PAGE_TOKEN"
	CodeCatalogUnavailable      Code = "CATALOG_UNAVAILABLE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeInvalidRequest,
		CodeThresholdNotNumber,
		CodeThresholdNegative,
		CodeThresholdSevereBelowMajor,
		CodeThresholdDSNotNumber,
		CodeThresholdDSNegative,
		CodeThresholdDSBelowSevere,
		CodeDaggerheartInvalidThresholds,
		CodeDaggerheartInvalidLevel,
		CodeLoadoutDuplicateCard,
		CodeCatalogInvalidFilter,
		CodeCatalogInvalidPageToken:
		return http.StatusBadRequest

	// Conflict - state doesn't allow operation
	case CodeLoadoutFull:
		return http.StatusConflict

	case CodeNotFound,
		CodeLoadoutCardNotFound:
		return http.StatusNotFound

	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed

	case CodeCatalogUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
	"github.com/louisbranch/sheetkeeper/internal/platform/errors/i18n"
	"golang.org/x/text/language"
)

const maxBodyBytes = 1 << 20

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError renders err as {code, message}. Coded errors are localized;
// anything else is logged and reported as UNKNOWN.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    apperrors.CodeUnknown,
			Message: "internal error",
		})
		return
	}
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	catalog := i18n.GetCatalog(requestLocale(r))
	w.Header().Set("Content-Language", catalog.Tag().String())
	writeJSON(w, appErr.HTTPStatus(), errorResponse{
		Code:    appErr.Code,
		Message: localize(catalog, appErr),
	})
}

// requestLocale prefers ?lang= over Accept-Language.
func requestLocale(r *http.Request) language.Tag {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return i18n.ParseAcceptLanguage(lang)
	}
	return i18n.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
}

func localize(catalog *i18n.Catalog, err *apperrors.Error) string {
	if catalog.Has(string(err.Code)) {
		return catalog.Format(string(err.Code), err.Metadata)
	}
	return err.Message
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return invalidRequest(fmt.Sprintf("decode body: %v", err))
	}
	return nil
}

func invalidRequest(reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidRequest, reason, map[string]string{"Reason": reason})
}

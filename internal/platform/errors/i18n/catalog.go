// Package i18n provides localized messages for domain error codes.
package i18n

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	tag      language.Tag
	messages map[Code]string
}

var (
	catalogs = map[language.Tag]*Catalog{
		language.AmericanEnglish:     NewCatalog(language.AmericanEnglish, enUSMessages),
		language.BrazilianPortuguese: NewCatalog(language.BrazilianPortuguese, ptBRMessages),
	}
	supported = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher   = language.NewMatcher(supported)
)

// DefaultTag is the base locale every catalog falls back to.
var DefaultTag = language.AmericanEnglish

// Match picks the best supported tag for the preferred tags.
func Match(preferred ...language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultTag
	}
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return DefaultTag
	}
	return supported[index]
}

// ParseAcceptLanguage resolves an Accept-Language header or a bare locale
// value to a supported tag.
func ParseAcceptLanguage(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil {
		return DefaultTag
	}
	return Match(tags...)
}

// GetCatalog returns the catalog for the given locale.
// Falls back to en-US if the locale has no catalog.
func GetCatalog(tag language.Tag) *Catalog {
	if c, ok := catalogs[tag]; ok {
		return c
	}
	if c, ok := catalogs[Match(tag)]; ok {
		return c
	}
	return catalogs[DefaultTag]
}

// Tag returns the locale of this catalog.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// Has reports whether the catalog carries a template for code.
func (c *Catalog) Has(code Code) bool {
	_, ok := c.messages[code]
	return ok
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(tag language.Tag, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		tag:      tag,
		messages: cloned,
	}
}

// Package i18n provides localized user-facing messages for error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from the errors package
// to avoid an import cycle).
type Code = string

// BaseLocale is the locale every lookup falls back to.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// NewCatalog builds a catalog for a locale from a code-to-template map.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	if messages == nil {
		messages = map[Code]string{}
	}
	return &Catalog{locale: locale, messages: messages}
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{BaseLocale: enUSCatalog}

	matcherOnce sync.Once
	matcher     language.Matcher
	matcherTags []language.Tag
)

// GetCatalog returns the catalog best matching the given locale.
// Unknown or empty locales fall back to en-US.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}

	catalogsMu.RLock()
	defer catalogsMu.RUnlock()

	if c, ok := catalogs[requested]; ok {
		return c
	}

	tag, err := language.Parse(requested)
	if err != nil {
		return catalogs[BaseLocale]
	}
	_, index, _ := localeMatcher().Match(tag)
	if c, ok := catalogs[matcherTags[index].String()]; ok {
		return c
	}
	return catalogs[BaseLocale]
}

// localeMatcher builds the x/text matcher over registered catalog locales.
// The base locale is always first so it wins on no-match.
func localeMatcher() language.Matcher {
	matcherOnce.Do(func() {
		matcherTags = []language.Tag{language.MustParse(BaseLocale)}
		for locale := range catalogs {
			if locale == BaseLocale {
				continue
			}
			if tag, err := language.Parse(locale); err == nil {
				matcherTags = append(matcherTags, tag)
			}
		}
		matcher = language.NewMatcher(matcherTags)
	})
	return matcher
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template for a code with the given metadata.
// Falls back to the error code itself if no template is found or the
// template fails to render.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	raw, ok := c.messages[code]
	if !ok {
		return code
	}

	tmpl, err := template.New(code).Parse(raw)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return code
	}
	return buf.String()
}

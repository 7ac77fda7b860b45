// Package i18n provides the widget's translation lookup and display formatting.
package i18n

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Translator resolves translation keys for a locale.
type Translator struct {
	tables map[string]map[string]string
}

// NewTranslator returns a translator over the built-in en/es catalog.
func NewTranslator() *Translator {
	return &Translator{tables: catalog}
}

// T looks up key for locale: the exact locale first, then its base language,
// then English, then the key itself.
func (t *Translator) T(key, locale string) string {
	tables := catalog
	if t != nil && t.tables != nil {
		tables = t.tables
	}
	for _, candidate := range candidates(locale) {
		if table, ok := tables[candidate]; ok {
			if text, ok := table[key]; ok {
				return text
			}
		}
	}
	return key
}

// MonthName returns the localized month name.
func (t *Translator) MonthName(month time.Month, locale string) string {
	for _, candidate := range candidates(locale) {
		if names, ok := monthNames[candidate]; ok {
			return names[month-1]
		}
	}
	return month.String()
}

// WeekdayNames returns short weekday labels starting on Sunday.
func (t *Translator) WeekdayNames(locale string) []string {
	for _, candidate := range candidates(locale) {
		if names, ok := weekdayNames[candidate]; ok {
			return names[:]
		}
	}
	names := weekdayNames["en"]
	return names[:]
}

func candidates(locale string) []string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	out := make([]string, 0, 3)
	if normalized != "" {
		out = append(out, normalized)
		if base := baseLanguage(normalized); base != "" && base != normalized {
			out = append(out, base)
		}
	}
	return append(out, "en")
}

func baseLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		short, _, _ := strings.Cut(strings.ReplaceAll(locale, "_", "-"), "-")
		return short
	}
	base, _ := tag.Base()
	return base.String()
}

// Package datekey renders the calendar day into the identifier used to name
// daily record notes, and parses such identifiers back into days.
package datekey

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"golang.org/x/text/language"
)

const Default = "en-GB"

type kind int

const (
	kindLayout kind = iota
	kindStrftime
)

// Go layouts matching what a browser's toLocaleDateString produces for the
// locale once "/" has been swapped for "-".
var localeLayouts = map[string]string{
	"en-GB": "02-01-2006",
	"en-AU": "02-01-2006",
	"en-US": "1-2-2006",
	"en-CA": "2006-01-02",
	"de-DE": "2.1.2006",
	"fr-FR": "02-01-2006",
	"es-ES": "2-1-2006",
	"it-IT": "2-1-2006",
	"nl-NL": "2-1-2006",
	"pt-BR": "02-01-2006",
	"ru-RU": "02.01.2006",
	"sv-SE": "2006-01-02",
	"ja-JP": "2006-1-2",
	"zh-CN": "2006-1-2",
}

var languageDefaults = map[string]string{
	"en": "en-US",
	"de": "de-DE",
	"fr": "fr-FR",
	"es": "es-ES",
	"it": "it-IT",
	"nl": "nl-NL",
	"pt": "pt-BR",
	"ru": "ru-RU",
	"sv": "sv-SE",
	"ja": "ja-JP",
	"zh": "zh-CN",
}

// Format is a compiled date key format.
type Format struct {
	raw     string
	kind    kind
	pattern string
}

// Compile accepts a locale tag ("en-GB"), "iso", a strftime pattern ("%Y-%m-%d")
// or a Go reference layout ("2006-01-02").
func Compile(raw string) (Format, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = Default
	}
	switch {
	case strings.EqualFold(raw, "iso"):
		return Format{raw: raw, kind: kindLayout, pattern: "2006-01-02"}, nil
	case strings.Contains(raw, "%"):
		return probe(Format{raw: raw, kind: kindStrftime, pattern: dashed(raw)})
	case strings.Contains(raw, "2006"):
		return probe(Format{raw: raw, kind: kindLayout, pattern: dashed(raw)})
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return Format{}, fmt.Errorf("unknown date key format %q", raw)
	}
	if layout, ok := localeLayouts[tag.String()]; ok {
		return Format{raw: raw, kind: kindLayout, pattern: layout}, nil
	}
	base, _ := tag.Base()
	if fallback, ok := languageDefaults[base.String()]; ok {
		return Format{raw: raw, kind: kindLayout, pattern: localeLayouts[fallback]}, nil
	}
	return Format{}, fmt.Errorf("unsupported date locale %q", raw)
}

// probe rejects patterns whose keys cannot be parsed back into the same day.
func probe(f Format) (Format, error) {
	day := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)
	parsed, err := f.Parse(f.Render(day))
	if err != nil {
		return Format{}, fmt.Errorf("date key format %q does not round-trip: %w", f.raw, err)
	}
	if !parsed.Equal(day) {
		return Format{}, fmt.Errorf("date key format %q does not name a single day", f.raw)
	}
	return f, nil
}

func MustCompile(raw string) Format {
	f, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Format) String() string {
	return f.raw
}

func (f Format) Render(t time.Time) string {
	if f.kind == kindStrftime {
		return dashed(strftime.Format(f.pattern, t))
	}
	return t.Format(f.pattern)
}

// Parse returns midnight UTC of the day named by key.
func (f Format) Parse(key string) (time.Time, error) {
	var (
		t   time.Time
		err error
	)
	if f.kind == kindStrftime {
		t, err = strftime.Parse(f.pattern, key)
	} else {
		t, err = time.Parse(f.pattern, key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func dashed(s string) string {
	return strings.ReplaceAll(s, "/", "-")
}

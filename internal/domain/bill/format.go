package bill

import (
	"fmt"
	"strings"
)

type Language string

const (
	LanguageDE Language = "de"
	LanguageFR Language = "fr"
	LanguageIT Language = "it"
	LanguageRM Language = "rm"
	LanguageEN Language = "en"
)

func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case LanguageDE, LanguageFR, LanguageIT, LanguageRM, LanguageEN:
		return l, nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

type OutputFormat int

const (
	OutputSVG OutputFormat = iota
	OutputPNG
)

func (f OutputFormat) ContentType() string {
	if f == OutputPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f OutputFormat) Filename() string {
	if f == OutputPNG {
		return "qrbill.png"
	}
	return "qrbill.svg"
}

func (f OutputFormat) String() string {
	if f == OutputPNG {
		return "png"
	}
	return "svg"
}

const (
	DefaultFontFamily = `Helvetica,Arial,"Liberation Sans"`
	DefaultDPI        = 300
	MinDPI            = 72
	MaxDPI            = 1200
)

// Format carries the rendering options that apply to every bill.
// FontFamily only affects SVG output; raster output uses the bundled fonts.
type Format struct {
	Language   Language
	FontFamily string
	DPI        int
}

func DefaultFormat() Format {
	return Format{
		Language:   LanguageDE,
		FontFamily: DefaultFontFamily,
		DPI:        DefaultDPI,
	}
}

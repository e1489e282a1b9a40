// Package numeral parses grouped decimal numbers such as "1,000,000" or
// "1.000.000,5" using an explicit separator format instead of the process
// locale, so the same input parses the same way everywhere.
package numeral

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/agentstation/holocron/pkg/errors"
)

// Format describes the separators of a numeral.
type Format struct {
	Group   rune // digit group separator, 0 disables grouping
	Decimal rune // decimal separator
}

// US is the format used by the catalog API: "342,953" or "1,000.5".
var US = Format{Group: ',', Decimal: '.'}

// Validate checks that the separators are usable.
func (f Format) Validate() error {
	switch {
	case f.Decimal == 0:
		return errors.NewValidationError("decimal", f.Decimal, "decimal separator is required")
	case f.Group == f.Decimal:
		return errors.NewValidationError("group", string(f.Group), "group and decimal separators must differ")
	case unicode.IsDigit(f.Group) || unicode.IsDigit(f.Decimal):
		return errors.NewValidationError("group", string(f.Group), "separators cannot be digits")
	}
	return nil
}

// ForLocale returns the format conventionally used by a BCP 47 tag such as
// "en-US", "de-DE" or "fr". Unknown languages fall back to US.
func ForLocale(tag string) (Format, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Format{}, errors.NewConfigError("numeral", "invalid locale "+strconv.Quote(tag), err)
	}
	base, _ := t.Base()
	region, _ := t.Region()

	if region.String() == "CH" || region.String() == "LI" {
		return Format{Group: '\'', Decimal: '.'}, nil
	}
	switch base.String() {
	case "de", "es", "it", "nl", "pt", "da", "id", "tr", "el", "ro", "sl", "hr":
		return Format{Group: '.', Decimal: ','}, nil
	case "fr", "ru", "pl", "cs", "sk", "sv", "fi", "nb", "no", "uk", "hu", "bg", "lt", "lv", "et":
		return Format{Group: ' ', Decimal: ','}, nil
	}
	return US, nil
}

// ParseInt parses s and truncates any fractional part toward zero.
func (f Format) ParseInt(s string) (int64, error) {
	intDigits, _, negative, err := f.split(s)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(intDigits, 10, 64)
	if err != nil {
		return 0, parseError(s, "value out of range", err)
	}
	if negative {
		n = -n
	}
	return n, nil
}

// ParseFloat parses s as a float64.
func (f Format) ParseFloat(s string) (float64, error) {
	intDigits, fracDigits, negative, err := f.split(s)
	if err != nil {
		return 0, err
	}
	literal := intDigits
	if fracDigits != "" {
		literal += "." + fracDigits
	}
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, parseError(s, "value out of range", err)
	}
	if negative {
		v = -v
	}
	return v, nil
}

// split validates s and returns the integer digits without separators and
// the fractional digits.
func (f Format) split(s string) (intDigits, fracDigits string, negative bool, err error) {
	text := normalize(s)
	if text == "" {
		return "", "", false, parseError(s, "empty input", nil)
	}

	switch text[0] {
	case '-':
		negative = true
		text = text[1:]
	case '+':
		text = text[1:]
	}

	intText, fracText, hasDecimal := strings.Cut(text, string(f.Decimal))
	if hasDecimal {
		if fracText == "" {
			return "", "", false, parseError(s, "missing digits after decimal separator", nil)
		}
		for _, r := range fracText {
			if r < '0' || r > '9' {
				return "", "", false, parseError(s, "unexpected character "+strconv.QuoteRune(r), nil)
			}
		}
	}

	var b strings.Builder
	prevDigit := false
	for _, r := range intText {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDigit = true
		case f.isGroup(r):
			if !prevDigit {
				return "", "", false, parseError(s, "misplaced group separator", nil)
			}
			prevDigit = false
		default:
			return "", "", false, parseError(s, "unexpected character "+strconv.QuoteRune(r), nil)
		}
	}
	if !prevDigit {
		if b.Len() == 0 {
			return "", "", false, parseError(s, "no digits", nil)
		}
		return "", "", false, parseError(s, "misplaced group separator", nil)
	}
	return b.String(), fracText, negative, nil
}

func (f Format) isGroup(r rune) bool {
	if f.Group == 0 {
		return false
	}
	if r == f.Group {
		return true
	}
	// Space grouping shows up as no-break or narrow no-break spaces too.
	return f.Group == ' ' && (r == '\u00a0' || r == '\u202f')
}

// normalize folds full-width digits and punctuation to their ASCII forms and trims space.
func normalize(s string) string {
	return strings.TrimSpace(width.Narrow.String(s))
}

func parseError(input, message string, err error) error {
	return errors.NewParseError("numeral", strconv.Quote(input), message, err)
}

package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeName uppercases, collapses whitespace, and trims the input.
func NormalizeName(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	s = multiSpace.ReplaceAllString(s, " ")
	return cases.Upper(language.Spanish).String(s)
}

// foldVowels maps the accented uppercase vowels to plain ASCII. Ñ is kept.
var foldVowels = runes.Map(func(r rune) rune {
	switch r {
	case 'Á':
		return 'A'
	case 'É':
		return 'E'
	case 'Í':
		return 'I'
	case 'Ó':
		return 'O'
	case 'Ú':
		return 'U'
	}
	return r
})

// NormalizeMunicipality prepares a free-text municipality name for reference
// lookup: trimmed, uppercased, accented vowels folded, Ñ retained.
func NormalizeMunicipality(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	s = multiSpace.ReplaceAllString(s, " ")
	t := transform.Chain(norm.NFC, cases.Upper(language.Spanish), foldVowels)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToUpper(s)
	}
	return out
}

// NormalizeHeader lowercases a column header, strips diacritics, and joins
// words with underscores: "Fecha Atención" -> "fecha_atencion".
func NormalizeHeader(v string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(v))
	if err != nil {
		s = strings.TrimSpace(v)
	}
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", ".", " ").Replace(s)
	return strings.Join(strings.Fields(s), "_")
}

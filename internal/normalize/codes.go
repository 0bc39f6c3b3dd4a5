package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// NormalizeCode trims whitespace, uppercases, and strips non-alphanumeric characters.
// Diagnosis codes such as "j06.9" become "J069".
func NormalizeCode(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	return nonAlphanumeric.ReplaceAllString(s, "")
}

// NormalizeID trims an identification value. Numeric cells stored by the
// spreadsheet as floats ("1234.0", "1.0203E+9") are rendered as integers.
func NormalizeID(v string) string {
	s := strings.ReplaceAll(strings.TrimSpace(v), " ", "")
	if strings.ContainsAny(s, "eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return strconv.FormatFloat(f, 'f', 0, 64)
		}
	}
	return strings.TrimSuffix(s, ".0")
}

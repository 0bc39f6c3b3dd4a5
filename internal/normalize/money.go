package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a billing amount cell into whole pesos. Either "." or
// "," may group thousands. When both appear the last one is the decimal mark
// ("$ 35.000,50", "1,500.25"); when only one appears it groups thousands if
// it repeats or is followed by exactly three digits ("35.000", "1,500,000"),
// otherwise it is the decimal mark. Empty input returns nil.
func ParseAmount(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, nil
	}
	if strings.ContainsAny(s, "eE") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q", s)
		}
		return round(v)
	}

	v, err := strconv.ParseFloat(canonicalAmount(s), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return round(v)
}

// canonicalAmount drops thousands marks and rewrites the decimal mark as ".".
func canonicalAmount(s string) string {
	dot, comma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')
	switch {
	case dot >= 0 && comma >= 0:
		dec, group := byte('.'), ","
		if comma > dot {
			dec, group = ',', "."
		}
		s = strings.ReplaceAll(s, group, "")
		return strings.Replace(s, string(dec), ".", 1)
	case dot >= 0:
		return singleSeparator(s, ".")
	case comma >= 0:
		return singleSeparator(s, ",")
	}
	return s
}

func singleSeparator(s, sep string) string {
	if strings.Count(s, sep) > 1 || groupsThousands(s, sep) {
		return strings.ReplaceAll(s, sep, "")
	}
	return strings.Replace(s, sep, ".", 1)
}

// groupsThousands reports whether s looks like "35.000" or "1,500": one
// separator followed by exactly three digits.
func groupsThousands(s, sep string) bool {
	i := strings.Index(s, sep)
	return i > 0 && len(s)-i-1 == 3
}

func round(v float64) (*int64, error) {
	if v < 0 {
		return nil, fmt.Errorf("negative amount %v", v)
	}
	c := int64(math.Round(v))
	return &c, nil
}

package period

import (
	"fmt"
	"strconv"
	"time"
)

// Period identifies one monthly reporting window.
type Period struct {
	Month int
	Year  int
}

// SpanishMonths is the default month-name table used in archive names.
var SpanishMonths = map[string]string{
	"01": "ENERO",
	"02": "FEBRERO",
	"03": "MARZO",
	"04": "ABRIL",
	"05": "MAYO",
	"06": "JUNIO",
	"07": "JULIO",
	"08": "AGOSTO",
	"09": "SEPTIEMBRE",
	"10": "OCTUBRE",
	"11": "NOVIEMBRE",
	"12": "DICIEMBRE",
}

// Parse validates a two-digit month ("01".."12") and a four-digit year.
func Parse(month, year string) (Period, error) {
	if len(month) != 2 {
		return Period{}, fmt.Errorf("month must be two digits, got %q", month)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return Period{}, fmt.Errorf("month must be 01-12, got %q", month)
	}
	if len(year) != 4 {
		return Period{}, fmt.Errorf("year must be four digits, got %q", year)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1900 {
		return Period{}, fmt.Errorf("invalid year %q", year)
	}
	return Period{Month: m, Year: y}, nil
}

// MonthCode returns the zero-padded month, e.g. "06".
func (p Period) MonthCode() string {
	return fmt.Sprintf("%02d", p.Month)
}

// Code returns the period code MMYYYY.
func (p Period) Code() string {
	return fmt.Sprintf("%02d%04d", p.Month, p.Year)
}

func (p Period) String() string {
	return p.Code()
}

// LastDay returns the last calendar day of the month.
func (p Period) LastDay() int {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Start returns the first instant of the period in UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight of the last day of the period in UTC.
func (p Period) End() time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.LastDay(), 0, 0, 0, 0, time.UTC)
}

// StartDate formats the first day as DD/MM/YYYY.
func (p Period) StartDate() string {
	return fmt.Sprintf("01/%02d/%04d", p.Month, p.Year)
}

// EndDate formats the last day as DD/MM/YYYY.
func (p Period) EndDate() string {
	return fmt.Sprintf("%02d/%02d/%04d", p.LastDay(), p.Month, p.Year)
}

// FileCode returns the per-file code cited in CT, e.g. "AC062024".
func (p Period) FileCode(prefix string) string {
	return prefix + p.Code()
}

// FileName returns the report file name for a prefix, e.g. "AC062024.txt".
func (p Period) FileName(prefix string) string {
	return p.FileCode(prefix) + ".txt"
}

// MonthName looks up the localized month name, falling back to SpanishMonths.
func (p Period) MonthName(names map[string]string) string {
	if n, ok := names[p.MonthCode()]; ok && n != "" {
		return n
	}
	return SpanishMonths[p.MonthCode()]
}

// ArchiveName returns UIRIPS<MONTH_NAME><PROVIDER_CODE>.zip.
func (p Period) ArchiveName(names map[string]string, providerCode string) string {
	return "UIRIPS" + p.MonthName(names) + providerCode + ".zip"
}

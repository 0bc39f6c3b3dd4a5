// Package derive computes the per-record RIPS fields from a source record:
// age and age unit, document type and number, and split name components.
// Every function is pure; "now" is supplied by the caller.
package derive

import (
	"time"

	"github.com/gyeh/ripsgen/internal/model"
)

// Diff is a calendar difference between two dates.
type Diff struct {
	Years  int
	Months int // 0-11
	Days   int
}

// CalendarDiff returns the calendar difference from birth to now. Months are
// added with end-of-month clamping (Jan 31 + 1 month = Feb 28/29); the days
// left over after the last whole month are counted exactly. A birth date
// after now yields a zero Diff.
func CalendarDiff(now, birth time.Time) Diff {
	now = dateOnly(now)
	birth = dateOnly(birth)
	if !birth.Before(now) {
		return Diff{}
	}

	months := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if addMonths(birth, months).After(now) {
		months--
	}
	anchor := addMonths(birth, months)
	days := int(now.Sub(anchor).Hours() / 24)

	return Diff{Years: months / 12, Months: months % 12, Days: days}
}

// WholeYears returns the number of completed years between birth and now.
func WholeYears(now, birth time.Time) int {
	return CalendarDiff(now, birth).Years
}

// Age returns the US age value and unit under the given rule.
//
//	detailed: years if >= 1, else months if >= 1, else days
//	months:   years if >= 1, else months (possibly 0)
func Age(now, birth time.Time, rule model.AgeRule) (int, model.AgeUnit) {
	d := CalendarDiff(now, birth)
	if d.Years >= 1 {
		return d.Years, model.AgeUnitYears
	}
	if rule == model.AgeRuleMonths || d.Months >= 1 {
		return d.Months, model.AgeUnitMonths
	}
	return d.Days, model.AgeUnitDays
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addMonths adds n months to t, clamping the day to the target month's length.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

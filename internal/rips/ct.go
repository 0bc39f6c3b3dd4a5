package rips

import (
	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/period"
)

// Counts are the final row counts of the files CT reports on.
type Counts struct {
	AC int
	US int
	AF int
}

// BuildCT produces the three control lines, one per AC, US and AF file, in
// that order.
func BuildCT(p period.Period, counts Counts, clinic *config.Clinic) []model.CTRecord {
	line := func(fk model.FileKind, n int) model.CTRecord {
		return model.CTRecord{
			ProviderCode:  clinic.ProviderCode,
			RemissionDate: p.EndDate(),
			FileCode:      p.FileCode(fk.Prefix),
			Records:       n,
		}
	}
	return []model.CTRecord{
		line(model.FileAC, counts.AC),
		line(model.FileUS, counts.US),
		line(model.FileAF, counts.AF),
	}
}

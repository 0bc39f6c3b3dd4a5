package rips

import (
	"fmt"
	"time"

	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/derive"
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/period"
	"github.com/gyeh/ripsgen/internal/reference"
)

// Input is everything one report is derived from.
type Input struct {
	Period   period.Period
	Now      time.Time
	Variant  model.Variant
	Records  []model.SourceRecord
	Resolver *reference.Resolver
	Clinic   *config.Clinic
}

// Report holds the four finalized record sets plus the per-record
// intermediate values, which the snapshot writer reuses.
type Report struct {
	Period    period.Period
	Variant   model.Variant
	AC        []model.ACRecord
	US        []model.USRecord
	AF        []model.AFRecord
	CT        []model.CTRecord
	Derived   []derive.Derived
	Locations []reference.Location
}

// Build derives every record and assembles the four files. AC, US and AF are
// complete before CT counts them.
func Build(in *Input) (*Report, error) {
	if in.Clinic == nil {
		return nil, fmt.Errorf("clinic profile is required")
	}
	resolver := in.Resolver
	if resolver == nil {
		resolver = reference.NewResolver(nil, reference.Entry{
			DepartmentCode:   in.Clinic.DefaultDepartment,
			MunicipalityCode: in.Clinic.DefaultMunicipality,
		})
	}

	clinic := *in.Clinic
	invoice, err := InvoiceNumber(in.Records, in.Variant, clinic.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	clinic.InvoiceNumber = invoice

	engine := derive.NewEngine(in.Now, in.Variant, clinic.AgeRule)
	derived, err := engine.DeriveAll(in.Records)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}
	locs := resolver.ResolveAll(in.Records, in.Variant)

	ac := BuildAC(in.Records, derived, in.Variant, &clinic)
	us := BuildUS(in.Records, derived, ac, locs, &clinic)
	af := []model.AFRecord{BuildAF(in.Period, ac, in.Variant, &clinic)}
	ct := BuildCT(in.Period, Counts{AC: len(ac), US: len(us), AF: len(af)}, &clinic)

	return &Report{
		Period:    in.Period,
		Variant:   in.Variant,
		AC:        ac,
		US:        us,
		AF:        af,
		CT:        ct,
		Derived:   derived,
		Locations: locs,
	}, nil
}

// Rows returns the records of one file as string rows, ready to write.
func (r *Report) Rows(fk model.FileKind) [][]string {
	var rows [][]string
	switch fk.Prefix {
	case model.FileAC.Prefix:
		rows = make([][]string, len(r.AC))
		for i := range r.AC {
			rows[i] = r.AC[i].Fields()
		}
	case model.FileUS.Prefix:
		rows = make([][]string, len(r.US))
		for i := range r.US {
			rows[i] = r.US[i].Fields()
		}
	case model.FileAF.Prefix:
		rows = make([][]string, len(r.AF))
		for i := range r.AF {
			rows[i] = r.AF[i].Fields()
		}
	case model.FileCT.Prefix:
		rows = make([][]string, len(r.CT))
		for i := range r.CT {
			rows[i] = r.CT[i].Fields()
		}
	}
	return rows
}

// Count returns the number of records in one file.
func (r *Report) Count(fk model.FileKind) int {
	return len(r.Rows(fk))
}

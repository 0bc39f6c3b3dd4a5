// Package reference resolves municipality names to DANE department and
// municipality codes.
package reference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/normalize"
	"github.com/gyeh/ripsgen/internal/sheet"
)

// Entry is a department/municipality code pair.
type Entry struct {
	DepartmentCode   string
	MunicipalityCode string
}

// Table maps normalized municipality names to codes.
type Table map[string]Entry

// NewTable builds a Table from reference rows. Names are normalized the same
// way source rows are. A name listed twice with different codes is an error;
// exact repeats are tolerated.
func NewTable(rows []sheet.ReferenceRow) (Table, error) {
	t := make(Table, len(rows))
	for _, r := range rows {
		name := normalize.NormalizeMunicipality(r.MunicipalityName)
		if name == "" {
			return nil, fmt.Errorf("reference row %d: empty municipality name", r.Number)
		}
		e := Entry{
			DepartmentCode:   padCode(r.DepartmentCode, 2),
			MunicipalityCode: padCode(r.MunicipalityCode, 3),
		}
		if prev, ok := t[name]; ok && prev != e {
			return nil, fmt.Errorf("reference row %d: municipality %q maps to both %s/%s and %s/%s",
				r.Number, name, prev.DepartmentCode, prev.MunicipalityCode, e.DepartmentCode, e.MunicipalityCode)
		}
		t[name] = e
	}
	return t, nil
}

// Load reads the reference workbook at path into a Table.
func Load(path string) (Table, error) {
	rows, err := sheet.ReadReference(path, "")
	if err != nil {
		return nil, fmt.Errorf("load reference: %w", err)
	}
	return NewTable(rows)
}

// padCode left-pads numeric codes that lost their leading zeros in the
// spreadsheet ("5" -> "05").
func padCode(code string, width int) string {
	code = normalize.NormalizeID(code)
	if len(code) >= width {
		return code
	}
	return strings.Repeat("0", width-len(code)) + code
}

// Resolver looks up municipalities and records every fallback to the
// default pair. It is not safe for concurrent use.
type Resolver struct {
	table    Table
	fallback Entry
	misses   map[string]int
}

// NewResolver returns a Resolver over table that falls back to def. A nil
// table resolves everything to def.
func NewResolver(table Table, def Entry) *Resolver {
	return &Resolver{table: table, fallback: def, misses: make(map[string]int)}
}

// Resolve returns the codes for an already-normalized municipality name. On
// a miss it returns the default pair with matched=false and counts the miss.
func (r *Resolver) Resolve(name string) (Entry, bool) {
	if e, ok := r.table[name]; ok {
		return e, true
	}
	r.misses[name]++
	return r.fallback, false
}

// Default returns the fallback pair.
func (r *Resolver) Default() Entry {
	return r.fallback
}

// Misses returns the unmatched names with their record counts, sorted by
// name. Blank names are reported as "".
func (r *Resolver) Misses() []model.ReferenceMiss {
	out := make([]model.ReferenceMiss, 0, len(r.misses))
	for name, n := range r.misses {
		out = append(out, model.ReferenceMiss{Municipality: name, Records: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Municipality < out[j].Municipality })
	return out
}

// Location is the resolved residence of one source record.
type Location struct {
	Entry
	Matched bool
}

// ResolveAll resolves every record in order. When the variant carries no
// municipality column every record gets the default pair and nothing is
// counted as a miss.
func (r *Resolver) ResolveAll(recs []model.SourceRecord, v model.Variant) []Location {
	out := make([]Location, len(recs))
	for i := range recs {
		if !v.HasMunicipality {
			out[i] = Location{Entry: r.fallback}
			continue
		}
		e, ok := r.Resolve(recs[i].Municipality)
		out[i] = Location{Entry: e, Matched: ok}
	}
	return out
}

package derive

import (
	"fmt"
	"time"

	"github.com/gyeh/ripsgen/internal/model"
)

// Derived holds every computed field for one source record.
type Derived struct {
	Years          int // whole years, drives document type
	Age            int
	AgeUnit        model.AgeUnit
	DocumentType   model.DocumentType
	DocumentNumber string
	Name           Name
}

// Engine derives fields for one run. Rule overrides the variant's age rule
// when set.
type Engine struct {
	Now     time.Time
	Variant model.Variant
	Rule    model.AgeRule
}

// NewEngine returns an Engine for the variant. An empty rule keeps the
// variant's own age rule.
func NewEngine(now time.Time, v model.Variant, rule model.AgeRule) *Engine {
	if rule == "" {
		rule = v.AgeRule
	}
	return &Engine{Now: now, Variant: v, Rule: rule}
}

// Derive computes the fields for rec.
func (e *Engine) Derive(rec *model.SourceRecord) (Derived, error) {
	name, err := SplitName(rec.FullName)
	if err != nil {
		return Derived{}, err
	}
	if dateOnly(rec.BirthDate).After(dateOnly(e.Now)) {
		return Derived{}, fmt.Errorf("birth date %s is after generation date %s",
			rec.BirthDate.Format("2006-01-02"), e.Now.Format("2006-01-02"))
	}

	years := WholeYears(e.Now, rec.BirthDate)
	age, unit := Age(e.Now, rec.BirthDate, e.Rule)

	return Derived{
		Years:          years,
		Age:            age,
		AgeUnit:        unit,
		DocumentType:   DocumentType(rec, years, e.Variant),
		DocumentNumber: DocumentNumber(rec),
		Name:           name,
	}, nil
}

// DeriveAll derives every record in order. The first failure is returned
// with the offending record's row number.
func (e *Engine) DeriveAll(recs []model.SourceRecord) ([]Derived, error) {
	out := make([]Derived, len(recs))
	for i := range recs {
		d, err := e.Derive(&recs[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", recs[i].RowNumber, err)
		}
		out[i] = d
	}
	return out, nil
}

// Package load coerces raw spreadsheet rows into model.SourceRecord values.
package load

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gyeh/ripsgen/internal/derive"
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/normalize"
	"github.com/gyeh/ripsgen/internal/sheet"
)

// RowError identifies an input row that could not become a SourceRecord.
type RowError struct {
	Row    int
	Column string // empty when the error is not tied to one column
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ErrRequired marks an empty required cell.
var ErrRequired = errors.New("value is required")

// ToSourceRecord converts one raw row. now is the generation instant; its
// calendar day is used to reject birth dates in the future.
func ToSourceRecord(raw sheet.RawRow, v model.Variant, now time.Time) (*model.SourceRecord, error) {
	rowErr := func(col string, err error) error {
		return &RowError{Row: raw.Number, Column: col, Err: err}
	}

	visit, err := requiredDate(raw, sheet.ColVisitDate)
	if err != nil {
		return nil, rowErr(sheet.ColVisitDate, err)
	}
	birth, err := requiredDate(raw, sheet.ColBirthDate)
	if err != nil {
		return nil, rowErr(sheet.ColBirthDate, err)
	}
	if birth.After(normalize.TruncateDay(now)) {
		return nil, rowErr(sheet.ColBirthDate, fmt.Errorf("birth date %s is in the future", birth.Format("2006-01-02")))
	}
	if birth.After(visit) {
		return nil, rowErr(sheet.ColBirthDate, fmt.Errorf("birth date %s is after visit date %s",
			birth.Format("2006-01-02"), visit.Format("2006-01-02")))
	}

	name := normalize.NormalizeName(raw.Get(sheet.ColName))
	if name == "" {
		return nil, rowErr(sheet.ColName, ErrRequired)
	}
	if _, err := derive.SplitName(name); err != nil {
		return nil, rowErr(sheet.ColName, err)
	}

	dx := normalize.NormalizeCode(raw.Get(sheet.ColDiagnosis))
	if dx == "" {
		return nil, rowErr(sheet.ColDiagnosis, ErrRequired)
	}

	rec := &model.SourceRecord{
		RowNumber:            raw.Number,
		VisitDate:            visit,
		BirthDate:            birth,
		FullName:             name,
		Sex:                  raw.Get(sheet.ColSex),
		NationalID:           normalize.NormalizeID(raw.Get(sheet.ColNationalID)),
		InternalRecordNumber: normalize.NormalizeID(raw.Get(sheet.ColRecordNumber)),
		DiagnosisCode:        dx,
	}
	if rec.NationalID == "" && rec.InternalRecordNumber == "" {
		return nil, rowErr("", fmt.Errorf("neither %s nor %s is set", sheet.ColNationalID, sheet.ColRecordNumber))
	}

	if v.HasDocumentHint {
		rec.DocumentTypeHint = raw.Get(sheet.ColDocumentHint)
	}
	if v.HasMunicipality {
		rec.Municipality = normalize.NormalizeMunicipality(raw.Get(sheet.ColMunicipality))
	}
	if v.HasBilling {
		rec.InvoiceNumber = raw.Get(sheet.ColInvoice)
		rec.AuthorizationNumber = raw.Get(sheet.ColAuthorization)
		amount, err := normalize.ParseAmount(raw.Get(sheet.ColAmount))
		if err != nil {
			return nil, rowErr(sheet.ColAmount, err)
		}
		rec.BillingAmount = amount
	}
	return rec, nil
}

func requiredDate(raw sheet.RawRow, col string) (time.Time, error) {
	s := raw.Get(col)
	if s == "" {
		return time.Time{}, ErrRequired
	}
	return normalize.ParseDate(s)
}

// Result holds the accepted records and the rows that were rejected.
type Result struct {
	Records  []model.SourceRecord
	Rejected []*RowError
}

// Records converts every row, collecting per-row failures instead of stopping
// at the first one. Accepted records keep input order.
func Records(rows []sheet.RawRow, v model.Variant, now time.Time) *Result {
	res := &Result{Records: make([]model.SourceRecord, 0, len(rows))}
	for _, raw := range rows {
		rec, err := ToSourceRecord(raw, v, now)
		if err != nil {
			var re *RowError
			if !errors.As(err, &re) {
				re = &RowError{Row: raw.Number, Err: err}
			}
			res.Rejected = append(res.Rejected, re)
			continue
		}
		res.Records = append(res.Records, *rec)
	}
	return res
}

// RejectedError aggregates rejected rows into a single fatal error.
type RejectedError struct {
	Rows []*RowError
}

func (e *RejectedError) Error() string {
	const show = 5
	msgs := make([]string, 0, show)
	for i, r := range e.Rows {
		if i == show {
			msgs = append(msgs, fmt.Sprintf("and %d more", len(e.Rows)-show))
			break
		}
		msgs = append(msgs, r.Error())
	}
	return fmt.Sprintf("%d invalid row(s): %s", len(e.Rows), strings.Join(msgs, "; "))
}

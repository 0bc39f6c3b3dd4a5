// Package snapshot writes a Parquet audit of how every source record was
// derived in a run, for later analysis of fallbacks and document typing.
package snapshot

import (
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/normalize"
	"github.com/gyeh/ripsgen/internal/rips"
)

// Row is one source record's derivation.
type Row struct {
	RunID       string `parquet:"run_id"`
	InputSHA256 string `parquet:"input_sha256"`
	Period      string `parquet:"period"`
	Variant     string `parquet:"variant"`

	RowNumber      int64  `parquet:"row_number"`
	VisitDate      string `parquet:"visit_date"`
	DocumentType   string `parquet:"document_type"`
	DocumentNumber string `parquet:"document_number"`
	Age            int32  `parquet:"age"`
	AgeUnit        string `parquet:"age_unit"`
	DiagnosisCode  string `parquet:"diagnosis_code"`

	Municipality     *string `parquet:"municipality,optional"`
	DepartmentCode   string  `parquet:"department_code"`
	MunicipalityCode string  `parquet:"municipality_code"`
	ReferenceMatched bool    `parquet:"reference_matched"`

	BillingAmount *int64 `parquet:"billing_amount,optional"`
}

// Meta identifies the run a snapshot belongs to.
type Meta struct {
	RunID       string
	InputSHA256 string
}

// Rows flattens a report into snapshot rows, one per source record, in
// input order.
func Rows(meta Meta, recs []model.SourceRecord, rep *rips.Report) []Row {
	out := make([]Row, len(recs))
	for i := range recs {
		rec := &recs[i]
		d := rep.Derived[i]
		loc := rep.Locations[i]
		out[i] = Row{
			RunID:            meta.RunID,
			InputSHA256:      meta.InputSHA256,
			Period:           rep.Period.Code(),
			Variant:          rep.Variant.Name,
			RowNumber:        int64(rec.RowNumber),
			VisitDate:        normalize.FormatDate(rec.VisitDate),
			DocumentType:     string(d.DocumentType),
			DocumentNumber:   d.DocumentNumber,
			Age:              int32(d.Age),
			AgeUnit:          string(d.AgeUnit),
			DiagnosisCode:    rec.DiagnosisCode,
			DepartmentCode:   loc.DepartmentCode,
			MunicipalityCode: loc.MunicipalityCode,
			ReferenceMatched: loc.Matched,
			BillingAmount:    rec.BillingAmount,
		}
		if rep.Variant.HasMunicipality {
			m := rec.Municipality
			out[i].Municipality = &m
		}
	}
	return out
}

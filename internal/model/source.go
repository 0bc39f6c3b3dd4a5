package model

import "time"

// AgeRule selects how ages under one year are expressed in US.
type AgeRule string

const (
	// AgeRuleDetailed reports months when at least one whole month has
	// elapsed, otherwise days.
	AgeRuleDetailed AgeRule = "detailed"
	// AgeRuleMonths always reports months under one year, including zero.
	AgeRuleMonths AgeRule = "months"
)

// Valid reports whether r is a known rule.
func (r AgeRule) Valid() bool {
	return r == AgeRuleDetailed || r == AgeRuleMonths
}

// Variant describes which optional column groups an input spreadsheet carries.
type Variant struct {
	Name            string
	HasMunicipality bool // municipio column, resolved against the reference table
	HasDocumentHint bool // tipo_documento column
	HasBilling      bool // factura, autorizacion and valor columns
	AgeRule         AgeRule
}

var (
	// VariantA carries municipality and document type hints.
	VariantA = Variant{Name: "A", HasMunicipality: true, HasDocumentHint: true, AgeRule: AgeRuleDetailed}
	// VariantB carries invoice, authorization and billing amount.
	VariantB = Variant{Name: "B", HasBilling: true, AgeRule: AgeRuleMonths}
)

// SourceRecord is one visit row after type coercion and cleanup.
type SourceRecord struct {
	RowNumber int // 1-based spreadsheet row

	VisitDate time.Time
	BirthDate time.Time
	FullName  string // uppercased, whitespace collapsed
	Sex       string

	NationalID           string
	InternalRecordNumber string
	DiagnosisCode        string

	// Variant A
	DocumentTypeHint string
	Municipality     string // normalized for lookup

	// Variant B
	InvoiceNumber       string
	AuthorizationNumber string
	BillingAmount       *int64 // whole pesos
}

// HasNationalID reports whether the national id column was filled.
func (r *SourceRecord) HasNationalID() bool {
	return r.NationalID != ""
}

package rips

import (
	"fmt"
	"strconv"

	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/period"
)

// BuildAF produces the run's single invoice line. The invoice is issued on
// the last day of the period. Net payable is the sum of AC net values when
// the input carries billing amounts, otherwise the configured consultation
// value.
func BuildAF(p period.Period, ac []model.ACRecord, v model.Variant, clinic *config.Clinic) model.AFRecord {
	net := clinic.ConsultationValue
	if v.HasBilling {
		net = strconv.FormatInt(sumNet(ac), 10)
	}
	return model.AFRecord{
		ProviderCode:      clinic.ProviderCode,
		LegalName:         clinic.LegalName,
		IdentityType:      clinic.IdentityType,
		IdentityNumber:    clinic.IdentityNumber,
		InvoiceNumber:     clinic.InvoiceNumber,
		IssueDate:         p.EndDate(),
		PeriodStart:       p.StartDate(),
		PeriodEnd:         p.EndDate(),
		AdministratorCode: clinic.AdministratorCode,
		PayerName:         clinic.PayerName,
		NetPayable:        net,
	}
}

func sumNet(ac []model.ACRecord) int64 {
	var total int64
	for i := range ac {
		if n, err := strconv.ParseInt(ac[i].NetValue, 10, 64); err == nil {
			total += n
		}
	}
	return total
}

// InvoiceError reports billed rows that cite different invoices. AF holds a
// single invoice, so a run covers exactly one.
type InvoiceError struct {
	First, Other       string
	FirstRow, OtherRow int
}

func (e *InvoiceError) Error() string {
	return fmt.Sprintf("row %d cites invoice %q but row %d cites %q; a period report holds one invoice",
		e.OtherRow, e.Other, e.FirstRow, e.First)
}

// InvoiceNumber returns the invoice the run reports under. Inputs that carry
// billing use the invoice their rows cite, falling back to configured when
// no row cites one; all citing rows must agree.
func InvoiceNumber(recs []model.SourceRecord, v model.Variant, configured string) (string, error) {
	if !v.HasBilling {
		return configured, nil
	}
	invoice, row := "", 0
	for i := range recs {
		n := recs[i].InvoiceNumber
		if n == "" {
			continue
		}
		if invoice == "" {
			invoice, row = n, recs[i].RowNumber
			continue
		}
		if n != invoice {
			return "", &InvoiceError{First: invoice, FirstRow: row, Other: n, OtherRow: recs[i].RowNumber}
		}
	}
	if invoice == "" {
		return configured, nil
	}
	return invoice, nil
}

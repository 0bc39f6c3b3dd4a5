// Package rips assembles the four RIPS record sets (AC, US, AF, CT) from
// source records, their derived fields, and the clinic profile.
package rips

import (
	"strconv"

	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/derive"
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/normalize"
)

// BuildAC maps each source record to one consultation line, preserving input
// order. recs and derived must be index-aligned. Every line cites
// clinic.InvoiceNumber; Build resolves it with InvoiceNumber first.
func BuildAC(recs []model.SourceRecord, derived []derive.Derived, v model.Variant, clinic *config.Clinic) []model.ACRecord {
	out := make([]model.ACRecord, len(recs))
	for i := range recs {
		rec := &recs[i]
		ac := model.ACRecord{
			InvoiceNumber:      clinic.InvoiceNumber,
			ProviderCode:       clinic.ProviderCode,
			DocumentType:       derived[i].DocumentType,
			DocumentNumber:     derived[i].DocumentNumber,
			VisitDate:          normalize.FormatDate(rec.VisitDate),
			ConsultationCode:   clinic.FirstVisitCode,
			Purpose:            clinic.ConsultationPurpose,
			ExternalCause:      clinic.ExternalCause,
			PrincipalDiagnosis: rec.DiagnosisCode,
			DiagnosisType:      clinic.DiagnosisType,
			ConsultationValue:  clinic.ConsultationValue,
			ModeratorFee:       clinic.ModeratorFee,
			NetValue:           clinic.ConsultationValue,
		}
		if v.HasBilling {
			ac.AuthorizationNumber = rec.AuthorizationNumber
			if rec.BillingAmount != nil {
				ac.ConsultationValue = strconv.FormatInt(*rec.BillingAmount, 10)
				ac.NetValue = netValue(*rec.BillingAmount, clinic.ModeratorFee)
			}
		}
		out[i] = ac
	}
	return out
}

// netValue is the billed amount minus the moderator fee, never below zero.
func netValue(amount int64, fee string) string {
	f, err := strconv.ParseInt(fee, 10, 64)
	if err != nil {
		f = 0
	}
	n := amount - f
	if n < 0 {
		n = 0
	}
	return strconv.FormatInt(n, 10)
}

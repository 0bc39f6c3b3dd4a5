package derive

import (
	"strings"

	"github.com/gyeh/ripsgen/internal/model"
)

// passportHints are document type hints that map to model.DocPassport.
var passportHints = map[string]bool{
	"PASAPORTE": true,
	"PASSPORT":  true,
	"PA":        true,
}

// DocumentType resolves the RIPS document type for a record whose holder is
// years old.
//
// The presence check looks at the national id only: a record with an empty
// national id is classified MS/AS even though its internal record number is
// still emitted as the document number.
func DocumentType(rec *model.SourceRecord, years int, v model.Variant) model.DocumentType {
	if !rec.HasNationalID() {
		if years < 18 {
			return model.DocMinorNoID
		}
		return model.DocAdultNoID
	}
	if v.HasDocumentHint {
		if hint := strings.ToUpper(strings.TrimSpace(rec.DocumentTypeHint)); hint != "" {
			if passportHints[hint] {
				return model.DocPassport
			}
			return model.DocumentType(hint)
		}
	}
	switch {
	case years < 7:
		return model.DocBirthCertificate
	case years >= 18:
		return model.DocCitizenID
	default:
		return model.DocIdentityCard
	}
}

// DocumentNumber returns the national id, or the internal record number when
// the national id is empty.
func DocumentNumber(rec *model.SourceRecord) string {
	if rec.HasNationalID() {
		return rec.NationalID
	}
	return rec.InternalRecordNumber
}

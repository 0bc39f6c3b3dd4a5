package rips

import (
	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/derive"
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/reference"
)

// BuildUS produces one patient line per distinct (document type, document
// number) pair in ac. Identity comes from the AC line; name, age, sex and
// residence come from the source record at the same index. When several
// records share an identity the first one in input order wins, and output
// order is order of first appearance.
func BuildUS(recs []model.SourceRecord, derived []derive.Derived, ac []model.ACRecord, locs []reference.Location, clinic *config.Clinic) []model.USRecord {
	seen := make(map[model.IdentityKey]struct{}, len(ac))
	out := make([]model.USRecord, 0, len(ac))
	for i := range ac {
		key := ac[i].Identity()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		d := derived[i]
		out = append(out, model.USRecord{
			DocumentType:      key.Type,
			DocumentNumber:    key.Number,
			AdministratorCode: clinic.AdministratorCode,
			UserType:          clinic.UserType,
			FirstLastName:     d.Name.FirstLastName,
			SecondLastName:    d.Name.SecondLastName,
			FirstName:         d.Name.FirstName,
			SecondName:        d.Name.SecondName,
			Age:               d.Age,
			AgeUnit:           d.AgeUnit,
			Sex:               recs[i].Sex,
			DepartmentCode:    locs[i].DepartmentCode,
			MunicipalityCode:  locs[i].MunicipalityCode,
			ResidenceZone:     clinic.ResidenceZone,
		})
	}
	return out
}

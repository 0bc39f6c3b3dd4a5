package model

// DocumentType is the regulator-recognized identity classification.
type DocumentType string

const (
	DocBirthCertificate DocumentType = "RC" // registro civil, under 7
	DocIdentityCard     DocumentType = "TI" // tarjeta de identidad, 7 to 17
	DocCitizenID        DocumentType = "CC" // cédula de ciudadanía, 18+
	DocMinorNoID        DocumentType = "MS" // menor sin identificación
	DocAdultNoID        DocumentType = "AS" // adulto sin identificación
	DocPassport         DocumentType = "PA"
)

// AgeUnit is the US age unit of measure.
type AgeUnit string

const (
	AgeUnitYears  AgeUnit = "1"
	AgeUnitMonths AgeUnit = "2"
	AgeUnitDays   AgeUnit = "3"
)

// FileKind represents one of the four RIPS flat files.
type FileKind struct {
	Prefix string // e.g. "AC"
	Label  string
	Fields int    // column count
}

var (
	FileAC = FileKind{Prefix: "AC", Label: "consultations", Fields: 17}
	FileUS = FileKind{Prefix: "US", Label: "users", Fields: 14}
	FileAF = FileKind{Prefix: "AF", Label: "invoices", Fields: 17}
	FileCT = FileKind{Prefix: "CT", Label: "control", Fields: 4}
)

// AllFiles lists the report files in write order. CT must come last.
var AllFiles = []FileKind{FileAC, FileUS, FileAF, FileCT}

// FileKindByPrefix returns the FileKind for the given prefix, or ok=false.
func FileKindByPrefix(prefix string) (FileKind, bool) {
	for _, fk := range AllFiles {
		if fk.Prefix == prefix {
			return fk, true
		}
	}
	return FileKind{}, false
}

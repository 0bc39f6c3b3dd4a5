package sheet

import (
	"fmt"
	"strings"

	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/normalize"
)

// Visit spreadsheet column names after normalize.NormalizeHeader.
const (
	ColVisitDate     = "fecha_atencion"
	ColBirthDate     = "fecha_nacimiento"
	ColName          = "nombre"
	ColSex           = "sexo"
	ColNationalID    = "identificacion"
	ColRecordNumber  = "historia"
	ColDiagnosis     = "diagnostico"
	ColDocumentHint  = "tipo_documento"
	ColMunicipality  = "municipio"
	ColInvoice       = "factura"
	ColAuthorization = "autorizacion"
	ColAmount        = "valor"
)

// RequiredVisitColumns must be present in every visit spreadsheet.
var RequiredVisitColumns = []string{
	ColVisitDate,
	ColBirthDate,
	ColName,
	ColSex,
	ColNationalID,
	ColRecordNumber,
	ColDiagnosis,
}

var optionalVisitColumns = []string{
	ColDocumentHint,
	ColMunicipality,
	ColInvoice,
	ColAuthorization,
	ColAmount,
}

// headerAliases maps alternate headers seen in clinic exports to canonical names.
var headerAliases = map[string]string{
	"fecha_de_atencion":   ColVisitDate,
	"fecha_consulta":      ColVisitDate,
	"fecha_de_nacimiento": ColBirthDate,
	"nombre_completo":     ColName,
	"cedula":              ColNationalID,
	"documento":           ColNationalID,
	"historia_clinica":    ColRecordNumber,
	"diagnostico_cie10":   ColDiagnosis,
	"numero_factura":      ColInvoice,
	"nro_autorizacion":    ColAuthorization,
	"valor_consulta":      ColAmount,
}

// Columns maps canonical column names to their zero-based index.
type Columns map[string]int

// Has reports whether the column is present.
func (c Columns) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// SchemaError reports required columns missing from the header row.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ValidateHeader maps the header row to canonical columns and checks that all
// required columns exist. Unknown columns (e.g. "edad") are ignored.
func ValidateHeader(header []string) (Columns, error) {
	cols := make(Columns)
	for i, h := range header {
		name := normalize.NormalizeHeader(h)
		if alias, ok := headerAliases[name]; ok {
			name = alias
		}
		if name == "" {
			continue
		}
		if _, dup := cols[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		cols[name] = i
	}

	var missing []string
	for _, col := range RequiredVisitColumns {
		if !cols.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return cols, nil
}

// DetectVariant picks the schema variant from the optional columns present.
// A billing amount without a municipality column selects variant B; anything
// else is variant A, with municipality and hint support only when the
// columns exist.
func DetectVariant(cols Columns) model.Variant {
	if cols.Has(ColAmount) && !cols.Has(ColMunicipality) {
		return model.VariantB
	}
	v := model.VariantA
	v.HasMunicipality = cols.Has(ColMunicipality)
	v.HasDocumentHint = cols.Has(ColDocumentHint)
	return v
}

// KnownColumns lists every column the reader understands, required first.
func KnownColumns() []string {
	return append(append([]string{}, RequiredVisitColumns...), optionalVisitColumns...)
}

package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/ripsgen/internal/model"
)

func TestValidateHeader_Aliases(t *testing.T) {
	cols, err := ValidateHeader([]string{"Fecha de Atención", "Fecha de Nacimiento", "Nombre Completo", "Sexo", "Cédula", "Historia Clínica", "Diagnóstico", ""})
	require.NoError(t, err)
	assert.Equal(t, 0, cols[ColVisitDate])
	assert.Equal(t, 4, cols[ColNationalID])
	assert.Equal(t, 5, cols[ColRecordNumber])
}

func TestValidateHeader_Duplicate(t *testing.T) {
	_, err := ValidateHeader([]string{"nombre", "Nombre"})
	assert.Error(t, err)
}

func TestDetectVariant(t *testing.T) {
	base := func(extra ...string) Columns {
		c := Columns{}
		for i, n := range append(append([]string{}, RequiredVisitColumns...), extra...) {
			c[n] = i
		}
		return c
	}

	assert.Equal(t, model.VariantA, DetectVariant(base(ColDocumentHint, ColMunicipality)))
	assert.Equal(t, model.VariantB, DetectVariant(base(ColInvoice, ColAuthorization, ColAmount)))

	bare := DetectVariant(base())
	assert.Equal(t, "A", bare.Name)
	assert.False(t, bare.HasMunicipality)
	assert.False(t, bare.HasDocumentHint)
	assert.Equal(t, model.AgeRuleDetailed, bare.AgeRule)

	both := DetectVariant(base(ColMunicipality, ColAmount))
	assert.True(t, both.HasMunicipality)
	assert.False(t, both.HasBilling)
}

func TestKnownColumns(t *testing.T) {
	cols := KnownColumns()
	assert.Len(t, cols, len(RequiredVisitColumns)+5)
	assert.Equal(t, ColVisitDate, cols[0])
}

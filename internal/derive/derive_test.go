package derive

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/ripsgen/internal/model"
)

func TestEngine_Derive(t *testing.T) {
	e := NewEngine(date(2024, 6, 15), model.VariantA, "")
	rec := &model.SourceRecord{
		RowNumber:  2,
		BirthDate:  date(2012, 3, 1),
		FullName:   "ANA MARIA LOPEZ RUIZ",
		NationalID: "1020304050",
	}
	d, err := e.Derive(rec)
	require.NoError(t, err)
	assert.Equal(t, 12, d.Years)
	assert.Equal(t, 12, d.Age)
	assert.Equal(t, model.AgeUnitYears, d.AgeUnit)
	assert.Equal(t, model.DocIdentityCard, d.DocumentType)
	assert.Equal(t, "1020304050", d.DocumentNumber)
	assert.Equal(t, "LOPEZ", d.Name.FirstLastName)
}

func TestEngine_VariantRule(t *testing.T) {
	rec := &model.SourceRecord{BirthDate: date(2024, 6, 1), FullName: "BEBE PEREZ", InternalRecordNumber: "77"}

	d, err := NewEngine(date(2024, 6, 15), model.VariantA, "").Derive(rec)
	require.NoError(t, err)
	assert.Equal(t, 14, d.Age)
	assert.Equal(t, model.AgeUnitDays, d.AgeUnit)

	d, err = NewEngine(date(2024, 6, 15), model.VariantB, "").Derive(rec)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Age)
	assert.Equal(t, model.AgeUnitMonths, d.AgeUnit)

	d, err = NewEngine(date(2024, 6, 15), model.VariantB, model.AgeRuleDetailed).Derive(rec)
	require.NoError(t, err)
	assert.Equal(t, model.AgeUnitDays, d.AgeUnit)
	assert.Equal(t, model.DocMinorNoID, d.DocumentType)
	assert.Equal(t, "77", d.DocumentNumber)
}

func TestEngine_DeriveAll_ReportsRow(t *testing.T) {
	e := NewEngine(date(2024, 6, 15), model.VariantA, "")
	recs := []model.SourceRecord{
		{RowNumber: 2, BirthDate: date(1990, 1, 1), FullName: "JUAN PEREZ"},
		{RowNumber: 3, BirthDate: date(1990, 1, 1), FullName: "CHER"},
	}
	_, err := e.DeriveAll(recs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	var ne *NameError
	assert.True(t, errors.As(err, &ne))
}

func TestEngine_FutureBirthDate(t *testing.T) {
	e := NewEngine(date(2024, 6, 15), model.VariantA, "")
	_, err := e.Derive(&model.SourceRecord{BirthDate: date(2025, 1, 1), FullName: "JUAN PEREZ"})
	assert.Error(t, err)
}

func TestEngine_BirthDateComparedByDay(t *testing.T) {
	// late evening in Bogotá is already the next day in UTC
	bogota := time.FixedZone("COT", -5*3600)
	e := NewEngine(time.Date(2024, 6, 15, 23, 0, 0, 0, bogota), model.VariantA, "")

	d, err := e.Derive(&model.SourceRecord{BirthDate: date(2024, 6, 15), FullName: "BEBE RUIZ", InternalRecordNumber: "H-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, d.Age)
	assert.Equal(t, model.AgeUnitDays, d.AgeUnit)

	_, err = e.Derive(&model.SourceRecord{BirthDate: date(2024, 6, 16), FullName: "BEBE RUIZ", InternalRecordNumber: "H-1"})
	assert.Error(t, err)

	// early morning east of UTC is still the previous day in UTC
	e = NewEngine(time.Date(2024, 6, 16, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600)), model.VariantA, "")
	_, err = e.Derive(&model.SourceRecord{BirthDate: date(2024, 6, 16), FullName: "BEBE RUIZ", InternalRecordNumber: "H-1"})
	assert.NoError(t, err)
}

package customs_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ibdiallo/transit-secure-api/internal/application/customs"
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
)

func gnf(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// Vecteur de référence : CAF de 10 000 000 GNF.
func TestEstimateKnownVector(t *testing.T) {
	got := customs.Estimate(dto.EstimateRequest{
		ValueFOB:  gnf(8_000_000),
		Freight:   gnf(1_500_000),
		Insurance: gnf(500_000),
	})

	assert.True(t, got.ValueCAF.Equal(gnf(10_000_000)), got.ValueCAF.String())
	assert.True(t, got.DD.Equal(gnf(2_000_000)), got.DD.String())
	assert.True(t, got.RTL.Equal(gnf(200_000)), got.RTL.String())
	assert.True(t, got.RDL.Equal(gnf(150_000)), got.RDL.String())
	assert.True(t, got.FiscalValue.Equal(gnf(12_350_000)), got.FiscalValue.String())
	assert.True(t, got.TVS.Equal(gnf(2_223_000)), got.TVS.String())
	assert.True(t, got.TotalDuties.Equal(gnf(4_573_000)), got.TotalDuties.String())
}

func TestEstimateZero(t *testing.T) {
	got := customs.Estimate(dto.EstimateRequest{})
	assert.True(t, got.ValueCAF.IsZero())
	assert.True(t, got.TotalDuties.IsZero())
}

// Les montants non ronds sont arrondis au franc à chaque étape.
func TestEstimateRounding(t *testing.T) {
	got := customs.Estimate(dto.EstimateRequest{
		ValueFOB: gnf(1_000_001),
	})
	// DD = 200 000,2 → 200 000
	assert.True(t, got.DD.Equal(gnf(200_000)), got.DD.String())
	// RDL = 15 000,015 → 15 000
	assert.True(t, got.RDL.Equal(gnf(15_000)), got.RDL.String())
	assert.Equal(t, int32(0), got.TotalDuties.Exponent())
}

// Package customs calcule l'estimation des droits et taxes à l'import selon
// le barème guinéen courant. Montants en GNF, arrondis au franc.
package customs

import (
	"github.com/shopspring/decimal"

	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
)

// Taux du barème. DD et les redevances s'appliquent à la valeur CAF, la TVS à
// la valeur fiscale (CAF + droits).
var (
	rateDD  = decimal.NewFromFloat(0.20)  // droit de douane
	rateRTL = decimal.NewFromFloat(0.02)  // redevance de traitement et liquidation
	rateRDL = decimal.NewFromFloat(0.015) // redevance de dédouanement
	rateTVS = decimal.NewFromFloat(0.18)  // taxe sur la valeur (TVA locale)
)

// Estimate calcule l'estimation complète à partir des trois composantes CAF.
//
//	CAF    = FOB + fret + assurance
//	DD     = 20 % CAF ; RTL = 2 % CAF ; RDL = 1,5 % CAF
//	fiscal = CAF + DD + RTL + RDL
//	TVS    = 18 % fiscal
//	total  = DD + RTL + RDL + TVS
func Estimate(in dto.EstimateRequest) dto.EstimateResponse {
	caf := in.ValueFOB.Add(in.Freight).Add(in.Insurance)

	dd := caf.Mul(rateDD).Round(0)
	rtl := caf.Mul(rateRTL).Round(0)
	rdl := caf.Mul(rateRDL).Round(0)
	fiscal := caf.Add(dd).Add(rtl).Add(rdl)
	tvs := fiscal.Mul(rateTVS).Round(0)

	return dto.EstimateResponse{
		ValueCAF:    caf,
		DD:          dd,
		RTL:         rtl,
		RDL:         rdl,
		FiscalValue: fiscal,
		TVS:         tvs,
		TotalDuties: dd.Add(rtl).Add(rdl).Add(tvs),
	}
}

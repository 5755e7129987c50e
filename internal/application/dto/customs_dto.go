package dto

import "github.com/shopspring/decimal"

// EstimateRequest body pour POST /api/customs/estimate. Montants en GNF.
type EstimateRequest struct {
	ValueFOB  decimal.Decimal `json:"value_fob"`
	Freight   decimal.Decimal `json:"freight"`
	Insurance decimal.Decimal `json:"insurance"`
}

// Validate les trois composantes doivent être positives ou nulles.
func (r *EstimateRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.ValueFOB.IsNegative() {
		errs.Add("value_fob", "La valeur FOB doit être positive")
	}
	if r.Freight.IsNegative() {
		errs.Add("freight", "Le fret doit être positif")
	}
	if r.Insurance.IsNegative() {
		errs.Add("insurance", "L'assurance doit être positive")
	}

	return errs
}

// EstimateResponse détail de l'estimation des droits et taxes.
type EstimateResponse struct {
	ValueCAF    decimal.Decimal `json:"value_caf"`
	DD          decimal.Decimal `json:"dd"`  // droit de douane (20 % CAF)
	RTL         decimal.Decimal `json:"rtl"` // redevance de traitement (2 % CAF)
	RDL         decimal.Decimal `json:"rdl"` // redevance de liquidation (1,5 % CAF)
	FiscalValue decimal.Decimal `json:"fiscal_value"`
	TVS         decimal.Decimal `json:"tvs"` // taxe sur la valeur (18 % valeur fiscale)
	TotalDuties decimal.Decimal `json:"total_duties"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryResponse une écriture du journal comptable global, annotée du
// dossier et du client d'origine.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	ShipmentRef string          `json:"shipment_ref"` // numéro de suivi du dossier
	Client      string          `json:"client"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        bool            `json:"paid"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
}

// LedgerSeriesPointResponse un point de la série du graphique de trésorerie :
// encaissements et décaissements réglés de la sous-période.
type LedgerSeriesPointResponse struct {
	Label   string          `json:"label"` // heure, jour ou mois selon la période
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// LedgerSummaryResponse totaux de la période : encaissements (provisions
// reçues), décaissements (débours et honoraires payés) et solde net.
type LedgerSummaryResponse struct {
	Range   string          `json:"range"` // day, week, month, year
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"` // écritures dans la période
}

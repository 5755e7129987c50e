package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType sens comptable d'une écriture.
type ExpenseType string

const (
	ExpenseProvision    ExpenseType = "PROVISION"    // avance reçue du client
	ExpenseDisbursement ExpenseType = "DISBURSEMENT" // débours payé pour le compte du client
	ExpenseFee          ExpenseType = "FEE"          // honoraires de l'agence
)

// ExpenseTypes énumération fermée pour la validation.
var ExpenseTypes = []ExpenseType{ExpenseProvision, ExpenseDisbursement, ExpenseFee}

// ExpenseCategory poste de dépense.
type ExpenseCategory string

const (
	CategoryDouane     ExpenseCategory = "Douane"
	CategoryPort       ExpenseCategory = "Port"
	CategoryLogistique ExpenseCategory = "Logistique"
	CategoryAgence     ExpenseCategory = "Agence"
	CategoryAutre      ExpenseCategory = "Autre"
)

// ExpenseCategories énumération fermée pour la validation.
var ExpenseCategories = []ExpenseCategory{
	CategoryDouane, CategoryPort, CategoryLogistique, CategoryAgence, CategoryAutre,
}

// Expense une écriture financière d'un dossier. Montants en GNF, unités entières.
// Paid : pour une PROVISION, encaissée du client ; pour un DISBURSEMENT, réglée au tiers.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        bool            `json:"paid"`
	Category    ExpenseCategory `json:"category"`
	Type        ExpenseType     `json:"type"`
	Date        time.Time       `json:"date"`
}

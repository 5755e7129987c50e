package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
)

// AddExpenseRequest body pour POST /api/shipments/:id/expenses.
type AddExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Paid        bool            `json:"paid"`
}

// Validate garde-fou comptable : description, montant strictement positif,
// catégorie et type dans leurs énumérations.
func (r *AddExpenseRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if len(r.Description) < 3 {
		errs.Add("description", "Description requise")
	}
	if !r.Amount.IsPositive() {
		errs.Add("amount", "Le montant doit être positif")
	}
	if !validCategory(r.Category) {
		errs.Add("category", "Catégorie invalide")
	}
	if !validExpenseType(r.Type) {
		errs.Add("type", "Type d'écriture invalide")
	}

	return errs
}

func validCategory(s string) bool {
	for _, c := range entity.ExpenseCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

func validExpenseType(s string) bool {
	for _, t := range entity.ExpenseTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

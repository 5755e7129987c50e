package transit

import (
	"github.com/shopspring/decimal"

	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
)

// BalanceMode sémantique du solde client.
//
// Le calcul historique compte toutes les provisions, encaissées ou non, face
// aux seuls débours payés. L'asymétrie est assumée : c'est le comportement
// observé de l'application d'origine et le mode par défaut. Le mode strict ne
// compte que les provisions effectivement encaissées.
type BalanceMode string

const (
	BalanceObserved BalanceMode = "observed"
	BalanceStrict   BalanceMode = "strict"
)

// ParseBalanceMode renvoie le mode correspondant, BalanceObserved par défaut.
func ParseBalanceMode(s string) BalanceMode {
	if s == string(BalanceStrict) {
		return BalanceStrict
	}
	return BalanceObserved
}

// ClientBalance solde du client sur le dossier :
// somme des provisions (selon le mode) moins somme des débours payés.
// Peut être négatif : le client doit de l'argent à l'agence.
func ClientBalance(s *entity.Shipment, mode BalanceMode) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range s.Expenses {
		switch {
		case e.Type == entity.ExpenseProvision && (mode == BalanceObserved || e.Paid):
			balance = balance.Add(e.Amount)
		case e.Type == entity.ExpenseDisbursement && e.Paid:
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}

// PendingLiquidation première écriture "Douane" non payée du dossier, dans
// l'ordre d'insertion. Renvoie -1 si aucune.
func PendingLiquidation(s *entity.Shipment) int {
	for i, e := range s.Expenses {
		if e.Category == entity.CategoryDouane && !e.Paid {
			return i
		}
	}
	return -1
}

// SettleLiquidation règle la liquidation douanière en attente.
//
// Algorithme :
//  1. solde client = provisions (selon le mode) − débours payés ;
//  2. la liquidation est la première écriture Douane non payée ;
//     aucune → ErrNoLiquidationPending ;
//  3. solde < montant → InsufficientBalanceError, aucune mutation ;
//  4. sinon l'écriture est marquée payée et le dossier passe à
//     LIQUIDATION_PAID (jamais de retour en arrière si le dossier est déjà
//     plus avancé).
//
// Renvoie l'écriture réglée.
func SettleLiquidation(s *entity.Shipment, mode BalanceMode) (entity.Expense, error) {
	idx := PendingLiquidation(s)
	if idx < 0 {
		return entity.Expense{}, domain.ErrNoLiquidationPending
	}

	balance := ClientBalance(s, mode)
	required := s.Expenses[idx].Amount
	if balance.LessThan(required) {
		return entity.Expense{}, &domain.InsufficientBalanceError{Balance: balance, Required: required}
	}

	s.Expenses[idx].Paid = true
	if StatusIndex(s.Status) < StatusIndex(entity.StatusLiquidationPaid) {
		s.Status = entity.StatusLiquidationPaid
	}
	return s.Expenses[idx], nil
}

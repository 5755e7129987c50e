package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound             = errors.New("ressource introuvable")
	ErrUserNotFound         = errors.New("utilisateur introuvable")
	ErrEmailAlreadyExists   = errors.New("email déjà enregistré")
	ErrInvalidInput         = errors.New("entrée invalide")
	ErrDuplicate            = errors.New("ressource dupliquée")
	ErrUnauthorized         = errors.New("non autorisé")
	ErrForbidden            = errors.New("accès refusé")
	ErrInvalidTransition    = errors.New("transition de statut non autorisée")
	ErrNoLiquidationPending = errors.New("aucune liquidation en attente")
	ErrAlreadyDeclared      = errors.New("déclaration déjà enregistrée")
	ErrNoDeclaration        = errors.New("aucune déclaration enregistrée")
)

// InsufficientBalanceError solde client insuffisant pour régler la liquidation.
// Porte le solde constaté et le montant exigé pour le message utilisateur.
type InsufficientBalanceError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("solde insuffisant: %s disponible, %s requis", e.Balance.String(), e.Required.String())
}

// IsInsufficientBalance extrait l'erreur de solde insuffisant si err en porte une.
func IsInsufficientBalance(err error) (*InsufficientBalanceError, bool) {
	var ib *InsufficientBalanceError
	if errors.As(err, &ib) {
		return ib, true
	}
	return nil, false
}

// Package transit porte les règles métier du workflow de dédouanement :
// machine à états du dossier et règlement de la liquidation douanière.
//
// Le workflow est strictement monotone :
//
//	OPENED → PRE_CLEARANCE → CUSTOMS_LIQUIDATION → LIQUIDATION_PAID
//	       → BAE_GRANTED → PORT_EXIT → DELIVERED
//
// Aucune transition arrière ni saut d'étape n'est accepté. Les préconditions
// qui n'étaient garanties que par l'interface (pièces DDI/BSC, BAE et photo
// camion) sont vérifiées ici, quel que soit l'appelant.
package transit

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
)

// statusOrder ordre strict du workflow.
var statusOrder = []entity.ShipmentStatus{
	entity.StatusOpened,
	entity.StatusPreClearance,
	entity.StatusCustomsLiquidation,
	entity.StatusLiquidationPaid,
	entity.StatusBAEGranted,
	entity.StatusPortExit,
	entity.StatusDelivered,
}

// StatusIndex position d'un statut dans le workflow, -1 si inconnu.
func StatusIndex(s entity.ShipmentStatus) int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// NextStatus statut suivant du workflow, "" si le dossier est au dernier état.
func NextStatus(s entity.ShipmentStatus) entity.ShipmentStatus {
	i := StatusIndex(s)
	if i < 0 || i+1 >= len(statusOrder) {
		return ""
	}
	return statusOrder[i+1]
}

// Advance fait passer le dossier au statut cible par action opérateur.
// Seule la transition vers l'état immédiatement suivant est acceptée ;
// LIQUIDATION_PAID et DELIVERED ne sont atteignables que par les opérations
// dédiées (règlement de la liquidation, livraison).
func Advance(s *entity.Shipment, target entity.ShipmentStatus) error {
	cur, tgt := StatusIndex(s.Status), StatusIndex(target)
	if tgt < 0 {
		return domain.ErrInvalidInput
	}
	if tgt != cur+1 {
		return domain.ErrInvalidTransition
	}

	switch target {
	case entity.StatusLiquidationPaid, entity.StatusDelivered:
		// réservés à SettleLiquidation et Deliver
		return domain.ErrInvalidTransition
	case entity.StatusCustomsLiquidation:
		if !s.HasDocument(entity.DocDDI) || !s.HasDocument(entity.DocBSC) {
			return domain.ErrInvalidTransition
		}
	case entity.StatusPortExit:
		if !s.HasDocument(entity.DocBAE) || !s.HasDocument(entity.DocPhotoCamion) {
			return domain.ErrInvalidTransition
		}
	}

	s.Status = target
	return nil
}

// Declare enregistre la déclaration SYDONIA sur le dossier : numéro, montant
// liquidé, et un débours "Douane" non payé du montant déclaré. Une seule
// déclaration par dossier.
func Declare(s *entity.Shipment, number string, amount decimal.Decimal, now time.Time) error {
	number = strings.TrimSpace(number)
	if number == "" || !amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	if s.DeclarationNumber != "" {
		return domain.ErrAlreadyDeclared
	}
	if s.Status != entity.StatusCustomsLiquidation {
		return domain.ErrInvalidTransition
	}

	s.DeclarationNumber = number
	s.DeclaredAmount = &amount
	s.Expenses = append(s.Expenses, entity.Expense{
		ID:          uuid.New().String(),
		Description: "Liquidation Douane (" + number + ")",
		Amount:      amount,
		Paid:        false,
		Category:    entity.CategoryDouane,
		Type:        entity.ExpenseDisbursement,
		Date:        now,
	})
	return nil
}

// Deliver clôture le dossier : uniquement depuis PORT_EXIT, chauffeur et
// immatriculation obligatoires. La date de livraison est horodatée à now si absente.
func Deliver(s *entity.Shipment, info entity.DeliveryInfo, now time.Time) error {
	if s.Status != entity.StatusPortExit {
		return domain.ErrInvalidTransition
	}
	if strings.TrimSpace(info.DriverName) == "" || strings.TrimSpace(info.TruckPlate) == "" {
		return domain.ErrInvalidInput
	}
	if info.DeliveryDate.IsZero() {
		info.DeliveryDate = now
	}
	s.DeliveryInfo = &info
	s.Status = entity.StatusDelivered
	return nil
}

package shipment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/transit"
	"github.com/ibdiallo/transit-secure-api/pkg/gnf"
)

// AddExpense enregistre une écriture financière sur le dossier.
func (uc *UseCase) AddExpense(ctx context.Context, actor entity.Actor, id string, in dto.AddExpenseRequest) (*dto.ShipmentResponse, error) {
	if !actor.CanManageFinances() {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate().AsError(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.UpdateAtomic(ctx, id, func(s *entity.Shipment) error {
		s.Expenses = append(s.Expenses, entity.Expense{
			ID:          uuid.New().String(),
			Description: in.Description,
			Amount:      in.Amount,
			Paid:        in.Paid,
			Category:    entity.ExpenseCategory(in.Category),
			Type:        entity.ExpenseType(in.Type),
			Date:        time.Now(),
		})
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Audit("ecriture_ajoutee").
		Str("shipment_id", id).
		Str("type", in.Type).
		Str("amount", in.Amount.String()).
		Str("user_id", actor.UserID).
		Msg("écriture financière enregistrée")

	return uc.toResponse(updated), nil
}

// AddDocument attache une pièce au dossier, avec les effets de bord du
// workflow :
//   - Quittance reçue pendant la liquidation douanière → tentative de
//     règlement immédiat. Le document reste attaché même si le règlement
//     échoue ; le résultat du paiement est renvoyé à l'appelant.
//   - BAE reçu après paiement de la liquidation → passage à BAE_GRANTED.
func (uc *UseCase) AddDocument(ctx context.Context, actor entity.Actor, id string, in dto.AddDocumentRequest) (*dto.ShipmentResponse, *dto.PaymentResultResponse, error) {
	if !actor.CanEditOperations() {
		return nil, nil, domain.ErrForbidden
	}
	if err := in.Validate().AsError(); err != nil {
		return nil, nil, err
	}

	status := entity.DocumentStatus(in.Status)
	if in.Status == "" {
		status = entity.DocPending
	}

	var payment *dto.PaymentResultResponse
	updated, err := uc.repo.UpdateAtomic(ctx, id, func(s *entity.Shipment) error {
		payment = nil
		docType := entity.DocumentType(in.Type)
		s.Documents = append(s.Documents, entity.Document{
			ID:         uuid.New().String(),
			Name:       in.Name,
			Type:       docType,
			Status:     status,
			URL:        in.URL,
			UploadDate: time.Now(),
		})

		switch {
		case docType == entity.DocQuittance && s.Status == entity.StatusCustomsLiquidation:
			res := uc.settle(s, actor, id)
			payment = &res
		case docType == entity.DocBAE && s.Status == entity.StatusLiquidationPaid:
			if err := transit.Advance(s, entity.StatusBAEGranted); err == nil {
				uc.met.IncTransition(string(entity.StatusBAEGranted))
			}
		}

		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.log.Info().
		Str("shipment_id", id).
		Str("document_type", in.Type).
		Msg("document attaché")

	return uc.toResponse(updated), payment, nil
}

// Declare enregistre la déclaration SYDONIA (numéro + montant liquidé) et
// ouvre le débours "Douane" correspondant. Une seule fois par dossier.
func (uc *UseCase) Declare(ctx context.Context, actor entity.Actor, id string, in dto.DeclarationRequest) (*dto.ShipmentResponse, error) {
	if !actor.CanEditOperations() {
		return nil, domain.ErrForbidden
	}

	updated, err := uc.repo.UpdateAtomic(ctx, id, func(s *entity.Shipment) error {
		if err := transit.Declare(s, in.Number, in.Amount, time.Now()); err != nil {
			return err
		}
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Audit("declaration_enregistree").
		Str("shipment_id", id).
		Str("declaration", in.Number).
		Str("amount", in.Amount.String()).
		Str("user_id", actor.UserID).
		Msg("déclaration enregistrée")

	return uc.toResponse(updated), nil
}

// PayLiquidation règle la liquidation douanière en attente. Un refus métier
// (aucune liquidation, solde insuffisant) n'est pas une erreur : le résultat
// porte success=false et le motif lisible, et le dossier n'est pas modifié.
func (uc *UseCase) PayLiquidation(ctx context.Context, actor entity.Actor, id string) (dto.PaymentResultResponse, error) {
	if !actor.CanManageFinances() {
		return dto.PaymentResultResponse{}, domain.ErrForbidden
	}

	var result dto.PaymentResultResponse
	_, err := uc.repo.UpdateAtomic(ctx, id, func(s *entity.Shipment) error {
		result = uc.settle(s, actor, id)
		if !result.Success {
			// refus métier : abandon de la transaction, rien n'est écrit
			return errDiscard
		}
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil && !errors.Is(err, errDiscard) {
		return dto.PaymentResultResponse{}, err
	}
	return result, nil
}

// errDiscard sentinelle interne : fait abandonner UpdateAtomic sans écrire,
// le refus métier étant déjà porté par le PaymentResultResponse.
var errDiscard = errors.New("transaction abandonnée")

// settle applique transit.SettleLiquidation et traduit l'issue en résultat
// utilisateur, journal d'audit et métriques. Mutations sur s uniquement en
// cas de succès.
func (uc *UseCase) settle(s *entity.Shipment, actor entity.Actor, id string) dto.PaymentResultResponse {
	settled, err := transit.SettleLiquidation(s, uc.balanceMode)
	switch {
	case err == nil:
		uc.met.IncPayment("validated")
		uc.met.IncTransition(string(entity.StatusLiquidationPaid))
		uc.log.Audit("paiement_liquidation_valide").
			Str("shipment_id", id).
			Str("amount", settled.Amount.String()).
			Str("user_id", actor.UserID).
			Msg("paiement de liquidation validé")
		return dto.PaymentResultResponse{Success: true, Message: "Paiement autorisé."}

	case err == domain.ErrNoLiquidationPending:
		uc.met.IncPayment("no_pending")
		return dto.PaymentResultResponse{Success: false, Message: "Aucune liquidation en attente trouvée."}

	default:
		if ib, ok := domain.IsInsufficientBalance(err); ok {
			uc.met.IncPayment("refused")
			uc.log.Warn().
				Str("shipment_id", id).
				Str("balance", ib.Balance.String()).
				Str("required", ib.Required.String()).
				Msg("paiement refusé (solde insuffisant)")
			return dto.PaymentResultResponse{
				Success: false,
				Message: "Solde insuffisant (" + gnf.FormatGNF(ib.Balance) + "). Provision requise.",
			}
		}
		return dto.PaymentResultResponse{Success: false, Message: err.Error()}
	}
}

// AdvanceStatus fait passer le dossier au statut suivant par action opérateur.
func (uc *UseCase) AdvanceStatus(ctx context.Context, actor entity.Actor, id string, in dto.AdvanceStatusRequest) (*dto.ShipmentResponse, error) {
	if !actor.CanEditOperations() {
		return nil, domain.ErrForbidden
	}

	target := entity.ShipmentStatus(in.Status)
	updated, err := uc.repo.UpdateAtomic(ctx, id, func(s *entity.Shipment) error {
		if err := transit.Advance(s, target); err != nil {
			return err
		}
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.met.IncTransition(string(target))
	uc.log.Audit("changement_statut").
		Str("shipment_id", id).
		Str("status", string(target)).
		Str("user_id", actor.UserID).
		Msg("changement de statut")

	return uc.toResponse(updated), nil
}

// Deliver clôture le dossier avec les informations de livraison.
func (uc *UseCase) Deliver(ctx context.Context, actor entity.Actor, id string, in dto.DeliveryRequest) (*dto.ShipmentResponse, error) {
	if !actor.CanEditOperations() {
		return nil, domain.ErrForbidden
	}

	info := entity.DeliveryInfo{
		DriverName:    in.DriverName,
		TruckPlate:    in.TruckPlate,
		RecipientName: in.RecipientName,
	}
	updated, err := uc.repo.UpdateAtomic(ctx, id, func(s *entity.Shipment) error {
		if err := transit.Deliver(s, info, time.Now()); err != nil {
			return err
		}
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.met.IncTransition(string(entity.StatusDelivered))
	uc.log.Audit("livraison").
		Str("shipment_id", id).
		Str("driver", in.DriverName).
		Str("user_id", actor.UserID).
		Msg("dossier livré")

	return uc.toResponse(updated), nil
}

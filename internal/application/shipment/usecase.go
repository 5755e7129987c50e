// Package shipment porte les cas d'usage du registre des dossiers : ouverture,
// consultation, mutations du cycle de vie et écritures financières.
//
// Chaque opération reçoit un entity.Actor explicite : aucune décision d'accès
// ne repose sur un état ambiant. Toute mutation passe par UpdateAtomic du
// dépôt : lecture, mutation sur copie, remplacement — deux écritures
// concurrentes sur le même dossier sont sérialisées.
package shipment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
	"github.com/ibdiallo/transit-secure-api/internal/domain/transit"
	"github.com/ibdiallo/transit-secure-api/pkg/logger"
	"github.com/ibdiallo/transit-secure-api/pkg/metrics"
)

// trackingAttempts tirages aléatoires avant le parcours séquentiel des suffixes.
const trackingAttempts = 25

// UseCase cas d'usage du registre des dossiers.
type UseCase struct {
	repo        repository.ShipmentRepository
	log         *logger.Logger
	met         *metrics.Metrics
	balanceMode transit.BalanceMode
}

// NewUseCase construit le cas d'usage. met peut être nil (tests).
func NewUseCase(repo repository.ShipmentRepository, log *logger.Logger, met *metrics.Metrics, mode transit.BalanceMode) *UseCase {
	return &UseCase{repo: repo, log: log, met: met, balanceMode: mode}
}

// Create ouvre un dossier : validation complète du formulaire, génération du
// numéro de suivi <régime>-<4 chiffres>-GN sans collision, statut OPENED,
// franchise par défaut, collections vides. Aucun enregistrement partiel en cas
// d'erreur de validation.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if !actor.CanCreateShipments() {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate().AsError(); err != nil {
		uc.log.Warn().Str("client", in.ClientName).Msg("ouverture de dossier refusée (validation)")
		return nil, err
	}

	eta, err := dto.ParseDate(in.ETA)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	trackingNumber, err := uc.generateTrackingNumber(ctx, in.CustomsRegime)
	if err != nil {
		return nil, err
	}

	destination := in.Destination
	if destination == "" {
		destination = dto.DefaultDestination
	}

	now := time.Now()
	s := &entity.Shipment{
		ID:              uuid.New().String(),
		TrackingNumber:  trackingNumber,
		ClientName:      in.ClientName,
		CommodityType:   entity.CommodityType(in.CommodityType),
		Description:     in.Description,
		Origin:          in.Origin,
		Destination:     destination,
		Status:          entity.StatusOpened,
		ETA:             eta,
		FreeDays:        entity.DefaultFreeDays,
		Documents:       []entity.Document{},
		Expenses:        []entity.Expense{},
		Alerts:          []string{},
		BLNumber:        strings.ToUpper(in.BLNumber),
		ShippingLine:    in.ShippingLine,
		ContainerNumber: strings.ToUpper(in.ContainerNumber),
		CustomsRegime:   in.CustomsRegime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.met.IncShipmentCreated()
	uc.log.Audit("dossier_cree").
		Str("shipment_id", s.ID).
		Str("tracking", s.TrackingNumber).
		Str("user_id", actor.UserID).
		Msg("dossier créé")

	return uc.toResponse(s), nil
}

// generateTrackingNumber tire un suffixe à 4 chiffres et vérifie la collision
// contre les numéros existants ; au-delà de trackingAttempts tirages, parcours
// séquentiel des suffixes pour garantir la terminaison.
func (uc *UseCase) generateTrackingNumber(ctx context.Context, regime string) (string, error) {
	for i := 0; i < trackingAttempts; i++ {
		n := fmt.Sprintf("%s-%04d-GN", regime, 1000+rand.IntN(9000))
		exists, err := uc.repo.TrackingNumberExists(ctx, n)
		if err != nil {
			return "", err
		}
		if !exists {
			return n, nil
		}
	}
	for suffix := 1000; suffix <= 9999; suffix++ {
		n := fmt.Sprintf("%s-%04d-GN", regime, suffix)
		exists, err := uc.repo.TrackingNumberExists(ctx, n)
		if err != nil {
			return "", err
		}
		if !exists {
			return n, nil
		}
	}
	return "", fmt.Errorf("shipment: plus de numéro de suivi disponible pour le régime %s", regime)
}

// Get renvoie un dossier par id.
func (uc *UseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.ShipmentResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(s), nil
}

// Entity renvoie l'entité brute du dossier pour les exports (relevé PDF,
// déclaration SYDONIA).
func (uc *UseCase) Entity(ctx context.Context, actor entity.Actor, id string) (*entity.Shipment, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List renvoie les dossiers triés par création décroissante, filtrés par la
// recherche plein texte (numéro de suivi, BL, client, conteneur — insensible
// aux accents) et par statut.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, search, status string) ([]*dto.ShipmentResponse, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []*entity.Shipment
	q := Fold(search)
	for _, s := range all {
		if status != "" && string(s.Status) != status {
			continue
		}
		if q != "" && !matchesSearch(s, q) {
			continue
		}
		filtered = append(filtered, s)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	out := make([]*dto.ShipmentResponse, 0, len(filtered))
	for _, s := range filtered {
		out = append(out, uc.toResponse(s))
	}
	return out, nil
}

func matchesSearch(s *entity.Shipment, foldedQuery string) bool {
	for _, field := range []string{s.TrackingNumber, s.BLNumber, s.ClientName, s.ContainerNumber} {
		if field != "" && strings.Contains(Fold(field), foldedQuery) {
			return true
		}
	}
	return false
}

// UpdateDetails fusion superficielle des champs libres du dossier (route, BL,
// conteneur, ETA, compagnie). Pas de validation champ par champ sur ce chemin.
func (uc *UseCase) UpdateDetails(ctx context.Context, actor entity.Actor, id string, in dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error) {
	if !actor.CanCreateShipments() {
		return nil, domain.ErrForbidden
	}

	var eta *time.Time
	if in.ETA != nil {
		t, err := dto.ParseDate(*in.ETA)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		eta = &t
	}

	updated, err := uc.repo.UpdateAtomic(ctx, id, func(s *entity.Shipment) error {
		if in.Origin != nil {
			s.Origin = *in.Origin
		}
		if in.Destination != nil {
			s.Destination = *in.Destination
		}
		if eta != nil {
			s.ETA = *eta
		}
		if in.BLNumber != nil {
			s.BLNumber = strings.ToUpper(*in.BLNumber)
		}
		if in.ShippingLine != nil {
			s.ShippingLine = *in.ShippingLine
		}
		if in.ContainerNumber != nil {
			s.ContainerNumber = strings.ToUpper(*in.ContainerNumber)
		}
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("shipment_id", id).Msg("mise à jour dossier")
	return uc.toResponse(updated), nil
}

// SetArrivalDate enregistre l'arrivée effective au port.
func (uc *UseCase) SetArrivalDate(ctx context.Context, actor entity.Actor, id string, in dto.ArrivalRequest) (*dto.ShipmentResponse, error) {
	if !actor.CanEditOperations() {
		return nil, domain.ErrForbidden
	}
	arrival, err := dto.ParseDate(in.ArrivalDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	updated, err := uc.repo.UpdateAtomic(ctx, id, func(s *entity.Shipment) error {
		s.ArrivalDate = &arrival
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(updated), nil
}

package repository

import (
	"context"

	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
)

// ShipmentRepository port de persistance des dossiers (DIP).
// Le stockage est indexé par id (accès O(1)) ; les listes sont renvoyées
// triées par date de création décroissante.
//
// GetByID renvoie (nil, nil) si le dossier n'existe pas.
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	List(ctx context.Context) ([]*entity.Shipment, error)
	TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error)

	// UpdateAtomic applique fn sur le dossier sous verrou d'écriture : lecture,
	// mutation sur copie, remplacement de l'enregistrement si fn réussit.
	// Deux appels concurrents sur le même id sont sérialisés (pas de mise à
	// jour perdue). Si fn échoue, rien n'est écrit. Renvoie domain.ErrNotFound
	// si l'id est inconnu.
	UpdateAtomic(ctx context.Context, id string, fn func(*entity.Shipment) error) (*entity.Shipment, error)
}

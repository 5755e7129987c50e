// Package memory fournit les dépôts en mémoire du mode STORAGE_DRIVER=memory :
// cartes protégées par RWMutex, copies profondes en entrée comme en sortie.
// C'est le pilote par défaut ; le pilote postgres partage les mêmes interfaces.
package memory

import (
	"context"
	"sync"

	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
)

// ShipmentStore dépôt des dossiers en mémoire.
type ShipmentStore struct {
	mu       sync.RWMutex
	items    map[string]*entity.Shipment
	tracking map[string]string // numéro de suivi → id
}

var _ repository.ShipmentRepository = (*ShipmentStore)(nil)

// NewShipmentStore construit un dépôt vide.
func NewShipmentStore() *ShipmentStore {
	return &ShipmentStore{
		items:    make(map[string]*entity.Shipment),
		tracking: make(map[string]string),
	}
}

// Create insère un dossier. ErrDuplicate si l'id ou le numéro de suivi existe.
func (st *ShipmentStore) Create(ctx context.Context, s *entity.Shipment) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.items[s.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := st.tracking[s.TrackingNumber]; ok {
		return domain.ErrDuplicate
	}
	st.items[s.ID] = s.Clone()
	st.tracking[s.TrackingNumber] = s.ID
	return nil
}

// GetByID renvoie une copie du dossier, (nil, nil) s'il n'existe pas.
func (st *ShipmentStore) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.items[id]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

// List renvoie une copie de tous les dossiers, ordre indéfini.
func (st *ShipmentStore) List(ctx context.Context) ([]*entity.Shipment, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]*entity.Shipment, 0, len(st.items))
	for _, s := range st.items {
		out = append(out, s.Clone())
	}
	return out, nil
}

// TrackingNumberExists indique si un dossier porte déjà ce numéro de suivi.
func (st *ShipmentStore) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	_, ok := st.tracking[trackingNumber]
	return ok, nil
}

// UpdateAtomic applique fn sur une copie du dossier sous verrou exclusif puis
// remplace l'enregistrement. Si fn échoue, rien n'est écrit. Deux mutations
// concurrentes du même dossier sont sérialisées par le verrou.
func (st *ShipmentStore) UpdateAtomic(ctx context.Context, id string, fn func(*entity.Shipment) error) (*entity.Shipment, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	cur, ok := st.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	st.items[id] = next
	return next.Clone(), nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
)

// TeamStore registre d'équipe en mémoire.
type TeamStore struct {
	mu    sync.RWMutex
	items map[string]*entity.TeamMember
}

var _ repository.TeamRepository = (*TeamStore)(nil)

// NewTeamStore construit un registre vide.
func NewTeamStore() *TeamStore {
	return &TeamStore{items: make(map[string]*entity.TeamMember)}
}

// Create insère un membre. ErrEmailAlreadyExists si l'email est déjà enregistré.
func (st *TeamStore) Create(ctx context.Context, m *entity.TeamMember) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, ex := range st.items {
		if strings.EqualFold(ex.Email, m.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *m
	st.items[m.ID] = &c
	return nil
}

// Update remplace le membre. ErrNotFound s'il n'existe pas.
func (st *TeamStore) Update(ctx context.Context, m *entity.TeamMember) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.items[m.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *m
	st.items[m.ID] = &c
	return nil
}

// GetByID renvoie une copie du membre, (nil, nil) s'il n'existe pas.
func (st *TeamStore) GetByID(ctx context.Context, id string) (*entity.TeamMember, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	m, ok := st.items[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

// FindByEmail recherche par email, insensible à la casse. (nil, nil) si absent.
func (st *TeamStore) FindByEmail(ctx context.Context, email string) (*entity.TeamMember, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	for _, m := range st.items {
		if strings.EqualFold(m.Email, email) {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

// List renvoie les membres triés par date d'arrivée croissante.
func (st *TeamStore) List(ctx context.Context) ([]*entity.TeamMember, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]*entity.TeamMember, 0, len(st.items))
	for _, m := range st.items {
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].JoinedDate.Before(out[j].JoinedDate)
	})
	return out, nil
}

// Delete retire un membre du registre. ErrNotFound s'il n'existe pas.
func (st *TeamStore) Delete(ctx context.Context, id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(st.items, id)
	return nil
}

package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
)

// UserStore dépôt des comptes en mémoire. Les emails sont indexés en
// minuscules : deux casses du même email désignent le même compte.
type UserStore struct {
	mu     sync.RWMutex
	items  map[string]*entity.User
	emails map[string]string // email minuscule → id
}

var _ repository.UserRepository = (*UserStore)(nil)

// NewUserStore construit un dépôt vide.
func NewUserStore() *UserStore {
	return &UserStore{
		items:  make(map[string]*entity.User),
		emails: make(map[string]string),
	}
}

// Create insère un compte. ErrEmailAlreadyExists si l'email est déjà pris.
func (st *UserStore) Create(ctx context.Context, u *entity.User) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, ok := st.emails[key]; ok {
		return domain.ErrEmailAlreadyExists
	}
	c := *u
	st.items[u.ID] = &c
	st.emails[key] = u.ID
	return nil
}

// GetByID renvoie une copie du compte, (nil, nil) s'il n'existe pas.
func (st *UserStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	u, ok := st.items[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// FindByEmail recherche par email, insensible à la casse. (nil, nil) si absent.
func (st *UserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	id, ok := st.emails[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	c := *st.items[id]
	return &c, nil
}

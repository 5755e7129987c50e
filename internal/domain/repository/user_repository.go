package repository

import (
	"context"

	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
)

// UserRepository port de persistance des comptes utilisateurs.
// Les lectures renvoient (nil, nil) si le compte n'existe pas.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

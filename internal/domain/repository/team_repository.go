package repository

import (
	"context"

	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
)

// TeamRepository port de persistance du registre d'équipe.
// Delete est la seule suppression du domaine (révocation d'accès).
// Les lectures renvoient (nil, nil) si le membre n'existe pas.
type TeamRepository interface {
	Create(ctx context.Context, m *entity.TeamMember) error
	Update(ctx context.Context, m *entity.TeamMember) error
	GetByID(ctx context.Context, id string) (*entity.TeamMember, error)
	FindByEmail(ctx context.Context, email string) (*entity.TeamMember, error)
	List(ctx context.Context) ([]*entity.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

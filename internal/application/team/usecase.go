// Package team gestion du registre d'équipe de l'agence : liste, invitation
// et révocation. Réservé au directeur.
package team

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
	"github.com/ibdiallo/transit-secure-api/pkg/logger"
)

// UseCase cas d'usage du registre d'équipe.
type UseCase struct {
	repo repository.TeamRepository
	log  *logger.Logger
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.TeamRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// List renvoie les membres du registre, anciens d'abord.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor) ([]dto.TeamMemberResponse, error) {
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	members, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out, nil
}

// Invite enregistre une invitation : membre Pending avec le rôle attribué.
// Le compte n'existera qu'à l'activation (POST /api/auth/activate).
func (uc *UseCase) Invite(ctx context.Context, actor entity.Actor, in dto.InviteMemberRequest) (*dto.TeamMemberResponse, error) {
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || !strings.Contains(email, "@") || !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}

	m := &entity.TeamMember{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Role:       in.Role,
		Status:     entity.MemberPending,
		JoinedDate: time.Now(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	uc.log.Audit("invitation_envoyee").
		Str("member_id", m.ID).
		Str("role", m.Role).
		Str("user_id", actor.UserID).
		Msg("membre invité")

	resp := toMemberResponse(m)
	return &resp, nil
}

// Remove révoque l'accès d'un membre. Seule suppression du domaine : les
// dossiers, eux, ne se suppriment jamais.
func (uc *UseCase) Remove(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.CanManageTeam() {
		return domain.ErrForbidden
	}
	if actor.UserID == id {
		return domain.ErrInvalidInput // le directeur ne se révoque pas lui-même
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.log.Audit("acces_revoque").
		Str("member_id", id).
		Str("user_id", actor.UserID).
		Msg("accès révoqué")
	return nil
}

func validRole(role string) bool {
	for _, r := range entity.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func toMemberResponse(m *entity.TeamMember) dto.TeamMemberResponse {
	return dto.TeamMemberResponse{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Role:       m.Role,
		Status:     m.Status,
		JoinedDate: m.JoinedDate,
	}
}

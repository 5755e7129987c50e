// Package auth cas d'usage d'authentification : inscription, connexion et
// activation des comptes invités par l'équipe.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
	"github.com/ibdiallo/transit-secure-api/pkg/jwt"
	"github.com/ibdiallo/transit-secure-api/pkg/logger"
)

// JWTConfig paramètres de génération des tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase cas d'usage d'authentification.
type UseCase struct {
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewUseCase construit le cas d'usage.
func NewUseCase(userRepo repository.UserRepository, teamRepo repository.TeamRepository, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, teamRepo: teamRepo, jwtCfg: jwtCfg, log: log}
}

// Register crée un compte : hash bcrypt du mot de passe puis persistance.
// ErrEmailAlreadyExists si l'email est déjà pris. Rôle CLIENT par défaut :
// les rôles internes s'obtiennent par invitation, jamais par auto-inscription.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = in.Email
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleClient,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Audit("inscription").Str("user_id", user.ID).Msg("compte créé")
	return toUserResponse(user), nil
}

// Login vérifie email et mot de passe puis émet le JWT.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Msg("connexion")
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Activate finalise une invitation : le membre Pending choisit son mot de
// passe, un compte est créé avec le rôle attribué par le directeur, et le
// membre passe Active.
func (uc *UseCase) Activate(ctx context.Context, in dto.ActivateRequest) (*dto.LoginResponse, error) {
	// L'écran d'activation accepte 6 caractères minimum, contrairement à
	// l'inscription libre qui en exige 8.
	if len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	member, err := uc.teamRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrNotFound
	}
	if member.Status != entity.MemberPending {
		return nil, domain.ErrInvalidInput // invitation déjà consommée
	}

	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        member.Email,
		PasswordHash: string(hash),
		Name:         member.Name,
		Role:         member.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	member.Status = entity.MemberActive
	if err := uc.teamRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.log.Audit("activation_invitation").
		Str("user_id", user.ID).
		Str("role", user.Role).
		Msg("invitation activée")

	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

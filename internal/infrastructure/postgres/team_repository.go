package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implémentation du port TeamRepository sur PostgreSQL.
type TeamRepo struct {
	pool *pgxpool.Pool
}

// NewTeamRepository construit l'adaptateur de persistance du registre d'équipe.
func NewTeamRepository(pool *pgxpool.Pool) *TeamRepo {
	return &TeamRepo{pool: pool}
}

// Create persiste une invitation.
func (r *TeamRepo) Create(ctx context.Context, m *entity.TeamMember) error {
	query := `
		INSERT INTO team_members (id, name, email, role, status, joined_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, m.ID, m.Name, m.Email, m.Role, m.Status, m.JoinedDate)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

// Update remplace le membre. ErrNotFound s'il n'existe pas.
func (r *TeamRepo) Update(ctx context.Context, m *entity.TeamMember) error {
	query := `
		UPDATE team_members SET name = $2, email = $3, role = $4, status = $5
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, m.ID, m.Name, m.Email, m.Role, m.Status)
	if err != nil {
		return fmt.Errorf("update team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID lit un membre, (nil, nil) s'il n'existe pas.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.TeamMember, error) {
	return r.queryOne(ctx, `
		SELECT id, name, email, role, status, joined_date
		FROM team_members WHERE id = $1`, id)
}

// FindByEmail recherche par email, insensible à la casse. (nil, nil) si absent.
func (r *TeamRepo) FindByEmail(ctx context.Context, email string) (*entity.TeamMember, error) {
	return r.queryOne(ctx, `
		SELECT id, name, email, role, status, joined_date
		FROM team_members WHERE LOWER(email) = LOWER($1) LIMIT 1`, email)
}

// List lit le registre, anciens d'abord.
func (r *TeamRepo) List(ctx context.Context) ([]*entity.TeamMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, role, status, joined_date
		FROM team_members ORDER BY joined_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var list []*entity.TeamMember
	for rows.Next() {
		var m entity.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.Status, &m.JoinedDate); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete retire un membre. ErrNotFound s'il n'existe pas.
func (r *TeamRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TeamRepo) queryOne(ctx context.Context, query string, arg any) (*entity.TeamMember, error) {
	var m entity.TeamMember
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.Name, &m.Email, &m.Role, &m.Status, &m.JoinedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team member: %w", err)
	}
	return &m, nil
}

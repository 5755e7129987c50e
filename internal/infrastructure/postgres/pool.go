// Package postgres implémente les ports de persistance sur PostgreSQL via
// pgx, pour les déploiements où l'état doit survivre au processus
// (STORAGE_DRIVER=postgres). Les documents, écritures et alertes d'un dossier
// vivent en JSONB dans la ligne du dossier : ils sont toujours lus et écrits
// comme un tout, sous verrou ligne.
package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ibdiallo/transit-secure-api/pkg/config"
)

// NewPool crée le pool de connexions à partir de la configuration et vérifie
// la liaison par un ping. Le codec NUMERIC → shopspring/decimal est enregistré
// sur chaque connexion : les montants GNF restent exacts.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: créer le pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `
	id, tracking_number, client_name, commodity_type, description, origin,
	destination, status, eta, arrival_date, free_days, documents, expenses,
	alerts, bl_number, shipping_line, container_number, customs_regime,
	declaration_number, declared_amount, delivery_info, created_at, updated_at`

// ShipmentRepo implémentation du port ShipmentRepository sur PostgreSQL.
type ShipmentRepo struct {
	pool *pgxpool.Pool
}

// NewShipmentRepository construit l'adaptateur de persistance des dossiers.
func NewShipmentRepository(pool *pgxpool.Pool) *ShipmentRepo {
	return &ShipmentRepo{pool: pool}
}

// Create persiste un nouveau dossier.
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	docs, exps, alerts, delivery, err := marshalCollections(s)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err = r.pool.Exec(ctx, query,
		s.ID, s.TrackingNumber, s.ClientName, string(s.CommodityType), s.Description,
		s.Origin, s.Destination, string(s.Status), s.ETA, s.ArrivalDate, s.FreeDays,
		docs, exps, alerts, s.BLNumber, s.ShippingLine, s.ContainerNumber,
		s.CustomsRegime, s.DeclarationNumber, s.DeclaredAmount, delivery,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID lit un dossier, (nil, nil) s'il n'existe pas.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
	s, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment by id: %w", err)
	}
	return s, nil
}

// List lit tous les dossiers.
func (r *ShipmentRepo) List(ctx context.Context) ([]*entity.Shipment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+shipmentColumns+` FROM shipments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// TrackingNumberExists indique si un dossier porte déjà ce numéro de suivi.
func (r *ShipmentRepo) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM shipments WHERE tracking_number = $1)`, trackingNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("tracking number exists: %w", err)
	}
	return exists, nil
}

// UpdateAtomic lit le dossier sous SELECT FOR UPDATE, applique fn puis écrit
// la ligne entière dans la même transaction. Si fn échoue, rollback : rien
// n'est écrit. Le verrou ligne sérialise les mutations concurrentes.
func (r *ShipmentRepo) UpdateAtomic(ctx context.Context, id string, fn func(*entity.Shipment) error) (*entity.Shipment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1 FOR UPDATE`, id)
	s, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock shipment: %w", err)
	}

	if err := fn(s); err != nil {
		return nil, err
	}

	docs, exps, alerts, delivery, err := marshalCollections(s)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE shipments SET
			client_name = $2, commodity_type = $3, description = $4, origin = $5,
			destination = $6, status = $7, eta = $8, arrival_date = $9,
			free_days = $10, documents = $11, expenses = $12, alerts = $13,
			bl_number = $14, shipping_line = $15, container_number = $16,
			customs_regime = $17, declaration_number = $18, declared_amount = $19,
			delivery_info = $20, updated_at = $21
		WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		s.ID, s.ClientName, string(s.CommodityType), s.Description, s.Origin,
		s.Destination, string(s.Status), s.ETA, s.ArrivalDate, s.FreeDays,
		docs, exps, alerts, s.BLNumber, s.ShippingLine, s.ContainerNumber,
		s.CustomsRegime, s.DeclarationNumber, s.DeclaredAmount, delivery, s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update shipment: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return s, nil
}

// marshalCollections sérialise les collections JSONB de la ligne.
func marshalCollections(s *entity.Shipment) (docs, exps, alerts, delivery []byte, err error) {
	if docs, err = json.Marshal(s.Documents); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal documents: %w", err)
	}
	if exps, err = json.Marshal(s.Expenses); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal expenses: %w", err)
	}
	if alerts, err = json.Marshal(s.Alerts); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal alerts: %w", err)
	}
	if s.DeliveryInfo != nil {
		if delivery, err = json.Marshal(s.DeliveryInfo); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal delivery info: %w", err)
		}
	}
	return docs, exps, alerts, delivery, nil
}

// scanShipment lit une ligne complète et reconstruit l'entité.
func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var (
		s                         entity.Shipment
		commodity, status         string
		docs, exps, alerts, deliv []byte
	)
	err := row.Scan(
		&s.ID, &s.TrackingNumber, &s.ClientName, &commodity, &s.Description,
		&s.Origin, &s.Destination, &status, &s.ETA, &s.ArrivalDate, &s.FreeDays,
		&docs, &exps, &alerts, &s.BLNumber, &s.ShippingLine, &s.ContainerNumber,
		&s.CustomsRegime, &s.DeclarationNumber, &s.DeclaredAmount, &deliv,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CommodityType = entity.CommodityType(commodity)
	s.Status = entity.ShipmentStatus(status)

	if err := json.Unmarshal(docs, &s.Documents); err != nil {
		return nil, fmt.Errorf("unmarshal documents: %w", err)
	}
	if err := json.Unmarshal(exps, &s.Expenses); err != nil {
		return nil, fmt.Errorf("unmarshal expenses: %w", err)
	}
	if err := json.Unmarshal(alerts, &s.Alerts); err != nil {
		return nil, fmt.Errorf("unmarshal alerts: %w", err)
	}
	if len(deliv) > 0 {
		s.DeliveryInfo = &entity.DeliveryInfo{}
		if err := json.Unmarshal(deliv, s.DeliveryInfo); err != nil {
			return nil, fmt.Errorf("unmarshal delivery info: %w", err)
		}
	}
	return &s, nil
}

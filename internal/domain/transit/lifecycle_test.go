package transit_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/transit"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildShipment(status entity.ShipmentStatus, docs ...entity.DocumentType) *entity.Shipment {
	s := &entity.Shipment{
		ID:             "ship-1",
		TrackingNumber: "IM4-1234-GN",
		ClientName:     "Ets Barry & Frères",
		Status:         status,
		FreeDays:       entity.DefaultFreeDays,
	}
	for _, t := range docs {
		s.Documents = append(s.Documents, entity.Document{
			ID:         string(t) + "-doc",
			Name:       string(t),
			Type:       t,
			Status:     entity.DocVerified,
			UploadDate: time.Now(),
		})
	}
	return s
}

// ── Advance : ordre strict ────────────────────────────────────────────────────

func TestAdvance_EtapeSuivanteAcceptee(t *testing.T) {
	s := buildShipment(entity.StatusOpened)

	err := transit.Advance(s, entity.StatusPreClearance)

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreClearance, s.Status)
}

func TestAdvance_SautDEtapeRefuse(t *testing.T) {
	s := buildShipment(entity.StatusOpened)

	err := transit.Advance(s, entity.StatusCustomsLiquidation)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.StatusOpened, s.Status, "le statut ne doit pas bouger sur refus")
}

func TestAdvance_RetourEnArriereRefuse(t *testing.T) {
	s := buildShipment(entity.StatusBAEGranted)

	err := transit.Advance(s, entity.StatusPreClearance)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.StatusBAEGranted, s.Status)
}

func TestAdvance_StatutInconnuRefuse(t *testing.T) {
	s := buildShipment(entity.StatusOpened)

	err := transit.Advance(s, entity.ShipmentStatus("ARCHIVE"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Advance : gardes documentaires ────────────────────────────────────────────

func TestAdvance_LiquidationExigeDDIEtBSC(t *testing.T) {
	cases := []struct {
		name string
		docs []entity.DocumentType
		ok   bool
	}{
		{"aucune pièce", nil, false},
		{"DDI seul", []entity.DocumentType{entity.DocDDI}, false},
		{"BSC seul", []entity.DocumentType{entity.DocBSC}, false},
		{"DDI et BSC", []entity.DocumentType{entity.DocDDI, entity.DocBSC}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := buildShipment(entity.StatusPreClearance, tc.docs...)
			err := transit.Advance(s, entity.StatusCustomsLiquidation)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			}
		})
	}
}

func TestAdvance_SortiePortExigeBAEEtPhotoCamion(t *testing.T) {
	s := buildShipment(entity.StatusBAEGranted, entity.DocBAE)

	err := transit.Advance(s, entity.StatusPortExit)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "photo camion manquante")

	s = buildShipment(entity.StatusBAEGranted, entity.DocBAE, entity.DocPhotoCamion)
	require.NoError(t, transit.Advance(s, entity.StatusPortExit))
	assert.Equal(t, entity.StatusPortExit, s.Status)
}

// ── Advance : états réservés aux opérations dédiées ───────────────────────────

func TestAdvance_LiquidationPayeeReserveeAuPaiement(t *testing.T) {
	s := buildShipment(entity.StatusCustomsLiquidation, entity.DocDDI, entity.DocBSC)

	err := transit.Advance(s, entity.StatusLiquidationPaid)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAdvance_LivraisonReserveeADeliver(t *testing.T) {
	s := buildShipment(entity.StatusPortExit)

	err := transit.Advance(s, entity.StatusDelivered)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ── Declare ───────────────────────────────────────────────────────────────────

func TestDeclare_EnregistreDeboursDouaneNonPaye(t *testing.T) {
	s := buildShipment(entity.StatusCustomsLiquidation)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	err := transit.Declare(s, "C-2024-4521", decimal.NewFromInt(5_000_000), now)

	require.NoError(t, err)
	assert.Equal(t, "C-2024-4521", s.DeclarationNumber)
	require.NotNil(t, s.DeclaredAmount)
	assert.True(t, s.DeclaredAmount.Equal(decimal.NewFromInt(5_000_000)))

	require.Len(t, s.Expenses, 1)
	exp := s.Expenses[0]
	assert.Equal(t, "Liquidation Douane (C-2024-4521)", exp.Description)
	assert.Equal(t, entity.CategoryDouane, exp.Category)
	assert.Equal(t, entity.ExpenseDisbursement, exp.Type)
	assert.False(t, exp.Paid)
	assert.Equal(t, now, exp.Date)
}

func TestDeclare_UneSeuleDeclarationParDossier(t *testing.T) {
	s := buildShipment(entity.StatusCustomsLiquidation)
	now := time.Now()
	require.NoError(t, transit.Declare(s, "C-2024-0001", decimal.NewFromInt(1_000_000), now))

	err := transit.Declare(s, "C-2024-0002", decimal.NewFromInt(2_000_000), now)

	assert.ErrorIs(t, err, domain.ErrAlreadyDeclared)
	assert.Len(t, s.Expenses, 1)
}

func TestDeclare_RefuseeHorsLiquidationDouane(t *testing.T) {
	s := buildShipment(entity.StatusOpened)

	err := transit.Declare(s, "C-2024-0001", decimal.NewFromInt(1_000_000), time.Now())

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeclare_MontantNonPositifRefuse(t *testing.T) {
	s := buildShipment(entity.StatusCustomsLiquidation)

	err := transit.Declare(s, "C-2024-0001", decimal.Zero, time.Now())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Deliver ───────────────────────────────────────────────────────────────────

func TestDeliver_DepuisSortiePortSeulement(t *testing.T) {
	s := buildShipment(entity.StatusOpened)
	info := entity.DeliveryInfo{DriverName: "Mamadou Sow", TruckPlate: "RC-4523-A"}

	err := transit.Deliver(s, info, time.Now())

	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "livrer un dossier ouvert ne doit pas sauter au statut final")
	assert.Equal(t, entity.StatusOpened, s.Status)
	assert.Nil(t, s.DeliveryInfo)
}

func TestDeliver_ChauffeurEtPlaqueObligatoires(t *testing.T) {
	s := buildShipment(entity.StatusPortExit)

	err := transit.Deliver(s, entity.DeliveryInfo{DriverName: "  ", TruckPlate: "RC-4523-A"}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = transit.Deliver(s, entity.DeliveryInfo{DriverName: "Mamadou Sow"}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeliver_HorodateEtCloture(t *testing.T) {
	s := buildShipment(entity.StatusPortExit)
	now := time.Date(2024, 6, 1, 16, 30, 0, 0, time.UTC)

	err := transit.Deliver(s, entity.DeliveryInfo{
		DriverName:    "Mamadou Sow",
		TruckPlate:    "RC-4523-A",
		RecipientName: "Ets Barry & Frères",
	}, now)

	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivered, s.Status)
	require.NotNil(t, s.DeliveryInfo)
	assert.Equal(t, now, s.DeliveryInfo.DeliveryDate)
}

// ── Ordre du workflow ─────────────────────────────────────────────────────────

func TestNextStatus_OrdreComplet(t *testing.T) {
	assert.Equal(t, entity.StatusPreClearance, transit.NextStatus(entity.StatusOpened))
	assert.Equal(t, entity.StatusDelivered, transit.NextStatus(entity.StatusPortExit))
	assert.Equal(t, entity.ShipmentStatus(""), transit.NextStatus(entity.StatusDelivered))
}

package accounting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibdiallo/transit-secure-api/internal/application/accounting"
	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/infrastructure/memory"
	"github.com/ibdiallo/transit-secure-api/pkg/logger"
)

// horloge fixe : jeudi 2026-08-27 12:00, Conakry (UTC).
var testNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

func expenseAt(id string, amount int64, typ entity.ExpenseType, paid bool, date time.Time) entity.Expense {
	return entity.Expense{
		ID:          id,
		Description: "écriture " + id,
		Amount:      decimal.NewFromInt(amount),
		Paid:        paid,
		Category:    entity.CategoryAgence,
		Type:        typ,
		Date:        date,
	}
}

func newLedgerUseCase(t *testing.T) (*accounting.UseCase, *memory.ShipmentStore) {
	t.Helper()
	store := memory.NewShipmentStore()
	log := logger.New(logger.Config{Level: "error"})
	uc := accounting.NewUseCase(store, log).WithClock(func() time.Time { return testNow })
	return uc, store
}

func seed(t *testing.T, store *memory.ShipmentStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.Shipment{
		ID: "s1", TrackingNumber: "IM4-1001-GN", ClientName: "Alpha Import",
		Status: entity.StatusOpened,
		Expenses: []entity.Expense{
			// aujourd'hui
			expenseAt("e1", 5_000_000, entity.ExpenseProvision, true, testNow.Add(-time.Hour)),
			// lundi de la même semaine (2026-08-24)
			expenseAt("e2", 2_000_000, entity.ExpenseDisbursement, true, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)),
			// dimanche précédent, hors semaine courante
			expenseAt("e3", 1_000_000, entity.ExpenseFee, true, time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)),
		},
	}))
	require.NoError(t, store.Create(ctx, &entity.Shipment{
		ID: "s2", TrackingNumber: "IT-2002-GN", ClientName: "Bêta Négoce",
		Status: entity.StatusCustomsLiquidation,
		Expenses: []entity.Expense{
			// même mois, semaine passée ; non payée : hors totaux
			expenseAt("e4", 9_000_000, entity.ExpenseDisbursement, false, time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
			// année courante, mois passé
			expenseAt("e5", 3_000_000, entity.ExpenseProvision, true, time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)),
			// année précédente
			expenseAt("e6", 4_000_000, entity.ExpenseProvision, true, time.Date(2025, 12, 30, 9, 0, 0, 0, time.UTC)),
		},
	}))
}

func TestLedgerPeriods(t *testing.T) {
	uc, store := newLedgerUseCase(t)
	seed(t, store)
	actor := entity.Actor{UserID: "u1", Role: entity.RoleAccountant}

	cases := []struct {
		period string
		count  int
	}{
		{"day", 1},    // e1
		{"week", 2},   // e1, e2 (semaine du lundi 24)
		{"month", 4},  // + e3, e4
		{"year", 5},   // + e5
		{"all", 6},    // + e6
		{"", 6},       // vide vaut all
	}
	for _, tc := range cases {
		entries, summary, err := uc.Ledger(context.Background(), actor, tc.period)
		require.NoError(t, err, tc.period)
		assert.Len(t, entries, tc.count, tc.period)
		assert.Equal(t, tc.count, summary.Count, tc.period)
	}
}

func TestLedgerTotalsAndOrder(t *testing.T) {
	uc, store := newLedgerUseCase(t)
	seed(t, store)
	actor := entity.Actor{UserID: "u1", Role: entity.RoleDirector}

	entries, summary, err := uc.Ledger(context.Background(), actor, "month")
	require.NoError(t, err)

	// encaissements : e1 ; décaissements payés : e2 + e3 ; e4 non payée ignorée
	assert.True(t, summary.Income.Equal(decimal.NewFromInt(5_000_000)), summary.Income.String())
	assert.True(t, summary.Expense.Equal(decimal.NewFromInt(3_000_000)), summary.Expense.String())
	assert.True(t, summary.Net.Equal(decimal.NewFromInt(2_000_000)), summary.Net.String())

	// tri par date décroissante, annotations dossier/client
	require.NotEmpty(t, entries)
	assert.Equal(t, "e1", entries[0].ID)
	assert.Equal(t, "IM4-1001-GN", entries[0].ShipmentRef)
	assert.Equal(t, "Alpha Import", entries[0].Client)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.After(entries[i-1].Date))
	}
}

func TestSummarySeriesByDay(t *testing.T) {
	uc, store := newLedgerUseCase(t)
	seed(t, store)
	actor := entity.Actor{UserID: "u1", Role: entity.RoleAccountant}

	summary, series, err := uc.Summary(context.Background(), actor, "month")
	require.NoError(t, err)

	// totaux identiques au journal
	assert.True(t, summary.Income.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, summary.Expense.Equal(decimal.NewFromInt(3_000_000)))

	// un point par jour, ordre chronologique ; e4 non payée absente de la série
	require.Len(t, series, 3)
	assert.Equal(t, "23/08", series[0].Label)
	assert.True(t, series[0].Expense.Equal(decimal.NewFromInt(1_000_000)))
	assert.Equal(t, "24/08", series[1].Label)
	assert.True(t, series[1].Expense.Equal(decimal.NewFromInt(2_000_000)))
	assert.Equal(t, "27/08", series[2].Label)
	assert.True(t, series[2].Income.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, series[2].Expense.IsZero())
}

func TestSummarySeriesByMonth(t *testing.T) {
	uc, store := newLedgerUseCase(t)
	seed(t, store)
	actor := entity.Actor{UserID: "u1", Role: entity.RoleDirector}

	_, series, err := uc.Summary(context.Background(), actor, "year")
	require.NoError(t, err)

	// sur l'année, regroupement par mois abrégé fr-FR
	require.Len(t, series, 2)
	assert.Equal(t, "févr.", series[0].Label)
	assert.True(t, series[0].Income.Equal(decimal.NewFromInt(3_000_000)))
	assert.Equal(t, "août", series[1].Label)
}

func TestSummarySeriesByHour(t *testing.T) {
	uc, store := newLedgerUseCase(t)
	seed(t, store)
	actor := entity.Actor{UserID: "u1", Role: entity.RoleAccountant}

	// sur la journée, regroupement par heure:minute
	_, series, err := uc.Summary(context.Background(), actor, "day")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "11:00", series[0].Label)
}

func TestSummaryForbidden(t *testing.T) {
	uc, store := newLedgerUseCase(t)
	seed(t, store)

	_, _, err := uc.Summary(context.Background(), entity.Actor{UserID: "u2", Role: entity.RoleFieldAgent}, "month")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLedgerAccessAndInput(t *testing.T) {
	uc, store := newLedgerUseCase(t)
	seed(t, store)

	_, _, err := uc.Ledger(context.Background(), entity.Actor{UserID: "u2", Role: entity.RoleFieldAgent}, "month")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = uc.Ledger(context.Background(), entity.Actor{UserID: "u1", Role: entity.RoleAccountant}, "quarter")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

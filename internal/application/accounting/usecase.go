// Package accounting agrège les écritures de tous les dossiers en un journal
// comptable global, filtrable par période, avec totaux d'encaissements et de
// décaissements.
package accounting

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
	"github.com/ibdiallo/transit-secure-api/pkg/logger"
)

// Périodes acceptées par le journal.
const (
	RangeDay   = "day"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
	RangeAll   = "all"
)

// UseCase journal comptable global.
type UseCase struct {
	repo repository.ShipmentRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.ShipmentRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log, now: time.Now}
}

// WithClock fixe l'horloge du journal (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Ledger renvoie les écritures de la période, annotées du dossier et du
// client, triées par date décroissante, avec les totaux. Période vide vaut
// "all". Accès réservé aux rôles financiers.
func (uc *UseCase) Ledger(ctx context.Context, actor entity.Actor, period string) ([]dto.LedgerEntryResponse, dto.LedgerSummaryResponse, error) {
	if !actor.CanManageFinances() {
		return nil, dto.LedgerSummaryResponse{}, domain.ErrForbidden
	}
	if period == "" {
		period = RangeAll
	}

	cutoff, err := periodStart(uc.now(), period)
	if err != nil {
		return nil, dto.LedgerSummaryResponse{}, err
	}

	shipments, err := uc.repo.List(ctx)
	if err != nil {
		return nil, dto.LedgerSummaryResponse{}, err
	}

	entries := make([]dto.LedgerEntryResponse, 0)
	income, expense := decimal.Zero, decimal.Zero
	for _, s := range shipments {
		for _, e := range s.Expenses {
			if !cutoff.IsZero() && e.Date.Before(cutoff) {
				continue
			}
			entries = append(entries, dto.LedgerEntryResponse{
				ID:          e.ID,
				ShipmentRef: s.TrackingNumber,
				Client:      s.ClientName,
				Description: e.Description,
				Amount:      e.Amount,
				Paid:        e.Paid,
				Category:    string(e.Category),
				Type:        string(e.Type),
				Date:        e.Date,
			})

			// seules les écritures effectivement réglées pèsent sur les totaux
			if !e.Paid {
				continue
			}
			switch e.Type {
			case entity.ExpenseProvision:
				income = income.Add(e.Amount)
			case entity.ExpenseDisbursement, entity.ExpenseFee:
				expense = expense.Add(e.Amount)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	summary := dto.LedgerSummaryResponse{
		Range:   period,
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
		Count:   len(entries),
	}
	return entries, summary, nil
}

// Summary renvoie les totaux de la période accompagnés de la série par
// sous-période alimentant le graphique de trésorerie : regroupement par heure
// sur la journée, par mois sur l'année, par jour sinon. Comme pour les
// totaux, seules les écritures réglées pèsent sur la série.
func (uc *UseCase) Summary(ctx context.Context, actor entity.Actor, period string) (dto.LedgerSummaryResponse, []dto.LedgerSeriesPointResponse, error) {
	entries, summary, err := uc.Ledger(ctx, actor, period)
	if err != nil {
		return dto.LedgerSummaryResponse{}, nil, err
	}

	type bucket struct {
		point dto.LedgerSeriesPointResponse
		first time.Time
	}
	groups := make(map[string]*bucket)
	for _, e := range entries {
		if !e.Paid {
			continue
		}
		label := bucketLabel(summary.Range, e.Date)
		b, ok := groups[label]
		if !ok {
			b = &bucket{
				point: dto.LedgerSeriesPointResponse{Label: label, Income: decimal.Zero, Expense: decimal.Zero},
				first: e.Date,
			}
			groups[label] = b
		}
		if e.Date.Before(b.first) {
			b.first = e.Date
		}
		if e.Type == string(entity.ExpenseProvision) {
			b.point.Income = b.point.Income.Add(e.Amount)
		} else {
			b.point.Expense = b.point.Expense.Add(e.Amount)
		}
	}

	buckets := make([]*bucket, 0, len(groups))
	for _, b := range groups {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].first.Before(buckets[j].first) })

	series := make([]dto.LedgerSeriesPointResponse, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, b.point)
	}
	return summary, series, nil
}

// Étiquettes de mois abrégées fr-FR pour la série annuelle.
var frShortMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// bucketLabel sous-période d'une écriture selon le filtre courant.
func bucketLabel(period string, d time.Time) string {
	switch period {
	case RangeDay:
		return d.Format("15:04")
	case RangeYear:
		return frShortMonths[d.Month()-1]
	default:
		return d.Format("02/01")
	}
}

// periodStart borne inférieure incluse de la période, zéro pour "all".
// La semaine démarre le lundi.
func periodStart(now time.Time, period string) (time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case RangeAll:
		return time.Time{}, nil
	case RangeDay:
		return midnight, nil
	case RangeWeek:
		offset := (int(midnight.Weekday()) + 6) % 7 // lundi = 0
		return midnight.AddDate(0, 0, -offset), nil
	case RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case RangeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, domain.ErrInvalidInput
	}
}

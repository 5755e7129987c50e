// Package pdf génère le relevé de dossier remis au client : identité du
// dossier, journal des écritures et solde.
//
// Mise en page A4 :
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Agence + N° de suivi + date d'édition               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DOSSIER: client / BL / conteneur / régime / statut          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Date | Description | Catégorie | Montant | Réglé     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX: provisions / débours payés / SOLDE CLIENT           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/transit"
	"github.com/ibdiallo/transit-secure-api/pkg/gnf"
)

const agencyName = "TransitSecure Guinée"

var (
	colorPrimary = &props.Color{Red: 11, Green: 83, Blue: 69}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// StatementGenerator génère le relevé de dossier avec Maroto v2.
type StatementGenerator struct {
	balanceMode transit.BalanceMode
}

// NewStatementGenerator construit le générateur.
func NewStatementGenerator(mode transit.BalanceMode) *StatementGenerator {
	return &StatementGenerator{balanceMode: mode}
}

// GenerateStatement génère le PDF du relevé et renvoie ses octets.
func (g *StatementGenerator) GenerateStatement(_ context.Context, s *entity.Shipment) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relevé de dossier "+s.TrackingNumber, true).
		WithAuthor(agencyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(identityRows(s)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range expenseRows(s.Expenses) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(s, g.balanceMode))

	if s.Blocked() {
		m.AddRows(alertRows(s.Alerts)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: génération du relevé: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow agence à gauche, numéro de suivi et date d'édition à droite.
func headerRow(s *entity.Shipment) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(agencyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Transit & Dédouanement — Port Autonome de Conakry", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RELEVÉ DE DOSSIER", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(s.TrackingNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Édité le "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// identityRows identité du dossier : client, marchandise, route, références.
func identityRows(s *entity.Shipment) []core.Row {
	ref := "BL " + s.BLNumber
	if s.ContainerNumber != "" {
		ref += "   |   Conteneur " + s.ContainerNumber
	}
	if s.DeclarationNumber != "" {
		ref += "   |   Déclaration " + s.DeclarationNumber
	}
	return []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(s.Description, props.Text{Size: 8, Top: 12, Color: colorGray}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s → %s   |   Régime %s   |   %s",
				s.Origin, s.Destination, s.CustomsRegime, s.Status.Label(),
			), props.Text{Size: 8, Top: 1}),
			text.New(ref, props.Text{Size: 8, Top: 7, Color: colorGray}),
		)),
	}
}

// tableHeaderRow en-tête du journal des écritures.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Description", 4, align.Left),
		h("Catégorie", 2, align.Left),
		h("Montant (GNF)", 3, align.Right),
		h("Réglé", 1, align.Center),
	)
}

// expenseRows une ligne par écriture, provisions signées en positif.
func expenseRows(expenses []entity.Expense) []core.Row {
	result := make([]core.Row, 0, len(expenses))
	for _, e := range expenses {
		amount := e.Amount
		if e.Type != entity.ExpenseProvision {
			amount = amount.Neg()
		}
		paid := "Non"
		if e.Paid {
			paid = "Oui"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				e.Date.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				e.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				string(e.Category),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				gnf.FormatAmount(amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				paid,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// totalsRow provisions, débours payés et solde client.
func totalsRow(s *entity.Shipment, mode transit.BalanceMode) core.Row {
	provisions, disbursed := decimal.Zero, decimal.Zero
	for _, e := range s.Expenses {
		switch {
		case e.Type == entity.ExpenseProvision && (mode == transit.BalanceObserved || e.Paid):
			provisions = provisions.Add(e.Amount)
		case e.Type == entity.ExpenseDisbursement && e.Paid:
			disbursed = disbursed.Add(e.Amount)
		}
	}
	balance := transit.ClientBalance(s, mode)

	label := func(t string) core.Component {
		return text.New(t, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(t string) core.Component {
		return text.New(t, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Provisions client:"),
			label("Débours payés:"),
			text.New("SOLDE CLIENT:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value(gnf.FormatGNF(provisions)),
			value(gnf.FormatGNF(disbursed)),
			text.New(gnf.FormatGNF(balance), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1,
			}),
		),
		col.New(1),
	)
}

// alertRows bloc des alertes si le dossier est bloqué.
func alertRows(alerts []string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DOSSIER BLOQUÉ", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for _, a := range alerts {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("• "+a, props.Text{Size: 8, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ibdiallo/transit-secure-api/internal/application/accounting"
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
)

// AccountingHandler journal comptable global (rôles financiers uniquement).
type AccountingHandler struct {
	uc *accounting.UseCase
}

// NewAccountingHandler construit le handler.
func NewAccountingHandler(uc *accounting.UseCase) *AccountingHandler {
	return &AccountingHandler{uc: uc}
}

// ledgerResponse écritures de la période + totaux.
type ledgerResponse struct {
	Entries []dto.LedgerEntryResponse `json:"entries"`
	Summary dto.LedgerSummaryResponse `json:"summary"`
}

// Ledger godoc
// @Summary      Journal comptable global
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        range  query  string  false  "Période: day, week, month, year, all"  default(all)
// @Success      200    {object}  ledgerResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/accounting/ledger [get]
func (h *AccountingHandler) Ledger(c *fiber.Ctx) error {
	entries, summary, err := h.uc.Ledger(c.UserContext(), GetActor(c), c.Query("range"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ledgerResponse{Entries: entries, Summary: summary})
}

// summaryResponse totaux + série par sous-période pour le graphique.
type summaryResponse struct {
	Summary dto.LedgerSummaryResponse       `json:"summary"`
	Series  []dto.LedgerSeriesPointResponse `json:"series"`
}

// Summary godoc
// @Summary      Bilan financier de la période avec série pour le graphique
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        range  query  string  false  "Période: day, week, month, year, all"  default(all)
// @Success      200    {object}  summaryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/accounting/summary [get]
func (h *AccountingHandler) Summary(c *fiber.Ctx) error {
	summary, series, err := h.uc.Summary(c.UserContext(), GetActor(c), c.Query("range"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summaryResponse{Summary: summary, Series: series})
}

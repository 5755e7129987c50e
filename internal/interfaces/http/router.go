package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ibdiallo/transit-secure-api/internal/application/accounting"
	"github.com/ibdiallo/transit-secure-api/internal/application/auth"
	"github.com/ibdiallo/transit-secure-api/internal/application/shipment"
	"github.com/ibdiallo/transit-secure-api/internal/application/team"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/infrastructure/pdf"
	"github.com/ibdiallo/transit-secure-api/internal/infrastructure/sydonia"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	ShipmentUC   *shipment.UseCase
	AccountingUC *accounting.UseCase
	TeamUC       *team.UseCase
	AuthUC       *auth.UseCase
	Statement    *pdf.StatementGenerator
	Sydonia      *sydonia.DeclarationBuilder
	JWTSecret    string
}

// Router enregistre les routes de l'API. RequireRole coupe court au niveau
// HTTP ; les cas d'usage re-vérifient via Actor, la défense ne dépend donc
// jamais du seul routage.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/activate", authHandler.Activate)

	// Routes protégées (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	staff := []string{entity.RoleDirector, entity.RoleCreationAgent, entity.RoleAccountant, entity.RoleFieldAgent}
	finance := []string{entity.RoleDirector, entity.RoleAccountant}

	// Dossiers
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, deps.Statement, deps.Sydonia)
	shipments.Get("/", shipmentHandler.List)
	shipments.Post("/", RequireRole(entity.RoleDirector, entity.RoleCreationAgent), shipmentHandler.Create)
	shipments.Get("/:id", shipmentHandler.Get)
	shipments.Patch("/:id", RequireRole(entity.RoleDirector, entity.RoleCreationAgent), shipmentHandler.Update)
	shipments.Post("/:id/arrival", RequireRole(staff...), shipmentHandler.SetArrival)
	shipments.Post("/:id/status", RequireRole(staff...), shipmentHandler.AdvanceStatus)
	shipments.Post("/:id/expenses", RequireRole(finance...), shipmentHandler.AddExpense)
	shipments.Post("/:id/documents", RequireRole(staff...), shipmentHandler.AddDocument)
	shipments.Post("/:id/declaration", RequireRole(staff...), shipmentHandler.Declare)
	shipments.Post("/:id/pay", RequireRole(finance...), shipmentHandler.PayLiquidation)
	shipments.Post("/:id/delivery", RequireRole(staff...), shipmentHandler.Deliver)
	shipments.Get("/:id/statement.pdf", shipmentHandler.Statement)
	shipments.Get("/:id/declaration.xml", RequireRole(staff...), shipmentHandler.ExportDeclaration)

	// Comptabilité
	accountingHandler := NewAccountingHandler(deps.AccountingUC)
	protected.Get("/accounting/ledger", RequireRole(finance...), accountingHandler.Ledger)
	protected.Get("/accounting/summary", RequireRole(finance...), accountingHandler.Summary)

	// Estimation douanière (tout utilisateur authentifié)
	customsHandler := NewCustomsHandler()
	protected.Post("/customs/estimate", customsHandler.Estimate)

	// Équipe (directeur)
	teamGroup := protected.Group("/team", RequireRole(entity.RoleDirector))
	teamHandler := NewTeamHandler(deps.TeamUC)
	teamGroup.Get("/", teamHandler.List)
	teamGroup.Post("/", teamHandler.Invite)
	teamGroup.Delete("/:id", teamHandler.Remove)
}

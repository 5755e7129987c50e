package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ibdiallo/transit-secure-api/internal/application/accounting"
	"github.com/ibdiallo/transit-secure-api/internal/application/auth"
	"github.com/ibdiallo/transit-secure-api/internal/application/shipment"
	"github.com/ibdiallo/transit-secure-api/internal/application/team"
	"github.com/ibdiallo/transit-secure-api/internal/domain/repository"
	"github.com/ibdiallo/transit-secure-api/internal/domain/transit"
	"github.com/ibdiallo/transit-secure-api/internal/infrastructure/memory"
	infrapdf "github.com/ibdiallo/transit-secure-api/internal/infrastructure/pdf"
	"github.com/ibdiallo/transit-secure-api/internal/infrastructure/postgres"
	infrasydonia "github.com/ibdiallo/transit-secure-api/internal/infrastructure/sydonia"
	httpRouter "github.com/ibdiallo/transit-secure-api/internal/interfaces/http"
	"github.com/ibdiallo/transit-secure-api/pkg/config"
	"github.com/ibdiallo/transit-secure-api/pkg/logger"
	"github.com/ibdiallo/transit-secure-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration : " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("balance_mode", cfg.Finance.BalanceMode).
		Msg("démarrage de l'application")

	ctx := context.Background()

	var (
		shipmentRepo repository.ShipmentRepository
		userRepo     repository.UserRepository
		teamRepo     repository.TeamRepository
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connexion à PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("initialisation du schéma")
		}
		shipmentRepo = postgres.NewShipmentRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		teamRepo = postgres.NewTeamRepository(pool)
	default:
		shipmentRepo = memory.NewShipmentStore()
		userRepo = memory.NewUserStore()
		teamRepo = memory.NewTeamStore()
		log.Warn().Msg("stockage mémoire : les dossiers ne survivent pas au redémarrage")
	}

	met := metrics.New()
	balanceMode := transit.ParseBalanceMode(cfg.Finance.BalanceMode)

	shipmentUC := shipment.NewUseCase(shipmentRepo, log, met, balanceMode)
	accountingUC := accounting.NewUseCase(shipmentRepo, log)
	teamUC := team.NewUseCase(teamRepo, log)
	authUC := auth.NewUseCase(userRepo, teamRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	statementGen := infrapdf.NewStatementGenerator(balanceMode)
	sydoniaBuilder := infrasydonia.NewDeclarationBuilder()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // le relevé PDF peut être long à produire
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TransitSecure API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ShipmentUC:   shipmentUC,
		AccountingUC: accountingUC,
		TeamUC:       teamUC,
		AuthUC:       authUC,
		Statement:    statementGen,
		Sydonia:      sydoniaBuilder,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}

// Package backend is the HTTP surface over the engine: market browsing and
// bidding, the policy builder endpoints, and atomic synergy queries.
package backend

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ixstats/engine/backend/handlers"
	"github.com/ixstats/engine/backend/middleware"
	"github.com/ixstats/engine/ixstats"
)

// NewServer builds the Fiber app with middleware and every route wired to the
// engine services.
func NewServer(app *ixstats.App, version, commit string) *fiber.App {
	webApp := &handlers.WebApp{
		App:     app,
		Version: version,
		Commit:  commit,
	}

	server := fiber.New(fiber.Config{
		AppName:      "IxStats Engine API",
		ServerHeader: "IxStats",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	server.Use(recover.New())
	server.Use(middleware.SecurityHeaders())
	server.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	server.Use(middleware.LoggingMiddleware())

	setupRoutes(server, webApp)
	return server
}

func setupRoutes(server *fiber.App, webApp *handlers.WebApp) {
	server.Get("/health", handlers.HealthCheck(webApp))

	server.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "IxStats Engine API",
			"version": webApp.Version,
			"status":  "running",
		})
	})

	api := server.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Card market
	marketGroup := api.Group("/market")
	marketGroup.Get("/", handlers.MarketData(webApp))
	marketGroup.Post("/listings", handlers.CreateListing(webApp))
	marketGroup.Get("/listings/:code", handlers.ListingDetail(webApp))
	marketGroup.Get("/listings/:code/countdown", handlers.ListingCountdown(webApp))
	marketGroup.Post("/listings/:code/bids", middleware.BidRateLimit(), handlers.PlaceBid(webApp))
	marketGroup.Post("/listings/:code/buyout", middleware.BidRateLimit(), handlers.BuyoutListing(webApp))
	marketGroup.Delete("/listings/:code", handlers.CancelListing(webApp))
	marketGroup.Get("/bids/:nationId", handlers.UserBids(webApp))

	// Atomic components
	api.Get("/components", handlers.ComponentCatalog(webApp))

	// Nations, policy builder, synergies
	nations := api.Group("/nations")
	nations.Get("/:id", handlers.NationDetail(webApp))
	nations.Get("/:id/cards", handlers.NationCards(webApp))
	nations.Put("/:id/components", handlers.UpdateComponents(webApp))
	nations.Get("/:id/synergies/:counterpartId", handlers.NationSynergies(webApp))
	nations.Get("/:id/policy/context", handlers.PolicyContext(webApp))
	nations.Post("/:id/policy/validate", handlers.PolicyValidate(webApp))
	nations.Post("/:id/policy/impact", handlers.PolicyImpact(webApp))
	nations.Get("/:id/policy/recommendations", handlers.PolicyRecommendations(webApp))
	nations.Post("/:id/policy/apply", handlers.PolicyApply(webApp))

	server.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return c.Status(404).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}

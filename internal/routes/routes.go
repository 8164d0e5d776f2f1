package routes

import (
	"time"

	"github.com/voltfleet/voltfleet-backend/internal/config"
	"github.com/voltfleet/voltfleet-backend/internal/handlers"
	"github.com/voltfleet/voltfleet-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	stationHandler *handlers.StationHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — register/login are public with a stricter limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Stations — every route requires a valid bearer token; the
	// authenticated user is the only permitted owner for all operations.
	stations := api.Group("/stations", middleware.JWTProtected(cfg))
	stations.Get("/", stationHandler.List)
	stations.Post("/", stationHandler.Create)
	stations.Get("/stats", stationHandler.Stats)
	stations.Get("/:id", stationHandler.Get)
	stations.Put("/:id", stationHandler.Update)
	stations.Delete("/:id", stationHandler.Delete)
}

package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ecotrack/middleware"
)

func SetupStatsRoutes(app *fiber.App, d Deps) {
	g := app.Group("/stats", middleware.JWT(d.Cfg.JWTSecret))
	g.Get("/dashboard", dashboard(d))
}

// GET /stats/dashboard — synthèse mensuelle inter-catégories + EcoScore.
func dashboard(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dash, err := d.Stats.Dashboard(time.Now())
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(dash)
	}
}

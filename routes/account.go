package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ecotrack/middleware"
	"ecotrack/models"
)

func SetupAccountRoutes(app *fiber.App, d Deps) {
	g := app.Group("/account", middleware.JWT(d.Cfg.JWTSecret))
	g.Delete("/data", resetData(d))
	g.Post("/log", createLog(d))
	g.Get("/log", listLogs(d))
}

// DELETE /account/data — reset explicite : vide toutes les catégories.
// Irréversible, déclenché uniquement par l'utilisateur.
func resetData(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := d.Stores.ResetAll(); err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Toutes les données ont été effacées"})
	}
}

type logPayload struct {
	Message string `json:"message"`
}

// POST /account/log — journal libre de l'utilisateur.
func createLog(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p logPayload
		if err := c.BodyParser(&p); err != nil || p.Message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message requis"})
		}
		entry := models.UserLog{
			Message:         p.Message,
			CreatedAtMillis: time.Now().UnixMilli(),
		}
		if err := d.DB.Create(&entry).Error; err != nil {
			return respondStoreError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func listLogs(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var logs []models.UserLog
		if err := d.DB.Order("created_at_millis DESC").Find(&logs).Error; err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(logs)
	}
}

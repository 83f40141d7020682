package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"ecotrack/middleware"
)

func SetupAssistantRoutes(app *fiber.App, d Deps) {
	g := app.Group("/assistant", middleware.JWT(d.Cfg.JWTSecret))
	g.Post("/chat", assistantChat(d))
}

type chatPayload struct {
	Prompt string `json:"prompt"`
}

// POST /assistant/chat — assistant éco contextualisé par le tableau de bord.
func assistantChat(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !d.Assistant.Enabled() {
			return aiUnavailable(c)
		}
		var payload chatPayload
		if err := c.BodyParser(&payload); err != nil || payload.Prompt == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Prompt requis"})
		}

		dash, err := d.Stats.Dashboard(time.Now())
		if err != nil {
			return respondStoreError(c, err)
		}
		snapshot, _ := json.Marshal(dash)
		fullPrompt := fmt.Sprintf(`Tu es l'assistant climat personnel de l'application.
Contexte JSON (bilan du mois de l'utilisateur, émissions en kg, EcoScore sur 100) : %s
Réponds en français, ton expert mais accessible, avec des conseils concrets.
Question : %s`, string(snapshot), payload.Prompt)

		ctx, cancel := context.WithTimeout(c.Context(), 25*time.Second)
		defer cancel()
		resp, err := d.Assistant.SendConversation(ctx, fullPrompt)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Service IA indisponible, veuillez réessayer"})
		}

		return c.JSON(fiber.Map{
			"id":      resp.ID,
			"message": resp.FirstText(),
			"status":  resp.Status,
		})
	}
}

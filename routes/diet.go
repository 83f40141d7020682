package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"ecotrack/middleware"
	"ecotrack/models"
)

func SetupDietRoutes(app *fiber.App, d Deps) {
	g := app.Group("/diet", middleware.JWT(d.Cfg.JWTSecret))
	g.Post("/calculate", calculateDiet)
	g.Post("/analyze", analyzeDiet(d))
	g.Post("/", createDiet(d))
	g.Get("/", listDiet(d))
	g.Get("/stats", dietStats(d))
	g.Get("/calendar", calendarHandler(d.Stores.Diet.ActiveDays))
}

type analyzePayload struct {
	Text string `json:"text"`
}

// POST /diet/analyze — texte libre -> relevé structuré (aperçu, rien n'est
// persisté avant la confirmation de l'utilisateur).
func analyzeDiet(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !d.Extractor.Ready() {
			return aiUnavailable(c)
		}
		var p analyzePayload
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}
		ctx, cancel := context.WithTimeout(c.Context(), 25*time.Second)
		defer cancel()
		res, err := d.Extractor.AnalyzeDiet(ctx, p.Text)
		if err != nil {
			return respondAIError(c, err)
		}
		return c.JSON(res)
	}
}

type dietPayload struct {
	Items              []models.DietItem `json:"items"`
	TotalEmissionGrams float64           `json:"total_emission_grams"`
	Suggestions        []string          `json:"suggestions"`
	InputSource        string            `json:"input_source"`
	RawText            string            `json:"raw_text"`
}

// POST /diet/calculate — aperçu manuel : total = somme des émissions des
// aliments saisis, en grammes.
func calculateDiet(c *fiber.Ctx) error {
	var p dietPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if len(p.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Au moins un aliment requis"})
	}
	var totalGrams float64
	for _, it := range p.Items {
		totalGrams += it.EmissionGrams
	}
	return c.JSON(fiber.Map{
		"total_emission_grams": totalGrams,
		"total_kg":             totalGrams / 1000,
	})
}

// POST /diet — confirmation. Le total reste en grammes dans le store.
func createDiet(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p dietPayload
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}
		if len(p.Items) == 0 && p.TotalEmissionGrams <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Au moins un aliment requis"})
		}
		source := p.InputSource
		if source == "" {
			source = models.SourceAI
		}
		entry := models.NewDietEntry(p.Items, p.TotalEmissionGrams, p.Suggestions, source, p.RawText, time.Now())
		if err := d.Stores.Diet.Insert(&entry); err != nil {
			return respondStoreError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func listDiet(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := d.Stores.Diet.All()
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(entries)
	}
}

func dietStats(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := d.Stats.Diet(time.Now())
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(st)
	}
}

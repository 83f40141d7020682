package routes

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"ecotrack/middleware"
	"ecotrack/models"
)

func SetupWasteRoutes(app *fiber.App, d Deps) {
	g := app.Group("/waste", middleware.JWT(d.Cfg.JWTSecret))
	g.Post("/calculate", calculateWaste)
	g.Post("/analyze", analyzeWaste(d))
	g.Post("/", createWaste(d))
	g.Get("/", listWaste(d))
	g.Get("/stats", wasteStats(d))
	g.Get("/breakdown", wasteBreakdown(d))
	g.Get("/calendar", calendarHandler(d.Stores.Waste.ActiveDays))
	g.Delete("/:id", deleteWaste(d))
}

// POST /waste/calculate — aperçu manuel : ventilation et impact net calculés
// sans persistance.
func calculateWaste(c *fiber.Ctx) error {
	var p wastePayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if len(p.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Au moins un déchet requis"})
	}
	preview := models.NewWasteEntry(p.Items, p.EcoTip, models.SourceManual, p.RawText, time.Now())
	return c.JSON(fiber.Map{
		"landfill_weight_kg":    preview.LandfillWeightKg,
		"recycled_weight_kg":    preview.RecycledWeightKg,
		"composted_weight_kg":   preview.CompostedWeightKg,
		"landfill_emission_kg":  preview.LandfillEmissionKg,
		"recycled_emission_kg":  preview.RecycledEmissionKg,
		"composted_emission_kg": preview.CompostedEmissionKg,
		"net_impact_kg":         preview.NetImpactKg,
	})
}

// POST /waste/analyze — description de déchets -> ventilation structurée.
func analyzeWaste(d Deps) fiber.Handler {
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
		res, err := d.Extractor.AnalyzeWaste(ctx, p.Text)
		if err != nil {
			return respondAIError(c, err)
		}
		return c.JSON(res)
	}
}

type wastePayload struct {
	Items       []models.WasteItem `json:"items"`
	EcoTip      string             `json:"eco_tip"`
	InputSource string             `json:"input_source"`
	RawText     string             `json:"raw_text"`
}

// POST /waste — confirmation de la ventilation extraite. La ventilation
// par élimination et l'impact net sont recalculés à la construction.
func createWaste(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p wastePayload
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}
		if len(p.Items) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Au moins un déchet requis"})
		}
		source := p.InputSource
		if source == "" {
			source = models.SourceAI
		}
		entry := models.NewWasteEntry(p.Items, p.EcoTip, source, p.RawText, time.Now())
		if err := d.Stores.Waste.Insert(&entry); err != nil {
			return respondStoreError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func listWaste(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := d.Stores.Waste.All()
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(entries)
	}
}

func wasteStats(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := d.Stats.Waste(time.Now())
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(st)
	}
}

// GET /waste/breakdown?month=&year= — les six agrégats mensuels.
func wasteBreakdown(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		month, err1 := strconv.Atoi(c.Query("month"))
		year, err2 := strconv.Atoi(c.Query("year"))
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month (1-12) et year requis"})
		}
		b, err := d.Stores.Waste.MonthlyBreakdown(month, year)
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(b)
	}
}

func deleteWaste(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := d.Stores.Waste.Delete(c.Params("id")); err != nil {
			return respondStoreError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

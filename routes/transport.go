package routes

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"ecotrack/emissions"
	"ecotrack/middleware"
	"ecotrack/models"
)

func SetupTransportRoutes(app *fiber.App, d Deps) {
	g := app.Group("/transport", middleware.JWT(d.Cfg.JWTSecret))
	g.Post("/calculate", calculateTransport)
	g.Post("/analyze", analyzeTransport(d))
	g.Post("/", createTransport(d))
	g.Get("/", listTransport(d))
	g.Get("/stats", transportStats(d))
	g.Get("/calendar", calendarHandler(func(m, y int) ([]int, error) {
		return d.Stores.Transport.ActiveDays(m, y)
	}))
	g.Put("/:id", updateTransport(d))
	g.Delete("/older-than/:millis", purgeTransport(d))
	g.Delete("/:id", deleteTransport(d))
}

type transportPayload struct {
	Mode        string  `json:"mode"`
	DistanceKm  float64 `json:"distance_km"`
	InputSource string  `json:"input_source"`
	RawText     string  `json:"raw_text"`
}

func (p transportPayload) validate(c *fiber.Ctx) error {
	if p.Mode == "" || p.DistanceKm <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Mode et distance positifs requis"})
	}
	return nil
}

// POST /transport/calculate — aperçu sans persistance.
func calculateTransport(c *fiber.Ctx) error {
	var p transportPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if err := p.validate(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"mode":        p.Mode,
		"distance_km": p.DistanceKm,
		"emission_kg": emissions.TransportFactor(p.Mode) * p.DistanceKm,
	})
}

// POST /transport/analyze — description libre de trajet -> mode + distance.
func analyzeTransport(d Deps) fiber.Handler {
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
		res, err := d.Extractor.AnalyzeTransport(ctx, p.Text)
		if err != nil {
			return respondAIError(c, err)
		}
		return c.JSON(fiber.Map{
			"mode":        res.Mode,
			"distance_km": res.DistanceKm,
			"emission_kg": emissions.TransportFactor(res.Mode) * res.DistanceKm,
			"description": res.Description,
		})
	}
}

// POST /transport — confirmation : l'entrée est construite complète puis
// persistée, jamais partiellement.
func createTransport(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p transportPayload
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}
		if err := p.validate(c); err != nil {
			return err
		}
		source := p.InputSource
		if source == "" {
			source = models.SourceManual
		}
		entry := models.NewTransportEntry(p.Mode, p.DistanceKm, source, p.RawText, time.Now())
		if err := d.Stores.Transport.Insert(&entry); err != nil {
			return respondStoreError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func listTransport(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := d.Stores.Transport.All()
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(entries)
	}
}

func transportStats(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := d.Stats.Transport(time.Now())
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(st)
	}
}

// PUT /transport/:id — seule catégorie éditable. Le bucketing d'origine est
// conservé, seuls mode/distance/émission changent.
func updateTransport(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var existing models.TransportEntry
		if err := d.DB.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trajet non trouvé"})
		}
		var p transportPayload
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}
		if err := p.validate(c); err != nil {
			return err
		}
		existing.Mode = p.Mode
		existing.DistanceKm = p.DistanceKm
		existing.EmissionKg = emissions.TransportFactor(p.Mode) * p.DistanceKm
		if err := d.Stores.Transport.Update(&existing); err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(existing)
	}
}

func deleteTransport(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := d.Stores.Transport.Delete(c.Params("id")); err != nil {
			return respondStoreError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func purgeTransport(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		millis, err := strconv.ParseInt(c.Params("millis"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Horodatage invalide"})
		}
		if err := d.Stores.Transport.DeleteOlderThan(millis); err != nil {
			return respondStoreError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// calendarHandler factorise GET /{cat}/calendar?month=&year=.
func calendarHandler(activeDays func(month, year int) ([]int, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		month, err1 := strconv.Atoi(c.Query("month"))
		year, err2 := strconv.Atoi(c.Query("year"))
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month (1-12) et year requis"})
		}
		days, err := activeDays(month, year)
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(fiber.Map{"month": month, "year": year, "days": days})
	}
}

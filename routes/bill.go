package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"ecotrack/emissions"
	"ecotrack/middleware"
	"ecotrack/models"
)

func SetupBillRoutes(app *fiber.App, d Deps) {
	g := app.Group("/bill", middleware.JWT(d.Cfg.JWTSecret))
	g.Post("/calculate", calculateBill)
	g.Post("/analyze", analyzeBill(d))
	g.Post("/", createBill(d))
	g.Get("/", listBill(d))
	g.Get("/stats", billStats(d))
	g.Get("/calendar", calendarHandler(d.Stores.Bill.ActiveDays))
}

type billPayload struct {
	ElectricityKwh float64  `json:"electricity_kwh"`
	GasLitres      float64  `json:"gas_litres"`
	WaterLitres    float64  `json:"water_litres"`
	InternetGb     float64  `json:"internet_gb"`
	EcoTips        []string `json:"eco_tips"`
	InputSource    string   `json:"input_source"`
	RawText        string   `json:"raw_text"`
}

func (p billPayload) empty() bool {
	return p.ElectricityKwh <= 0 && p.GasLitres <= 0 && p.WaterLitres <= 0 && p.InternetGb <= 0
}

// POST /bill/calculate — aperçu : émission = Σ(consommation × facteur).
func calculateBill(c *fiber.Ctx) error {
	var p billPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if p.empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Au moins une consommation requise"})
	}
	e := emissions.CalculateBillEmission(p.ElectricityKwh, p.GasLitres, p.WaterLitres, p.InternetGb)
	return c.JSON(fiber.Map{
		"electricity_kg": e.ElectricityKg,
		"gas_kg":         e.GasKg,
		"water_kg":       e.WaterKg,
		"internet_kg":    e.InternetKg,
		"total_kg":       e.TotalKg,
	})
}

// POST /bill/analyze — texte de facture (saisi ou OCR) -> consommations.
func analyzeBill(d Deps) fiber.Handler {
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
		res, err := d.Extractor.AnalyzeBill(ctx, p.Text)
		if err != nil {
			return respondAIError(c, err)
		}
		return c.JSON(res)
	}
}

// POST /bill — confirmation : les émissions par utilité sont recalculées
// localement depuis les consommations validées, jamais reprises de l'IA.
func createBill(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p billPayload
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}
		if p.empty() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Au moins une consommation requise"})
		}
		source := p.InputSource
		if source == "" {
			source = models.SourceManual
		}
		entry := models.NewBillEntry(p.ElectricityKwh, p.GasLitres, p.WaterLitres, p.InternetGb,
			p.EcoTips, source, p.RawText, time.Now())
		if err := d.Stores.Bill.Insert(&entry); err != nil {
			return respondStoreError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func listBill(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := d.Stores.Bill.All()
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(entries)
	}
}

func billStats(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := d.Stats.Bill(time.Now())
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(st)
	}
}

package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"ecotrack/middleware"
	"ecotrack/models"
)

func SetupShoppingRoutes(app *fiber.App, d Deps) {
	g := app.Group("/shopping", middleware.JWT(d.Cfg.JWTSecret))
	g.Post("/calculate", calculateShopping)
	g.Post("/analyze", analyzeShopping(d))
	g.Post("/", createShopping(d))
	g.Get("/", listShopping(d))
	g.Get("/stats", shoppingStats(d))
	g.Get("/calendar", calendarHandler(d.Stores.Shopping.ActiveDays))
}

// POST /shopping/analyze — ticket ou description -> produits structurés.
func analyzeShopping(d Deps) fiber.Handler {
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
		res, err := d.Extractor.AnalyzeShopping(ctx, p.Text)
		if err != nil {
			return respondAIError(c, err)
		}
		return c.JSON(res)
	}
}

type shoppingPayload struct {
	Items           []models.ShoppingItem `json:"items"`
	TotalEmissionKg float64               `json:"total_emission_kg"`
	EcoTips         []string              `json:"eco_tips"`
	InputSource     string                `json:"input_source"`
	RawText         string                `json:"raw_text"`
}

// POST /shopping/calculate — aperçu manuel : total = somme des émissions (kg).
func calculateShopping(c *fiber.Ctx) error {
	var p shoppingPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if len(p.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Au moins un produit requis"})
	}
	var totalKg float64
	for _, it := range p.Items {
		totalKg += it.EmissionKg
	}
	return c.JSON(fiber.Map{"total_emission_kg": totalKg})
}

func createShopping(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p shoppingPayload
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}
		if len(p.Items) == 0 && p.TotalEmissionKg <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Au moins un produit requis"})
		}
		source := p.InputSource
		if source == "" {
			source = models.SourceAI
		}
		entry := models.NewShoppingEntry(p.Items, p.TotalEmissionKg, p.EcoTips, source, p.RawText, time.Now())
		if err := d.Stores.Shopping.Insert(&entry); err != nil {
			return respondStoreError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func listShopping(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := d.Stores.Shopping.All()
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(entries)
	}
}

func shoppingStats(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := d.Stats.Shopping(time.Now())
		if err != nil {
			return respondStoreError(c, err)
		}
		return c.JSON(st)
	}
}

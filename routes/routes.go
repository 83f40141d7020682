package routes

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecotrack/ai"
	"ecotrack/config"
	"ecotrack/integrations/mistral"
	"ecotrack/stats"
	"ecotrack/store"
)

// Deps regroupe les dépendances injectées depuis main : pas de globals.
type Deps struct {
	DB        *gorm.DB
	Stores    *store.Stores
	Stats     *stats.Engine
	Extractor *ai.Extractor
	Assistant *mistral.Client
	Cfg       config.Config
}

// Setup enregistre tous les groupes de routes.
func Setup(app *fiber.App, d Deps) {
	SetupAuthRoutes(app, d)
	SetupTransportRoutes(app, d)
	SetupDietRoutes(app, d)
	SetupBillRoutes(app, d)
	SetupWasteRoutes(app, d)
	SetupShoppingRoutes(app, d)
	SetupStatsRoutes(app, d)
	SetupScanRoutes(app, d)
	SetupAssistantRoutes(app, d)
	SetupAccountRoutes(app, d)
}

// respondAIError convertit la taxonomie d'erreurs IA en réponse HTTP.
// Aucune erreur ne remonte jusqu'au crash handler : état stable + message.
func respondAIError(c *fiber.Ctx, err error) error {
	var (
		vErr *ai.ValidationError
		pErr *ai.ParseError
		tErr *ai.TransportError
	)
	switch {
	case errors.Is(err, ai.ErrEmptyInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Texte requis"})
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": vErr.Reason})
	case errors.As(err, &pErr):
		// la réponse brute est conservée dans les logs pour diagnostic
		log.Printf("réponse IA inexploitable: %v — brut: %q", pErr.Err, pErr.Raw)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Réponse IA inexploitable"})
	case errors.As(err, &tErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Service IA indisponible, veuillez réessayer"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur interne"})
	}
}

// respondStoreError : échec de persistance, pas de retry automatique.
func respondStoreError(c *fiber.Ctx, err error) error {
	log.Printf("échec persistance: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Échec de la sauvegarde"})
}

// aiUnavailable répond 503 quand Mistral n'est pas configuré.
func aiUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Mistral non configuré"})
}

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"ecotrack/ai"
	"ecotrack/config"
	"ecotrack/database"
	"ecotrack/integrations/mistral"
	"ecotrack/routes"
	"ecotrack/stats"
	"ecotrack/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("pas de .env trouvé")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Erreur connexion DB:", err)
	}

	// Composition root : toutes les dépendances sont construites ici et
	// injectées explicitement, pas de singleton.
	stores := store.New(db)
	engine := stats.NewEngine(stores)
	mistralClient := mistral.NewClient(cfg.MistralAPIKey, cfg.MistralAgentID, cfg.MistralBaseURL)
	extractor := ai.NewExtractor(mistralClient)

	app := fiber.New()

	// aucun panic de handler ne doit tuer le serveur
	app.Use(recover.New())

	// CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "ecotrack-api",
			"env":      cfg.Env,
			"ai_ready": extractor.Ready(),
		})
	})

	routes.Setup(app, routes.Deps{
		DB:        db,
		Stores:    stores,
		Stats:     engine,
		Extractor: extractor,
		Assistant: mistralClient,
		Cfg:       cfg,
	})

	log.Println("🚀 EcoTrack API sur http://localhost:" + cfg.Port)
	log.Fatal(app.Listen(cfg.HTTPAddr()))
}

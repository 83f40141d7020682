package routes

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ecotrack/middleware"
	"ecotrack/utils"
)

func SetupScanRoutes(app *fiber.App, d Deps) {
	g := app.Group("/scan", middleware.JWT(d.Cfg.JWTSecret))
	g.Post("/", scanDocument)
}

// POST /scan — image ou PDF uploadé -> texte brut. L'appelant réinjecte ce
// texte dans l'analyse de la catégorie voulue. Pas de retry : en cas
// d'échec, l'app propose la saisie manuelle.
func scanDocument(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Fichier requis"})
	}
	if header.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Fichier vide"})
	}

	file, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Lecture du fichier impossible"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Lecture du fichier impossible"})
	}

	contentType := header.Header.Get("Content-Type")
	var text string
	if strings.HasPrefix(strings.ToLower(contentType), "application/pdf") ||
		strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		text, err = utils.OCRFromPDFBytes(data)
	} else {
		text, err = utils.OCRImageBytes(data)
	}
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Reconnaissance de texte impossible", "details": err.Error()})
	}

	return c.JSON(fiber.Map{"text": text})
}

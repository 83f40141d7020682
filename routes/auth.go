package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"ecotrack/models"
	"ecotrack/utils"
)

func SetupAuthRoutes(app *fiber.App, d Deps) {
	auth := app.Group("/auth")
	auth.Post("/register", register(d))
	auth.Post("/login", login(d))
}

type authPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func register(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body authPayload
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}
		if body.Email == "" || body.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email et mot de passe requis"})
		}

		// vérifier si email déjà existant ; un échec DB ne doit pas passer
		// pour un email disponible
		var existing models.User
		err := d.DB.Where("email = ?", body.Email).First(&existing).Error
		switch {
		case err == nil:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email déjà enregistré"})
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur vérification email"})
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Impossible de hasher le mot de passe"})
		}

		user := models.User{
			Name:     body.Name,
			Email:    body.Email,
			Password: hash,
		}
		if err := d.DB.Create(&user).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création utilisateur"})
		}

		return c.JSON(fiber.Map{"token": signToken(user.ID, d.Cfg.JWTSecret)})
	}
}

func login(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body authPayload
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
		}

		var user models.User
		d.DB.Where("email = ?", body.Email).First(&user)
		if user.ID == 0 || !utils.CheckPassword(user.Password, body.Password) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email ou mot de passe invalide"})
		}

		return c.JSON(fiber.Map{"token": signToken(user.ID, d.Cfg.JWTSecret)})
	}
}

func signToken(userID uint, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	t, _ := token.SignedString([]byte(secret))
	return t
}

package config

import (
	"log"
	"os"
)

// Config contient la configuration principale du service.
// Les secrets (JWT, Mistral) n'ont volontairement aucune valeur par défaut.
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	SQLitePath     string
	JWTSecret      string
	MistralAPIKey  string
	MistralAgentID string
	MistralBaseURL string
}

// Load charge la configuration depuis les variables d'environnement.
func Load() Config {
	cfg := Config{
		Env:            getEnv("ECOTRACK_ENV", "development"),
		Port:           getEnv("PORT", "3030"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     getEnv("ECOTRACK_DB_PATH", "ecotrack.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MistralAPIKey:  os.Getenv("MISTRAL_API_KEY"),
		MistralAgentID: os.Getenv("MISTRAL_AGENT_ID"),
		MistralBaseURL: os.Getenv("MISTRAL_API_BASE"),
	}

	if cfg.JWTSecret == "" {
		log.Println("[AVERTISSEMENT] JWT_SECRET n'est pas configuré. L'authentification refusera tous les tokens.")
	}
	if cfg.MistralAPIKey == "" || cfg.MistralAgentID == "" {
		log.Println("[INFO] Mistral n'est pas configuré. Les fonctionnalités IA seront désactivées.")
	}

	return cfg
}

func (c Config) HTTPAddr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

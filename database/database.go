package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecotrack/config"
	"ecotrack/models"
)

// Connect ouvre la base et exécute les migrations. Le handle est retourné
// à l'appelant (composition root) : pas de singleton global.
func Connect(cfg config.Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	case dsn != "":
		// DSN postgres sans préfixe de schéma
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(cfg.SQLitePath)
		dsn = cfg.SQLitePath
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("📦 DB connectée et migrée sur", dsn)
	return db, nil
}

// Migrate crée les tables des cinq catégories, des comptes et du journal.
// Les champs additifs doivent avoir des valeurs zéro sûres : AutoMigrate
// n'ajoute que des colonnes, jamais de transformation destructive.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserLog{},
		&models.TransportEntry{},
		&models.DietEntry{},
		&models.BillEntry{},
		&models.WasteEntry{},
		&models.ShoppingEntry{},
	)
}

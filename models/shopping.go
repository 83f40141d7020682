package models

import (
	"time"

	"gorm.io/datatypes"
)

// ShoppingItem est un produit acheté avec son émission propre (kg).
type ShoppingItem struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	EmissionKg float64 `json:"emission_kg"`
	Icon       string  `json:"icon"`
}

// ShoppingEntry est un ticket d'achats loggé.
type ShoppingEntry struct {
	ID              int64                             `gorm:"primaryKey;autoIncrement" json:"id"`
	Items           datatypes.JSONSlice[ShoppingItem] `json:"items"`
	TotalEmissionKg float64                           `json:"total_emission_kg"`
	EcoTips         datatypes.JSONSlice[string]       `json:"eco_tips"`
	Provenance      `gorm:"embedded"`
	Bucketing       `gorm:"embedded"`
}

// NewShoppingEntry fige la datation ; le total est en kg.
func NewShoppingEntry(items []ShoppingItem, totalKg float64, ecoTips []string, source, rawText string, now time.Time) ShoppingEntry {
	return ShoppingEntry{
		Items:           items,
		TotalEmissionKg: totalKg,
		EcoTips:         ecoTips,
		Provenance:      Provenance{InputSource: source, RawInputText: rawText},
		Bucketing:       NewBucketing(now),
	}
}

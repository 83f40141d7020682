package models

import (
	"time"

	"gorm.io/datatypes"
)

// DietItem est un aliment détecté avec son émission propre.
// Attention : les émissions alimentaires sont stockées en GRAMMES,
// la conversion en kg se fait au moment de l'agrégation.
type DietItem struct {
	Name          string  `json:"name"`
	EmissionGrams float64 `json:"emission_grams"`
	Icon          string  `json:"icon"`
}

// DietEntry est un repas loggé (liste d'aliments + total en grammes).
type DietEntry struct {
	ID                 int64                         `gorm:"primaryKey;autoIncrement" json:"id"`
	Items              datatypes.JSONSlice[DietItem] `json:"items"`
	TotalEmissionGrams float64                       `json:"total_emission_grams"`
	Suggestions        datatypes.JSONSlice[string]   `json:"suggestions"`
	Provenance         `gorm:"embedded"`
	Bucketing          `gorm:"embedded"`
}

// NewDietEntry fige la datation ; le total reste en grammes (invariant).
func NewDietEntry(items []DietItem, totalGrams float64, suggestions []string, source, rawText string, now time.Time) DietEntry {
	return DietEntry{
		Items:              items,
		TotalEmissionGrams: totalGrams,
		Suggestions:        suggestions,
		Provenance:         Provenance{InputSource: source, RawInputText: rawText},
		Bucketing:          NewBucketing(now),
	}
}

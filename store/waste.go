package store

import (
	"gorm.io/gorm"

	"ecotrack/models"
)

// WasteStore ajoute la ventilation mensuelle par méthode d'élimination.
type WasteStore struct {
	*EntryStore[models.WasteEntry]
	db *gorm.DB
}

func NewWasteStore(db *gorm.DB) *WasteStore {
	return &WasteStore{
		EntryStore: NewEntryStore[models.WasteEntry](db, "net_impact_kg", 1),
		db:         db,
	}
}

// Delete supprime une analyse par identifiant.
func (s *WasteStore) Delete(id string) error {
	return s.db.Delete(&models.WasteEntry{}, "id = ?", id).Error
}

// WasteBreakdown regroupe les six agrégats mensuels au-delà des quatre
// communs : poids et émission par méthode d'élimination.
type WasteBreakdown struct {
	RecycledWeightKg    float64 `json:"recycled_weight_kg"`
	RecycledEmissionKg  float64 `json:"recycled_emission_kg"`
	CompostedWeightKg   float64 `json:"composted_weight_kg"`
	CompostedEmissionKg float64 `json:"composted_emission_kg"`
	LandfillWeightKg    float64 `json:"landfill_weight_kg"`
	LandfillEmissionKg  float64 `json:"landfill_emission_kg"`
}

// MonthlyBreakdown agrège la ventilation d'un mois. Zéro ligne => zéros.
func (s *WasteStore) MonthlyBreakdown(month, year int) (WasteBreakdown, error) {
	var b WasteBreakdown
	err := s.db.Model(&models.WasteEntry{}).
		Select(`COALESCE(SUM(recycled_weight_kg), 0) AS recycled_weight_kg,
			COALESCE(SUM(recycled_emission_kg), 0) AS recycled_emission_kg,
			COALESCE(SUM(composted_weight_kg), 0) AS composted_weight_kg,
			COALESCE(SUM(composted_emission_kg), 0) AS composted_emission_kg,
			COALESCE(SUM(landfill_weight_kg), 0) AS landfill_weight_kg,
			COALESCE(SUM(landfill_emission_kg), 0) AS landfill_emission_kg`).
		Where("month = ? AND year = ?", month, year).
		Scan(&b).Error
	return b, err
}

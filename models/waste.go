package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"ecotrack/emissions"
)

// WasteItem est un déchet détecté avec sa méthode d'élimination suggérée.
type WasteItem struct {
	WasteType   string  `json:"waste_type"`
	Category    string  `json:"category"`
	QuantityKg  float64 `json:"quantity_kg"`
	Unit        string  `json:"unit"`
	Disposal    string  `json:"disposal"`
	EmissionKg  float64 `json:"emission_kg"`
	Description string  `json:"description"`
}

// WasteEntry est une analyse de déchets confirmée, ventilée par élimination.
// Invariant : NetImpactKg = landfill - recycled - composted (les émissions
// recyclé/composté sont des magnitudes d'évitement, >= 0).
type WasteEntry struct {
	ID                  string                         `gorm:"primaryKey" json:"id"`
	Items               datatypes.JSONSlice[WasteItem] `json:"items"`
	LandfillWeightKg    float64                        `json:"landfill_weight_kg"`
	RecycledWeightKg    float64                        `json:"recycled_weight_kg"`
	CompostedWeightKg   float64                        `json:"composted_weight_kg"`
	LandfillEmissionKg  float64                        `json:"landfill_emission_kg"`
	RecycledEmissionKg  float64                        `json:"recycled_emission_kg"`
	CompostedEmissionKg float64                        `json:"composted_emission_kg"`
	NetImpactKg         float64                        `json:"net_impact_kg"`
	EcoTip              string                         `json:"eco_tip"`
	Provenance          `gorm:"embedded"`
	Bucketing           `gorm:"embedded"`
}

// NewWasteEntry ventile les items par méthode d'élimination et calcule
// l'impact net. Une émission manquante est recalculée via la table de
// facteurs (lookup tolérant : couple inconnu => 0).
func NewWasteEntry(items []WasteItem, ecoTip, source, rawText string, now time.Time) WasteEntry {
	e := WasteEntry{
		ID:         uuid.NewString(),
		EcoTip:     ecoTip,
		Provenance: Provenance{InputSource: source, RawInputText: rawText},
		Bucketing:  NewBucketing(now),
	}
	for i := range items {
		it := &items[i]
		if it.EmissionKg == 0 {
			it.EmissionKg = emissions.CalculateWasteEmission(it.Category, it.Disposal, it.QuantityKg)
		}
		switch strings.ToLower(strings.TrimSpace(it.Disposal)) {
		case emissions.DisposalRecycled:
			e.RecycledWeightKg += it.QuantityKg
			e.RecycledEmissionKg += it.EmissionKg
		case emissions.DisposalComposted:
			e.CompostedWeightKg += it.QuantityKg
			e.CompostedEmissionKg += it.EmissionKg
		default:
			// landfill, incinéré et méthodes inconnues finissent en décharge
			e.LandfillWeightKg += it.QuantityKg
			e.LandfillEmissionKg += it.EmissionKg
		}
	}
	e.Items = items
	e.NetImpactKg = e.LandfillEmissionKg - e.RecycledEmissionKg - e.CompostedEmissionKg
	return e
}

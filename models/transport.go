package models

import (
	"time"

	"github.com/google/uuid"

	"ecotrack/emissions"
)

// TransportEntry est un trajet loggé (mode + distance).
// Seule catégorie éditable après création.
type TransportEntry struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	Mode       string  `json:"mode"`
	DistanceKm float64 `json:"distance_km"`
	EmissionKg float64 `json:"emission_kg"`
	Provenance `gorm:"embedded"`
	Bucketing  `gorm:"embedded"`
}

// NewTransportEntry calcule l'émission (facteur × distance) et fige la datation.
func NewTransportEntry(mode string, distanceKm float64, source, rawText string, now time.Time) TransportEntry {
	return TransportEntry{
		ID:         uuid.NewString(),
		Mode:       mode,
		DistanceKm: distanceKm,
		EmissionKg: emissions.TransportFactor(mode) * distanceKm,
		Provenance: Provenance{InputSource: source, RawInputText: rawText},
		Bucketing:  NewBucketing(now),
	}
}

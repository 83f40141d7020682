package store

import (
	"gorm.io/gorm"

	"ecotrack/models"
)

// TransportStore ajoute au magasin générique les opérations propres au
// transport : mise à jour, suppression unitaire et purge par ancienneté.
type TransportStore struct {
	*EntryStore[models.TransportEntry]
	db *gorm.DB
}

func NewTransportStore(db *gorm.DB) *TransportStore {
	return &TransportStore{
		EntryStore: NewEntryStore[models.TransportEntry](db, "emission_kg", 1),
		db:         db,
	}
}

// Update réécrit une entrée existante. Les champs de datation d'origine
// sont conservés tels quels : on ne refige jamais le bucketing.
func (s *TransportStore) Update(e *models.TransportEntry) error {
	return s.db.Save(e).Error
}

// Delete supprime une entrée par identifiant.
func (s *TransportStore) Delete(id string) error {
	return s.db.Delete(&models.TransportEntry{}, "id = ?", id).Error
}

// DeleteOlderThan purge les trajets créés avant l'horodatage donné.
func (s *TransportStore) DeleteOlderThan(epochMillis int64) error {
	return s.db.Where("created_at_millis < ?", epochMillis).
		Delete(&models.TransportEntry{}).Error
}

package store

import (
	"gorm.io/gorm"

	"ecotrack/models"
)

// Stores regroupe les cinq magasins de catégories. Chaque magasin possède
// sa propre table, aucune catégorie ne partage de données avec une autre.
type Stores struct {
	Transport *TransportStore
	Diet      *EntryStore[models.DietEntry]
	Bill      *EntryStore[models.BillEntry]
	Waste     *WasteStore
	Shopping  *EntryStore[models.ShoppingEntry]

	db *gorm.DB
}

// New construit les magasins sur un handle gorm injecté explicitement.
func New(db *gorm.DB) *Stores {
	return &Stores{
		Transport: NewTransportStore(db),
		// l'alimentaire est stocké en grammes, divisé par 1000 à l'agrégation
		Diet:     NewEntryStore[models.DietEntry](db, "total_emission_grams", 1000),
		Bill:     NewEntryStore[models.BillEntry](db, "total_kg", 1),
		Waste:    NewWasteStore(db),
		Shopping: NewEntryStore[models.ShoppingEntry](db, "total_emission_kg", 1),
		db:       db,
	}
}

// ResetAll vide toutes les catégories et le journal utilisateur.
// Pas de transaction inter-catégories : un échec partiel laisse les
// catégories déjà vidées telles quelles, comme pour toute sauvegarde
// multi-catégories.
func (s *Stores) ResetAll() error {
	if err := s.Transport.DeleteAll(); err != nil {
		return err
	}
	if err := s.Diet.DeleteAll(); err != nil {
		return err
	}
	if err := s.Bill.DeleteAll(); err != nil {
		return err
	}
	if err := s.Waste.DeleteAll(); err != nil {
		return err
	}
	if err := s.Shopping.DeleteAll(); err != nil {
		return err
	}
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UserLog{}).Error
}

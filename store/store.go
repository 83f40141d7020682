// Package store fournit le magasin d'entrées générique, instancié une fois
// par catégorie. Toutes les requêtes d'agrégation filtrent sur les colonnes
// de datation figées à la création (date_string, week_of_year, month, year),
// jamais sur un recalcul depuis le timestamp.
package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// listOrdering trie les listes : plus récent d'abord, id décroissant en
// départage des égalités de milliseconde. Sans clé secondaire, l'ordre des
// lignes à timestamp identique n'est pas garanti (notamment sur postgres).
const listOrdering = "created_at_millis DESC, id DESC"

// EntryStore est le magasin générique d'une catégorie.
// emissionCol est la colonne sommée par les agrégats ; unitDivisor vaut 1
// pour les catégories en kg et 1000 pour l'alimentaire stocké en grammes.
type EntryStore[E any] struct {
	db          *gorm.DB
	emissionCol string
	unitDivisor float64
}

func NewEntryStore[E any](db *gorm.DB, emissionCol string, unitDivisor float64) *EntryStore[E] {
	if unitDivisor == 0 {
		unitDivisor = 1
	}
	return &EntryStore[E]{db: db, emissionCol: emissionCol, unitDivisor: unitDivisor}
}

// Insert persiste une entrée complète. Aucun champ n'est omis : la
// provenance et le texte brut font partie de la piste d'audit.
func (s *EntryStore[E]) Insert(e *E) error {
	return s.db.Create(e).Error
}

// BulkInsert persiste un lot, en remplaçant sur conflit d'identifiant.
func (s *EntryStore[E]) BulkInsert(entries []E) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entries).Error
}

// All retourne toutes les entrées, la plus récente d'abord.
func (s *EntryStore[E]) All() ([]E, error) {
	var out []E
	err := s.db.Order(listOrdering).Find(&out).Error
	return out, err
}

// ByDate filtre sur la colonne date_string stockée (correspondance exacte).
func (s *EntryStore[E]) ByDate(dateString string) ([]E, error) {
	var out []E
	err := s.db.Where("date_string = ?", dateString).
		Order(listOrdering).Find(&out).Error
	return out, err
}

// ByMonth filtre sur les colonnes (month, year) stockées.
func (s *EntryStore[E]) ByMonth(month, year int) ([]E, error) {
	var out []E
	err := s.db.Where("month = ? AND year = ?", month, year).
		Order(listOrdering).Find(&out).Error
	return out, err
}

// SumByDate retourne la somme d'émission du jour, 0.0 si aucune ligne.
func (s *EntryStore[E]) SumByDate(dateString string) (float64, error) {
	return s.sum("date_string = ?", dateString)
}

// SumByWeek retourne la somme d'émission d'une semaine ISO.
func (s *EntryStore[E]) SumByWeek(week, weekYear int) (float64, error) {
	return s.sum("week_of_year = ? AND week_year = ?", week, weekYear)
}

// SumByMonth retourne la somme d'émission d'un mois (1-12).
func (s *EntryStore[E]) SumByMonth(month, year int) (float64, error) {
	return s.sum("month = ? AND year = ?", month, year)
}

func (s *EntryStore[E]) sum(query string, args ...any) (float64, error) {
	var total float64
	err := s.db.Model(new(E)).
		Select("COALESCE(SUM(" + s.emissionCol + "), 0)").
		Where(query, args...).
		Scan(&total).Error
	return total / s.unitDivisor, err
}

// CountByDate compte les entrées du jour.
func (s *EntryStore[E]) CountByDate(dateString string) (int64, error) {
	return s.count("date_string = ?", dateString)
}

// CountByWeek compte les entrées d'une semaine ISO.
func (s *EntryStore[E]) CountByWeek(week, weekYear int) (int64, error) {
	return s.count("week_of_year = ? AND week_year = ?", week, weekYear)
}

// CountByMonth compte les entrées d'un mois.
func (s *EntryStore[E]) CountByMonth(month, year int) (int64, error) {
	return s.count("month = ? AND year = ?", month, year)
}

func (s *EntryStore[E]) count(query string, args ...any) (int64, error) {
	var n int64
	err := s.db.Model(new(E)).Where(query, args...).Count(&n).Error
	return n, err
}

// ActiveDays retourne les jours du mois ayant au moins une entrée,
// triés par jour croissant. Sert au rendu du calendrier d'activité.
func (s *EntryStore[E]) ActiveDays(month, year int) ([]int, error) {
	var days []int
	err := s.db.Model(new(E)).
		Distinct("day_of_month").
		Where("month = ? AND year = ?", month, year).
		Order("day_of_month ASC").
		Pluck("day_of_month", &days).Error
	return days, err
}

// DeleteAll vide la table. Irréversible, réservé au reset explicite.
func (s *EntryStore[E]) DeleteAll() error {
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(E)).Error
}

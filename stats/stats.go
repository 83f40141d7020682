// Package stats dérive les agrégats jour/semaine/mois et l'EcoScore.
// "Aujourd'hui", "cette semaine" et "ce mois" sont calculés depuis l'horloge
// au moment de l'appel, avec les mêmes règles calendaires (mois 1-12,
// semaine ISO) que celles figées à l'écriture des entrées.
package stats

import (
	"math"
	"time"

	"ecotrack/emissions"
	"ecotrack/models"
	"ecotrack/store"
)

// Stats est le relevé commun à toutes les catégories.
// Toutes les émissions sont en kg (l'alimentaire est converti par le store).
type Stats struct {
	TodayEmissionKg   float64 `json:"today_emission_kg"`
	WeeklyEmissionKg  float64 `json:"weekly_emission_kg"`
	MonthlyEmissionKg float64 `json:"monthly_emission_kg"`
	TodayCount        int64   `json:"today_count"`
	WeeklyCount       int64   `json:"weekly_count"`
	MonthlyCount      int64   `json:"monthly_count"`
}

// WasteStats enrichit le relevé commun de la ventilation mensuelle.
type WasteStats struct {
	Stats
	Breakdown store.WasteBreakdown `json:"breakdown"`
}

// Dashboard est la synthèse inter-catégories du mois courant.
type Dashboard struct {
	TransportKg    float64 `json:"transport_kg"`
	DietKg         float64 `json:"diet_kg"`
	BillKg         float64 `json:"bill_kg"`
	WasteKg        float64 `json:"waste_kg"`
	ShoppingKg     float64 `json:"shopping_kg"`
	TotalMonthlyKg float64 `json:"total_monthly_kg"`
	EcoScore       int     `json:"eco_score"`
}

type Engine struct {
	stores *store.Stores
}

func NewEngine(stores *store.Stores) *Engine {
	return &Engine{stores: stores}
}

// categoryStats lit les six scalaires d'une catégorie pour l'instant donné.
func categoryStats[E any](s *store.EntryStore[E], now time.Time) (Stats, error) {
	b := models.NewBucketing(now)
	var (
		st  Stats
		err error
	)
	if st.TodayEmissionKg, err = s.SumByDate(b.DateString); err != nil {
		return st, err
	}
	if st.WeeklyEmissionKg, err = s.SumByWeek(b.WeekOfYear, b.WeekYear); err != nil {
		return st, err
	}
	if st.MonthlyEmissionKg, err = s.SumByMonth(b.Month, b.Year); err != nil {
		return st, err
	}
	if st.TodayCount, err = s.CountByDate(b.DateString); err != nil {
		return st, err
	}
	if st.WeeklyCount, err = s.CountByWeek(b.WeekOfYear, b.WeekYear); err != nil {
		return st, err
	}
	st.MonthlyCount, err = s.CountByMonth(b.Month, b.Year)
	return st, err
}

func (e *Engine) Transport(now time.Time) (Stats, error) {
	return categoryStats(e.stores.Transport.EntryStore, now)
}

// Diet retourne des kg : la division par 1000 est faite par le store.
func (e *Engine) Diet(now time.Time) (Stats, error) {
	return categoryStats(e.stores.Diet, now)
}

func (e *Engine) Bill(now time.Time) (Stats, error) {
	return categoryStats(e.stores.Bill, now)
}

func (e *Engine) Shopping(now time.Time) (Stats, error) {
	return categoryStats(e.stores.Shopping, now)
}

func (e *Engine) Waste(now time.Time) (WasteStats, error) {
	st, err := categoryStats(e.stores.Waste.EntryStore, now)
	if err != nil {
		return WasteStats{}, err
	}
	b := models.NewBucketing(now)
	breakdown, err := e.stores.Waste.MonthlyBreakdown(b.Month, b.Year)
	if err != nil {
		return WasteStats{}, err
	}
	return WasteStats{Stats: st, Breakdown: breakdown}, nil
}

// Dashboard agrège les totaux mensuels de toutes les catégories et en
// dérive l'EcoScore.
func (e *Engine) Dashboard(now time.Time) (Dashboard, error) {
	b := models.NewBucketing(now)
	var (
		d   Dashboard
		err error
	)
	if d.TransportKg, err = e.stores.Transport.SumByMonth(b.Month, b.Year); err != nil {
		return d, err
	}
	if d.DietKg, err = e.stores.Diet.SumByMonth(b.Month, b.Year); err != nil {
		return d, err
	}
	if d.BillKg, err = e.stores.Bill.SumByMonth(b.Month, b.Year); err != nil {
		return d, err
	}
	if d.WasteKg, err = e.stores.Waste.SumByMonth(b.Month, b.Year); err != nil {
		return d, err
	}
	if d.ShoppingKg, err = e.stores.Shopping.SumByMonth(b.Month, b.Year); err != nil {
		return d, err
	}
	d.TotalMonthlyKg = d.TransportKg + d.DietKg + d.BillKg + d.WasteKg + d.ShoppingKg
	d.EcoScore = EcoScore(d.TotalMonthlyKg)
	return d, nil
}

// EcoScore compare le total mensuel à la moyenne de référence, en
// pourcentage borné [0, 100]. Zéro activité vaut 100.
func EcoScore(monthlyTotalKg float64) int {
	if monthlyTotalKg <= 0 {
		return 100
	}
	score := int(math.Round(100 * (1 - monthlyTotalKg/emissions.ReferenceMonthlyKg)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

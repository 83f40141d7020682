package models

import "time"

// Provenance du texte brut d'une entrée.
const (
	SourceOCR    = "ocr"
	SourceManual = "manual"
	SourceAI     = "ai"
)

// Bucketing regroupe les champs de datation dénormalisés, calculés une seule
// fois à la création de l'entrée et jamais recalculés ensuite : les requêtes
// d'agrégation filtrent sur ces colonnes, pas sur le timestamp brut.
// Convention unique : mois 1-12, semaine ISO-8601 (avec son année ISO).
type Bucketing struct {
	DateString      string `gorm:"index" json:"date_string"` // YYYY-MM-DD
	DayOfMonth      int    `json:"day_of_month"`
	Month           int    `gorm:"index" json:"month"` // 1-12
	Year            int    `gorm:"index" json:"year"`
	WeekOfYear      int    `json:"week_of_year"`
	WeekYear        int    `json:"week_year"`
	CreatedAtMillis int64  `gorm:"index" json:"created_at_millis"`
}

// NewBucketing fige les champs de datation pour l'instant t.
func NewBucketing(t time.Time) Bucketing {
	weekYear, week := t.ISOWeek()
	return Bucketing{
		DateString:      t.Format("2006-01-02"),
		DayOfMonth:      t.Day(),
		Month:           int(t.Month()),
		Year:            t.Year(),
		WeekOfYear:      week,
		WeekYear:        weekYear,
		CreatedAtMillis: t.UnixMilli(),
	}
}

// Provenance porte l'origine du texte brut, conservée pour l'audit.
type Provenance struct {
	InputSource  string `json:"input_source"`
	RawInputText string `json:"raw_input_text"`
}

package models

import (
	"time"

	"gorm.io/datatypes"

	"ecotrack/emissions"
)

// BillEntry est une facture multi-énergies (électricité, gaz, eau, internet).
type BillEntry struct {
	ID             int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	ElectricityKwh float64                     `json:"electricity_kwh"`
	GasLitres      float64                     `json:"gas_litres"`
	WaterLitres    float64                     `json:"water_litres"`
	InternetGb     float64                     `json:"internet_gb"`
	ElectricityKg  float64                     `json:"electricity_kg"`
	GasKg          float64                     `json:"gas_kg"`
	WaterKg        float64                     `json:"water_kg"`
	InternetKg     float64                     `json:"internet_kg"`
	TotalKg        float64                     `json:"total_kg"`
	EcoTips        datatypes.JSONSlice[string] `json:"eco_tips"`
	Provenance     `gorm:"embedded"`
	Bucketing      `gorm:"embedded"`
}

// NewBillEntry applique les quatre facteurs par utilité et fige la datation.
func NewBillEntry(electricityKwh, gasLitres, waterLitres, internetGb float64, ecoTips []string, source, rawText string, now time.Time) BillEntry {
	e := emissions.CalculateBillEmission(electricityKwh, gasLitres, waterLitres, internetGb)
	return BillEntry{
		ElectricityKwh: electricityKwh,
		GasLitres:      gasLitres,
		WaterLitres:    waterLitres,
		InternetGb:     internetGb,
		ElectricityKg:  e.ElectricityKg,
		GasKg:          e.GasKg,
		WaterKg:        e.WaterKg,
		InternetKg:     e.InternetKg,
		TotalKg:        e.TotalKg,
		EcoTips:        ecoTips,
		Provenance:     Provenance{InputSource: source, RawInputText: rawText},
		Bucketing:      NewBucketing(now),
	}
}

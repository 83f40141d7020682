package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecotrack/emissions"
)

func TestNewBucketing(t *testing.T) {
	// mercredi 15 mars 2023, semaine ISO 11
	at := time.Date(2023, time.March, 15, 10, 30, 0, 0, time.UTC)
	b := NewBucketing(at)

	assert.Equal(t, "2023-03-15", b.DateString)
	assert.Equal(t, 15, b.DayOfMonth)
	assert.Equal(t, 3, b.Month) // convention unique 1-12
	assert.Equal(t, 2023, b.Year)
	assert.Equal(t, 11, b.WeekOfYear)
	assert.Equal(t, 2023, b.WeekYear)
	assert.Equal(t, at.UnixMilli(), b.CreatedAtMillis)
}

func TestNewBucketingISOWeekYearBoundary(t *testing.T) {
	// le 1er janvier 2023 appartient à la semaine ISO 52 de 2022
	b := NewBucketing(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 52, b.WeekOfYear)
	assert.Equal(t, 2022, b.WeekYear)
	assert.Equal(t, 1, b.Month)
	assert.Equal(t, 2023, b.Year)
}

func TestNewTransportEntry(t *testing.T) {
	now := time.Now()
	e := NewTransportEntry(emissions.ModeCar, 12.5, SourceManual, "", now)

	require.NotEmpty(t, e.ID)
	assert.InDelta(t, emissions.TransportFactor(emissions.ModeCar)*12.5, e.EmissionKg, 1e-9)
	assert.Equal(t, SourceManual, e.InputSource)
	assert.Equal(t, now.Format("2006-01-02"), e.DateString)
}

func TestNewWasteEntryNetImpactInvariant(t *testing.T) {
	now := time.Now()
	items := []WasteItem{
		{WasteType: "bouteille", Category: "plastic", QuantityKg: 2, Unit: "kg", Disposal: "recycled", EmissionKg: 0.8},
		{WasteType: "épluchures", Category: "organic", QuantityKg: 1, Unit: "kg", Disposal: "composted", EmissionKg: 0.1},
		{WasteType: "sac", Category: "plastic", QuantityKg: 0.5, Unit: "kg", Disposal: "landfill", EmissionKg: 1.45},
	}
	e := NewWasteEntry(items, "recyclez plus", SourceAI, "des déchets", now)

	assert.InDelta(t, 0.8, e.RecycledEmissionKg, 1e-9)
	assert.InDelta(t, 0.1, e.CompostedEmissionKg, 1e-9)
	assert.InDelta(t, 1.45, e.LandfillEmissionKg, 1e-9)
	assert.InDelta(t, e.LandfillEmissionKg-e.RecycledEmissionKg-e.CompostedEmissionKg, e.NetImpactKg, 1e-9)
	assert.InDelta(t, 2, e.RecycledWeightKg, 1e-9)
	assert.InDelta(t, 1, e.CompostedWeightKg, 1e-9)
	assert.InDelta(t, 0.5, e.LandfillWeightKg, 1e-9)
	require.NotEmpty(t, e.ID)
}

func TestNewWasteEntryFillsMissingEmission(t *testing.T) {
	// émission absente => recalcul via la table de facteurs
	items := []WasteItem{
		{Category: "plastic", QuantityKg: 2, Disposal: "landfill"},
	}
	e := NewWasteEntry(items, "", SourceAI, "", time.Now())
	assert.InDelta(t, emissions.CalculateWasteEmission("plastic", "landfill", 2), e.LandfillEmissionKg, 1e-9)
}

func TestNewWasteEntryUnknownDisposalGoesToLandfill(t *testing.T) {
	items := []WasteItem{
		{Category: "plastic", QuantityKg: 1, Disposal: "orbite", EmissionKg: 3},
	}
	e := NewWasteEntry(items, "", SourceAI, "", time.Now())
	assert.InDelta(t, 3, e.LandfillEmissionKg, 1e-9)
	assert.Equal(t, 0.0, e.RecycledEmissionKg)
}

func TestNewBillEntryComputesPerUtility(t *testing.T) {
	e := NewBillEntry(100, 0, 0, 10, nil, SourceOCR, "facture EDF", time.Now())
	assert.InDelta(t, 100*emissions.ElectricityFactorPerKWh, e.ElectricityKg, 1e-9)
	assert.Equal(t, 0.0, e.GasKg)
	assert.InDelta(t, e.ElectricityKg+e.InternetKg, e.TotalKg, 1e-9)
	assert.Equal(t, SourceOCR, e.InputSource)
	assert.Equal(t, "facture EDF", e.RawInputText)
}

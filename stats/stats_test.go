package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecotrack/emissions"
	"ecotrack/models"
	"ecotrack/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Stores) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserLog{},
		&models.TransportEntry{},
		&models.DietEntry{},
		&models.BillEntry{},
		&models.WasteEntry{},
		&models.ShoppingEntry{},
	))
	stores := store.New(db)
	return NewEngine(stores), stores
}

func TestStatsEmptyStoreIsZero(t *testing.T) {
	engine, _ := newTestEngine(t)

	st, err := engine.Transport(time.Now())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)

	ws, err := engine.Waste(time.Now())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, ws.Stats)
	assert.Equal(t, store.WasteBreakdown{}, ws.Breakdown)
}

func TestStatsBucketsTodayWeekMonth(t *testing.T) {
	engine, stores := newTestEngine(t)
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

	today := models.NewTransportEntry(emissions.ModeCar, 10, models.SourceManual, "", now)
	// même semaine ISO, autre jour
	sameWeek := models.NewTransportEntry(emissions.ModeCar, 20, models.SourceManual, "", now.AddDate(0, 0, -2))
	// même mois, autre semaine
	sameMonth := models.NewTransportEntry(emissions.ModeCar, 30, models.SourceManual, "", now.AddDate(0, 0, -13))
	for _, e := range []*models.TransportEntry{&today, &sameWeek, &sameMonth} {
		require.NoError(t, stores.Transport.Insert(e))
	}

	st, err := engine.Transport(now)
	require.NoError(t, err)

	assert.InDelta(t, today.EmissionKg, st.TodayEmissionKg, 1e-9)
	assert.InDelta(t, today.EmissionKg+sameWeek.EmissionKg, st.WeeklyEmissionKg, 1e-9)
	assert.InDelta(t, today.EmissionKg+sameWeek.EmissionKg+sameMonth.EmissionKg, st.MonthlyEmissionKg, 1e-9)
	assert.Equal(t, int64(1), st.TodayCount)
	assert.Equal(t, int64(2), st.WeeklyCount)
	assert.Equal(t, int64(3), st.MonthlyCount)
}

func TestDietStatsConvertGramsToKg(t *testing.T) {
	engine, stores := newTestEngine(t)
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

	e := models.NewDietEntry(nil, 2500, nil, models.SourceAI, "", now)
	require.NoError(t, stores.Diet.Insert(&e))

	st, err := engine.Diet(now)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, st.TodayEmissionKg, 1e-9)
	assert.InDelta(t, 2.5, st.WeeklyEmissionKg, 1e-9)
	assert.InDelta(t, 2.5, st.MonthlyEmissionKg, 1e-9)
}

func TestDashboardTotalsAndEcoScore(t *testing.T) {
	engine, stores := newTestEngine(t)
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

	tr := models.NewTransportEntry(emissions.ModeCar, 100, models.SourceManual, "", now)
	di := models.NewDietEntry(nil, 3000, nil, models.SourceAI, "", now)
	require.NoError(t, stores.Transport.Insert(&tr))
	require.NoError(t, stores.Diet.Insert(&di))

	d, err := engine.Dashboard(now)
	require.NoError(t, err)
	assert.InDelta(t, tr.EmissionKg, d.TransportKg, 1e-9)
	assert.InDelta(t, 3.0, d.DietKg, 1e-9)
	assert.InDelta(t, tr.EmissionKg+3.0, d.TotalMonthlyKg, 1e-9)
	assert.Equal(t, EcoScore(d.TotalMonthlyKg), d.EcoScore)
}

func TestEcoScore(t *testing.T) {
	assert.Equal(t, 100, EcoScore(0))
	assert.Equal(t, 100, EcoScore(-1))
	assert.Equal(t, 0, EcoScore(emissions.ReferenceMonthlyKg*2))
	assert.Equal(t, 50, EcoScore(emissions.ReferenceMonthlyKg/2))
}

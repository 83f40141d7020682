package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecotrack/ai"
	"ecotrack/config"
	"ecotrack/integrations/mistral"
	"ecotrack/models"
	"ecotrack/stats"
	"ecotrack/store"
)

func newTestApp(t *testing.T, apiKey, mistralURL string) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserLog{},
		&models.TransportEntry{},
		&models.DietEntry{},
		&models.BillEntry{},
		&models.WasteEntry{},
		&models.ShoppingEntry{},
	))

	cfg := config.Config{JWTSecret: "test-secret"}
	stores := store.New(db)
	client := mistral.NewClient(apiKey, "agent-1", mistralURL)
	app := fiber.New()
	Setup(app, Deps{
		DB:        db,
		Stores:    stores,
		Stats:     stats.NewEngine(stores),
		Extractor: ai.NewExtractor(client),
		Assistant: client,
		Cfg:       cfg,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func authenticate(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Léa", "email": "lea@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "lea@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "lea@example.com", "password": "mauvais",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Léa bis", "email": "lea@example.com", "password": "autresecret",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRejectWithoutToken(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	resp := doJSON(t, app, http.MethodGet, "/transport/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTRejectsTokenWithoutUserID(t *testing.T) {
	app := newTestApp(t, "test-key", "")

	// token correctement signé mais sans claim user_id : 401, pas de panic
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodGet, "/transport/", signed, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTransportCreateListStats(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	token := authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/transport/", token, map[string]any{
		"mode": "car", "distance_km": 10.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.TransportEntry
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Greater(t, created.EmissionKg, 0.0)
	assert.Equal(t, models.SourceManual, created.InputSource)

	resp = doJSON(t, app, http.MethodGet, "/transport/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.TransportEntry
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)

	resp = doJSON(t, app, http.MethodGet, "/transport/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st stats.Stats
	decodeBody(t, resp, &st)
	assert.Equal(t, int64(1), st.TodayCount)
	assert.InDelta(t, created.EmissionKg, st.TodayEmissionKg, 1e-9)
}

func TestTransportRejectsInvalidPayload(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	token := authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/transport/", token, map[string]any{
		"mode": "", "distance_km": -2.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBillCalculatePreviewDoesNotPersist(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	token := authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/bill/calculate", token, map[string]any{
		"electricity_kwh": 100.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/bill/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.BillEntry
	decodeBody(t, resp, &list)
	assert.Empty(t, list)
}

func TestAnalyzeWithoutMistralReturns503(t *testing.T) {
	// client sans credentials : l'IA est indisponible
	app := newTestApp(t, "", "")
	token := authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/diet/analyze", token, map[string]string{"text": "un steak"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAnalyzeEmptyInputCutBeforeRemoteCall(t *testing.T) {
	app := newTestApp(t, "test-key", "http://127.0.0.1:1")
	token := authenticate(t, app)

	// l'entrée vide doit être coupée avant tout appel réseau
	resp := doJSON(t, app, http.MethodPost, "/diet/analyze", token, map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWasteConfirmAndBreakdown(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	token := authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/waste/", token, map[string]any{
		"items": []map[string]any{
			{"waste_type": "bouteille", "category": "plastic", "quantity_kg": 2.0, "unit": "kg", "disposal": "recycled", "emission_kg": 0.8},
			{"waste_type": "sac", "category": "plastic", "quantity_kg": 1.0, "unit": "kg", "disposal": "landfill", "emission_kg": 2.9},
		},
		"eco_tip": "recyclez plus",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.WasteEntry
	decodeBody(t, resp, &created)
	assert.InDelta(t, 2.9-0.8, created.NetImpactKg, 1e-9)

	url := "/waste/breakdown?month=" + strconv.Itoa(created.Month) + "&year=" + strconv.Itoa(created.Year)
	resp = doJSON(t, app, http.MethodGet, url, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var b store.WasteBreakdown
	decodeBody(t, resp, &b)
	assert.InDelta(t, 0.8, b.RecycledEmissionKg, 1e-9)
	assert.InDelta(t, 2.9, b.LandfillEmissionKg, 1e-9)
}

func TestWasteCalculatePreviewDoesNotPersist(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	token := authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/waste/calculate", token, map[string]any{
		"items": []map[string]any{
			{"category": "plastic", "quantity_kg": 1.0, "disposal": "landfill", "emission_kg": 2.9},
			{"category": "plastic", "quantity_kg": 2.0, "disposal": "recycled", "emission_kg": 0.8},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var preview map[string]float64
	decodeBody(t, resp, &preview)
	assert.InDelta(t, 2.9-0.8, preview["net_impact_kg"], 1e-9)

	resp = doJSON(t, app, http.MethodGet, "/waste/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.WasteEntry
	decodeBody(t, resp, &list)
	assert.Empty(t, list)
}

func TestDashboardAndReset(t *testing.T) {
	app := newTestApp(t, "test-key", "")
	token := authenticate(t, app)

	resp := doJSON(t, app, http.MethodPost, "/transport/", token, map[string]any{
		"mode": "car", "distance_km": 50.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/stats/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var d stats.Dashboard
	decodeBody(t, resp, &d)
	assert.Greater(t, d.TransportKg, 0.0)
	assert.Equal(t, d.TransportKg, d.TotalMonthlyKg)

	resp = doJSON(t, app, http.MethodDelete, "/account/data", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/stats/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &d)
	assert.Equal(t, 0.0, d.TotalMonthlyKg)
	assert.Equal(t, 100, d.EcoScore)
}

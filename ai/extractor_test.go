package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecotrack/integrations/mistral"
)

// fakeAgent simule l'API conversations de Mistral.
func fakeAgent(t *testing.T, status int, replyText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/conversations", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-API-KEY"))
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		body, _ := json.Marshal(map[string]any{
			"id":      "conv_1",
			"status":  "completed",
			"message": map[string]any{"type": "text", "content": replyText},
		})
		w.Write(body)
	}))
}

func newTestExtractor(baseURL string) *Extractor {
	return NewExtractor(mistral.NewClient("test-key", "agent-1", baseURL))
}

func TestExtractorEmptyInputNoRemoteCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).AnalyzeDiet(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyInput)
	assert.False(t, called)
}

func TestExtractorSuccess(t *testing.T) {
	srv := fakeAgent(t, http.StatusOK,
		"```json\n{\"isValid\": true, \"totalEmissionGrams\": 2500, \"items\": [{\"name\": \"boeuf\", \"emissionGrams\": 2500, \"icon\": \"🥩\"}], \"suggestions\": []}\n```")
	defer srv.Close()

	res, err := newTestExtractor(srv.URL).AnalyzeDiet(context.Background(), "un steak")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, res.TotalEmissionGrams)
	require.Len(t, res.Items, 1)
}

func TestExtractorTransportError(t *testing.T) {
	srv := fakeAgent(t, http.StatusTooManyRequests, "")
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).AnalyzeWaste(context.Background(), "des bouteilles")
	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
}

func TestExtractorValidationError(t *testing.T) {
	srv := fakeAgent(t, http.StatusOK, `{"isValid": false, "error": "pas un repas"}`)
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).AnalyzeDiet(context.Background(), "bonjour")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "pas un repas", vErr.Reason)
}

func TestExtractorNotReadyWithoutCredentials(t *testing.T) {
	x := NewExtractor(mistral.NewClient("", "", ""))
	assert.False(t, x.Ready())
}

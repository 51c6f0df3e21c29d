package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini

	_, err := NewVisionClient(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		assert.Contains(t, r.URL.Path, "gemini-test")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gen, _ := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", gen["responseMimeType"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"title":"ok"}`}},
				},
			}},
		})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg.APIKey = "gem-key"
	cfg.Endpoint = srv.URL
	cfg.Model = "gemini-test"

	obs := &recordingObserver{}
	client, err := NewVisionClient(context.Background(), cfg, obs)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, client.Provider())

	resp, err := client.Generate(context.Background(), VisionRequest{
		Task:         TaskPlan,
		SystemPrompt: "system",
		UserPrompt:   "user",
		Image:        testImage(t),
		Schema: &Schema{
			Type:       "object",
			Properties: map[string]*Schema{"title": {Type: "string"}},
			Required:   []string{"title"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"ok"}`, resp.Text)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
}

func TestGeminiClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg.APIKey = "gem-key"
	cfg.Endpoint = srv.URL
	cfg.Model = "gemini-test"

	obs := &recordingObserver{}
	client, err := NewVisionClient(context.Background(), cfg, obs)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), VisionRequest{Task: TaskPlan, Image: testImage(t)})
	require.Error(t, err)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestToGenAISchema(t *testing.T) {
	s := toGenAISchema(&Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"steps": {Type: "array", Items: &Schema{Type: "integer"}},
		},
		Required: []string{"steps"},
	})
	require.NotNil(t, s)
	assert.Equal(t, genaiType("object"), s.Type)
	require.Contains(t, s.Properties, "steps")
	assert.Equal(t, genaiType("array"), s.Properties["steps"].Type)
	assert.Equal(t, genaiType("integer"), s.Properties["steps"].Items.Type)
	assert.Equal(t, []string{"steps"}, s.Required)
}

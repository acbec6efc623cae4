package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mys-constructora/backoffice/config"
)

func TestNewClient_NotConfigured(t *testing.T) {
	_, err := NewClient(context.Background(), &config.GeminiConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(context.Background(), &config.GeminiConfig{UseADC: true})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Generate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[
			{"text":"Hola "},
			{"text":"mundo"},
			{"inlineData":{"data":"AAA","mimeType":"image/png"}},
			{"inlineData":{"data":"","mimeType":"image/png"}}
		]}}]}`)
	}))
	defer upstream.Close()

	c, err := NewClient(context.Background(), &config.GeminiConfig{
		APIKey:  "k-123",
		BaseURL: upstream.URL,
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)

	res, err := c.Generate(context.Background(), TextPrompt(ModelFlash, "saluda", &Config{
		SystemInstruction: "sé breve",
		ResponseMimeType:  "text/plain",
		Tools:             []Tool{GoogleSearchTool()},
	}))
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", gotPath)
	assert.Equal(t, "k-123", gotKey)
	assert.Equal(t, "Hola mundo", res.TextOrEmpty())
	assert.Equal(t, []InlineData{{Data: "AAA", MimeType: "image/png"}}, res.Images)

	contents := gotBody["contents"].([]any)
	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].(map[string]any)["role"])
	assert.Contains(t, gotBody, "systemInstruction")
	assert.Equal(t, map[string]any{"responseMimeType": "text/plain"}, gotBody["generationConfig"])
	assert.Equal(t, []any{map[string]any{"googleSearch": map[string]any{}}}, gotBody["tools"])
}

func TestClient_GenerateUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	c, err := NewClient(context.Background(), &config.GeminiConfig{APIKey: "k", BaseURL: upstream.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), TextPrompt(ModelFlash, "x", nil))
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "quota")
}

func TestCollect_NoCandidates(t *testing.T) {
	res := collect(generateResponse{})
	assert.Nil(t, res.Text)
	assert.Empty(t, res.Images)
}

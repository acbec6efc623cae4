package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fastshot "github.com/opus-domini/fast-shot"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mys-constructora/backoffice/config"
)

var (
	ErrNotConfigured = errors.New("gemini is not configured")
	ErrUpstream      = errors.New("gemini request failed")
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Generator sends a prompt to the model.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Client calls the generateContent REST endpoint, either on the public API
// with an API key or on Vertex AI with application-default credentials.
type Client struct {
	http   fastshot.ClientHttpMethods
	apiKey string
	tokens oauth2.TokenSource
}

// NewClient builds a client from config. It returns ErrNotConfigured when
// neither an API key nor ADC is set up.
func NewClient(ctx context.Context, cfg *config.GeminiConfig) (*Client, error) {
	switch {
	case cfg.UseADC:
		if cfg.VertexURL == "" {
			return nil, fmt.Errorf("GEMINI_VERTEX_URL is required with GEMINI_USE_ADC: %w", ErrNotConfigured)
		}
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("find default credentials: %w", err)
		}
		return &Client{
			http:   newHTTP(cfg.VertexURL, cfg),
			tokens: oauth2.ReuseTokenSource(nil, creds.TokenSource),
		}, nil
	case cfg.APIKey != "":
		return &Client{
			http:   newHTTP(cfg.BaseURL, cfg),
			apiKey: cfg.APIKey,
		}, nil
	default:
		return nil, ErrNotConfigured
	}
}

func newHTTP(baseURL string, cfg *config.GeminiConfig) fastshot.ClientHttpMethods {
	return fastshot.NewClient(strings.TrimRight(baseURL, "/")).
		Config().SetTimeout(cfg.Timeout).
		Header().Add("Content-Type", "application/json").
		Build()
}

func (c *Client) path(model string) string {
	if c.tokens != nil {
		return "/publishers/google/models/" + model + ":generateContent"
	}
	return "/v1beta/models/" + model + ":generateContent"
}

// Generate sends req upstream and collects the text and inline images of the
// first candidate.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	body := buildRequest(req)

	builder := c.http.POST(c.path(req.Model)).
		Context().Set(ctx).
		Header().Add("Accept", "application/json")
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("get access token: %w", err)
		}
		builder = builder.Header().Add("Authorization", "Bearer "+tok.AccessToken)
	} else {
		builder = builder.Header().Add("x-goog-api-key", c.apiKey)
	}

	resp, err := builder.Body().AsJSON(body).Send()
	if err != nil {
		return nil, fmt.Errorf("%w: send: %v", ErrUpstream, err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		msg, _ := resp.Body().AsString()
		return nil, fmt.Errorf("%w: %s", ErrUpstream, strings.TrimSpace(msg))
	}

	var out generateResponse
	if err := resp.Body().AsJSON(&out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return collect(out), nil
}

func buildRequest(req Request) generateRequest {
	out := generateRequest{
		Contents: []content{{Role: "user", Parts: req.Parts}},
	}
	if cfg := req.Config; !cfg.empty() {
		if cfg.SystemInstruction != "" {
			out.SystemInstruction = &content{Parts: []Part{{Text: cfg.SystemInstruction}}}
		}
		if cfg.ResponseMimeType != "" {
			out.GenerationConfig = &generationConfig{ResponseMimeType: cfg.ResponseMimeType}
		}
		out.Tools = cfg.Tools
	}
	return out
}

func collect(resp generateResponse) *Result {
	res := &Result{}
	if len(resp.Candidates) == 0 {
		return res
	}
	var sb strings.Builder
	hasText := false
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			sb.WriteString(p.Text)
			hasText = true
		}
		if p.InlineData != nil && p.InlineData.Data != "" && p.InlineData.MimeType != "" {
			res.Images = append(res.Images, *p.InlineData)
		}
	}
	if hasText {
		text := sb.String()
		res.Text = &text
	}
	return res
}

// TextPrompt is a convenience for single-text requests.
func TextPrompt(model, prompt string, cfg *Config) Request {
	return Request{Model: model, Parts: []Part{{Text: prompt}}, Config: cfg}
}

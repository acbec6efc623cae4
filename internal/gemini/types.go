package gemini

// Allowed models for the public proxy.
const (
	ModelFlash = "gemini-3-flash-preview"
	ModelPro   = "gemini-3-pro-preview"
	ModelImage = "gemini-2.5-flash-image"
)

var allowedModels = map[string]struct{}{
	ModelFlash: {},
	ModelPro:   {},
	ModelImage: {},
}

// ModelAllowed reports whether the proxy forwards requests for model.
func ModelAllowed(model string) bool {
	_, ok := allowedModels[model]
	return ok
}

type InlineData struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// Part is a single text or inline-data chunk of a prompt or reply.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type Tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

// GoogleSearchTool enables grounding with Google Search.
func GoogleSearchTool() Tool {
	return Tool{GoogleSearch: &struct{}{}}
}

// Config is the subset of generation options callers may set.
type Config struct {
	ResponseMimeType  string `json:"responseMimeType,omitempty"`
	SystemInstruction string `json:"systemInstruction,omitempty"`
	Tools             []Tool `json:"tools,omitempty"`
}

func (c *Config) empty() bool {
	return c == nil || (c.ResponseMimeType == "" && c.SystemInstruction == "" && len(c.Tools) == 0)
}

// Request is one generateContent call.
type Request struct {
	Model  string
	Parts  []Part
	Config *Config
}

// Result is what the proxy returns to the browser.
type Result struct {
	Text   *string      `json:"text"`
	Images []InlineData `json:"images,omitempty"`
}

// TextOrEmpty returns the reply text, or "" when the model returned none.
func (r *Result) TextOrEmpty() string {
	if r == nil || r.Text == nil {
		return ""
	}
	return *r.Text
}

// wire types for the REST API

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

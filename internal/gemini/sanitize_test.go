package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeConfig(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Config
	}{
		{"empty", ``, nil},
		{"not an object", `"x"`, nil},
		{"nothing allowed", `{"temperature":2,"safetySettings":[]}`, nil},
		{"non-string mime", `{"responseMimeType":5}`, nil},
		{
			"allowed fields",
			`{"responseMimeType":"application/json","systemInstruction":"be brief","temperature":1}`,
			&Config{ResponseMimeType: "application/json", SystemInstruction: "be brief"},
		},
		{
			"only google search tools",
			`{"tools":[{"googleSearch":{"x":1}},{"codeExecution":{}},null,{"googleSearch":null}]}`,
			&Config{Tools: []Tool{GoogleSearchTool(), GoogleSearchTool()}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeConfig(json.RawMessage(tt.in)))
		})
	}
}

func TestGoogleSearchToolJSON(t *testing.T) {
	b, err := json.Marshal(GoogleSearchTool())
	require.NoError(t, err)
	assert.JSONEq(t, `{"googleSearch":{}}`, string(b))
}

package gemini

import "encoding/json"

// SanitizeConfig keeps responseMimeType and systemInstruction when they are
// strings and tools entries that declare googleSearch. Anything else the
// browser sent is dropped. It returns nil when nothing survives.
func SanitizeConfig(raw json.RawMessage) *Config {
	if len(raw) == 0 {
		return nil
	}
	var in map[string]json.RawMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil
	}

	out := &Config{}
	var s string
	if v, ok := in["responseMimeType"]; ok && json.Unmarshal(v, &s) == nil {
		out.ResponseMimeType = s
	}
	s = ""
	if v, ok := in["systemInstruction"]; ok && json.Unmarshal(v, &s) == nil {
		out.SystemInstruction = s
	}
	if v, ok := in["tools"]; ok {
		var tools []json.RawMessage
		if json.Unmarshal(v, &tools) == nil {
			for _, t := range tools {
				var obj map[string]json.RawMessage
				if json.Unmarshal(t, &obj) != nil || obj == nil {
					continue
				}
				if _, has := obj["googleSearch"]; has {
					out.Tools = append(out.Tools, GoogleSearchTool())
				}
			}
		}
	}

	if out.empty() {
		return nil
	}
	return out
}

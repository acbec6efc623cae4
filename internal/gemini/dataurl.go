package gemini

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidDataURL = errors.New("invalid data URL (expected data:<mime>;base64,<data>)")

var dataURLHeader = regexp.MustCompile(`^data:(.*?);base64$`)

// ParseDataURL splits a base64 data URL into inline data.
func ParseDataURL(s string) (*InlineData, error) {
	header, data, ok := strings.Cut(s, ",")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	m := dataURLHeader.FindStringSubmatch(header)
	if m == nil || data == "" {
		return nil, ErrInvalidDataURL
	}
	return &InlineData{MimeType: m[1], Data: data}, nil
}

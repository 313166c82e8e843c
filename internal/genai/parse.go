package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError reports model output that failed JSON decoding
// or the post-parse schema check. The raw text is kept for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// StripFences removes markdown code fences from model output. Models
// frequently wrap JSON in ```json fences despite instructions not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseStructured strips fences and decodes raw model output into T. The
// optional check runs after decoding so callers can reject payloads that
// parse but miss required fields.
func ParseStructured[T any](raw string, check func(*T) error) (*T, error) {
	cleaned := StripFences(raw)

	var out T
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	if check != nil {
		if err := check(&out); err != nil {
			return nil, &MalformedResponseError{Raw: raw, Err: err}
		}
	}

	return &out, nil
}

// GenerateStructured calls the client and decodes the response into T.
func GenerateStructured[T any](ctx context.Context, client Client, profile ModelProfile, prompt string, check func(*T) error) (*T, error) {
	raw, err := client.Generate(ctx, profile, prompt)
	if err != nil {
		return nil, err
	}
	return ParseStructured(raw, check)
}

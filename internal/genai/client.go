package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client generates text from a prompt under a model profile.
type Client interface {
	Generate(ctx context.Context, profile ModelProfile, prompt string) (string, error)
}

// GeminiConfig configures the HTTP client for the Gemini API.
type GeminiConfig struct {
	APIKey       string
	BaseURL      string // e.g. https://generativelanguage.googleapis.com/v1beta
	CapableModel string
	FastModel    string
	Timeout      time.Duration
	MaxRetries   int
}

// GeminiClient calls the generateContent endpoint over plain HTTP.
type GeminiClient struct {
	cfg        GeminiConfig
	httpClient *http.Client
	retry      RetryConfig
}

func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	retry := DefaultRetryConfig
	if cfg.MaxRetries > 0 {
		retry.MaxRetries = cfg.MaxRetries
	}
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retry:      retry,
	}
}

// Request/response shapes for models/{model}:generateContent.

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) modelFor(profile ModelProfile) string {
	if profile.Name == ProfileFast.Name {
		return c.cfg.FastModel
	}
	return c.cfg.CapableModel
}

// Generate sends one prompt and returns the first candidate's text.
// Transient provider failures (429, 5xx, network errors) are retried with
// exponential backoff; the context bounds the whole call.
func (c *GeminiClient) Generate(ctx context.Context, profile ModelProfile, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     profile.Temperature,
			TopK:            profile.TopK,
			TopP:            profile.TopP,
			MaxOutputTokens: profile.MaxOutputTokens,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, c.modelFor(profile), c.cfg.APIKey)

	return RetryDo(ctx, c.retry, func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}

		if isRetryableStatus(resp.StatusCode) {
			return "", &httpStatusError{StatusCode: resp.StatusCode}
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("gemini: unexpected status %d: %s", resp.StatusCode, truncate(string(body), 300))
		}

		var parsed geminiResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("gemini: decode response: %w", err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("gemini: %s (%d)", parsed.Error.Message, parsed.Error.Code)
		}
		if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("gemini: empty candidate list")
		}

		var text string
		for _, part := range parsed.Candidates[0].Content.Parts {
			text += part.Text
		}
		return text, nil
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Package enrichment talks to the Gemini generateContent API for tag
// suggestion and text censorship. Every call degrades to a harmless default
// (empty suggestions, unmodified text) when the key is missing, the request
// fails, or the response cannot be parsed. Callers never see an error.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/civicwatch-app/backend/internal/config"
)

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.GeminiAPIKey,
		baseURL: cfg.GeminiAPIURL,
		model:   cfg.GeminiModel,
		httpClient: &http.Client{
			Timeout: cfg.AITimeout,
		},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// SuggestTags extracts up to five hashtags from free text. Returns nil on
// any failure.
func (c *Client) SuggestTags(ctx context.Context, text string) []string {
	if !c.Enabled() || strings.TrimSpace(text) == "" {
		return nil
	}

	prompt := fmt.Sprintf(`Extract up to 5 relevant, single-word or two-word tags from the following issue report. Return the tags as a JSON array of strings, with each tag starting with a '#'. For example: ["#pothole", "#safety", "#mainstreet"]. Text: %q`, text)

	raw, err := c.generate(ctx, prompt, &generationConfig{
		Temperature:      0.2,
		ResponseMimeType: "application/json",
	})
	if err != nil {
		slog.Warn("tag suggestion failed", "error", err)
		return nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		slog.Warn("tag suggestion returned non-JSON payload", "error", err)
		return nil
	}
	for i, t := range tags {
		if !strings.HasPrefix(t, "#") {
			tags[i] = "#" + t
		}
	}
	return tags
}

// Censor replaces profanity in the text with '***'. Returns the input
// unchanged on any failure.
func (c *Client) Censor(ctx context.Context, text string) string {
	if !c.Enabled() || text == "" {
		return text
	}

	prompt := fmt.Sprintf(`Review the following text and replace any curse words, profanity, or adult content with '***'. Return only the modified text. Text: %q`, text)

	raw, err := c.generate(ctx, prompt, &generationConfig{Temperature: 0})
	if err != nil {
		slog.Warn("censorship call failed", "error", err)
		return text
	}
	return strings.TrimSpace(raw)
}

func (c *Client) generate(ctx context.Context, prompt string, genCfg *generationConfig) (string, error) {
	body := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: genCfg,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned empty response")
	}

	slog.Debug("gemini call completed", "latency_ms", time.Since(start).Milliseconds())
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Defaults for the chat completions endpoint.
const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second

	completionsPath = "/v1/chat/completions"
	maxTokens       = 1024
)

const systemPrompt = `You are an expert art assistant that suggests brushes and canvas settings based on a user's drawing style.

Analyze the provided drawing style description and, if available, an example artwork to suggest optimal brushes and canvas settings.

Reply with a single JSON object and nothing else, with these fields:
- "suggestedBrushes": an array of strings, suggested brush types or specific brush names suitable for this style.
- "suggestedCanvasSettings": an object with string fields "resolution", "colorProfile" (e.g. RGB, CMYK) and "size" (e.g. 1920x1080 pixels).
- "styleAnalysis": a brief analysis of the detected drawing style.

Ensure the suggestions align with the described style and the provided example, if any.`

// Client calls an OpenAI-compatible chat completions API. Each Suggest is
// a single attempt; there are no retries.
type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewClient creates a new suggestion client. Empty baseURL and model use
// the defaults.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Suggest asks the model for suggestions. Invalid requests fail with
// ErrInvalidRequest; every other failure is a *ServiceError.
func (c *Client) Suggest(ctx context.Context, req Request) (*Suggestion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if c.APIKey == "" {
		return nil, serviceError(nil, "OpenAI API key is not configured")
	}

	data, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, serviceError(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+completionsPath, bytes.NewReader(data))
	if err != nil {
		return nil, serviceError(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, serviceError(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serviceError(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, serviceError(nil, "service returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, serviceError(nil, "service returned status %d", resp.StatusCode)
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, serviceError(err, "failed to parse response")
	}
	return parseSuggestion(completion)
}

func (c *Client) buildRequest(req Request) ChatCompletionRequest {
	parts := []any{
		TextContentPart{
			Type: LiteralTypeText,
			Text: "Drawing Style Description: " + strings.TrimSpace(req.DrawingStyleDescription),
		},
	}
	if req.ExampleArtworkDataURI != "" {
		parts = append(parts,
			TextContentPart{Type: LiteralTypeText, Text: "Example Artwork:"},
			ImageContentPart{Type: LiteralTypeImageURL, ImageURL: ImageURL{URL: req.ExampleArtworkDataURI, Detail: "low"}},
		)
	}

	tokens := maxTokens
	return ChatCompletionRequest{
		Model: c.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: parts},
		},
		MaxTokens:      &tokens,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}
}

func parseSuggestion(completion ChatCompletionResponse) (*Suggestion, error) {
	if len(completion.Choices) == 0 {
		return nil, serviceError(nil, "response contained no choices")
	}
	content, ok := completion.Choices[0].Message.Content.(string)
	if !ok || strings.TrimSpace(content) == "" {
		return nil, serviceError(nil, "response contained no content")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(stripFences(content)), &s); err != nil {
		return nil, serviceError(err, "malformed suggestion")
	}
	if err := s.validate(); err != nil {
		return nil, serviceError(err, "malformed suggestion")
	}
	return &s, nil
}

// stripFences removes a surrounding ``` or ```json fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var _ Suggester = (*Client)(nil)

// String implements fmt.Stringer for logging.
func (c *Client) String() string {
	return fmt.Sprintf("%s (%s)", c.BaseURL, c.Model)
}

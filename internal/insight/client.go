package insight

import (
	"bytes"         // Request body buffer
	"context"       // Request cancellation
	"encoding/json" // JSON encoding/decoding
	"errors"        // Sentinel error
	"fmt"           // Error wrapping
	"io"            // Response body reading
	"net/http"      // HTTP client
	"time"          // Client timeout
)

// Defaults for the external completion API
const (
	DefaultAPIURL = "https://api.groq.com/chat/completions"
	DefaultModel  = "mixtral-8x7b-32768"

	maxTokens      = 150              // Bound on generated output length
	requestTimeout = 15 * time.Second // Upper bound on the external call
)

// ErrUnavailable indicates the external completion service failed; callers
// return a static fallback message instead of the upstream error
var ErrUnavailable = errors.New("insight service unavailable")

// Client calls the external chat-completion API
type Client struct {
	apiURL     string       // Completion endpoint URL
	apiKey     string       // Bearer API key
	model      string       // Model identifier
	httpClient *http.Client // HTTP client with timeout
}

// NewClient creates a completion API client. Empty apiURL or model fall
// back to the Groq defaults.
func NewClient(apiURL, apiKey, model string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Chat-completion request/response wire shapes
type chatMessage struct {
	Role    string `json:"role"`    // Message role
	Content string `json:"content"` // Message text
}

type completionRequest struct {
	Model     string        `json:"model"`      // Model identifier
	Messages  []chatMessage `json:"messages"`   // Conversation, single user turn
	MaxTokens int           `json:"max_tokens"` // Output length bound
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"` // Generated message
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"` // Upstream error detail
	} `json:"error"`
}

// Generate sends the prompt to the completion API and returns the
// generated text verbatim. Any upstream failure wraps ErrUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response (status %d): %v", ErrUnavailable, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		detail := "unknown error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			detail = parsed.Error.Message
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, detail)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrUnavailable)
	}
	return parsed.Choices[0].Message.Content, nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openAIURL = "https://api.openai.com/v1/chat/completions"

// Provider is the interface for generative-text providers.
type Provider interface {
	// Complete sends a system instruction and user prompt and returns the
	// first completion's text. An empty string with a nil error means the
	// provider answered successfully but produced no content.
	Complete(ctx context.Context, system, user string) (string, error)
	IsConfigured() bool
}

// ProviderError is a non-success HTTP response from the provider.
// Body carries the raw upstream error text for diagnostics.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Body)
}

// OpenAIClient calls the OpenAI chat-completions API, asking for a JSON
// object response.
type OpenAIClient struct {
	Model       string
	APIKey      string
	Temperature float64
	BaseURL     string
	client      *http.Client
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(model, apiKey string, temperature float64) *OpenAIClient {
	return &OpenAIClient{
		Model:       model,
		APIKey:      apiKey,
		Temperature: temperature,
		BaseURL:     openAIURL,
		client:      &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (o *OpenAIClient) IsConfigured() bool {
	return o.APIKey != ""
}

// Complete sends the messages to OpenAI and returns the first choice's content.
func (o *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	if o.APIKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	body := map[string]any{
		"model":           o.Model,
		"response_format": map[string]string{"type": "json_object"},
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": o.Temperature,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}

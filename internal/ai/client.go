package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to an OpenAI-compatible chat completions endpoint, such as
// LM Studio or any hosted provider exposing /v1/chat/completions.
type Client struct {
	apiURL     string
	model      string
	apiKey     string
	httpClient *http.Client
}

// GenerationError reports a failed completion call. Callers treat it as a
// temporary outage rather than a bad request.
type GenerationError struct {
	Status int
	Reason string
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai: completion failed with status %d: %s", e.Status, e.Reason)
	}
	return "ai: completion failed: " + e.Reason
}

const defaultModel = "mistralai/mistral-7b-instruct-v0.3"

// NewClient constructs a completion client. The endpoint URL is mandatory;
// the model falls back to a local default and the key is optional.
func NewClient(apiURL, model, apiKey string) (*Client, error) {
	if apiURL == "" {
		return nil, errors.New("ai: api url must be set to call the model endpoint")
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiURL:     apiURL,
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

// Generate sends a single-turn prompt and returns the raw completion text.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	payload := completionRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stream:      false,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &GenerationError{Status: resp.StatusCode, Reason: string(body)}
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &GenerationError{Reason: "malformed completion response: " + err.Error()}
	}
	if len(out.Choices) == 0 {
		return "", &GenerationError{Reason: "completion response carried no choices"}
	}
	if out.Choices[0].Message != nil {
		return out.Choices[0].Message.Content, nil
	}
	return out.Choices[0].Text, nil
}

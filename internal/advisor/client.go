// Package advisor generates spending insight and analysis reports from a
// chat-completion model, and publishes the results to the projection.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "fintrack/internal/errors"
)

// Completer is the minimal chat-completion contract the advisory service
// depends on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatClient calls an OpenAI-compatible chat completions endpoint.
type ChatClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
	model      string
}

// NewChatClient creates a new chat-completion client.
func NewChatClient(httpClient *http.Client, baseURL, apiKey, model string) *ChatClient {
	return &ChatClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the model's
// reply. Failures map onto the advisory error taxonomy: transport failures
// are network errors, undecodable or empty replies are format errors, and
// any non-2xx status is an unknown error.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnknown, err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnknown, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnknown,
			fmt.Errorf("chat completion: unexpected status %d", resp.StatusCode))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorFormat, err)
	}
	if len(chatResp.Choices) == 0 {
		return "", apperrors.Wrap(apperrors.ErrAdvisorFormat,
			fmt.Errorf("chat completion: response has no choices"))
	}

	return chatResp.Choices[0].Message.Content, nil
}

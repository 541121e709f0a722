// ABOUTME: Ollama chat backend adapter over the shared HTTP client
// ABOUTME: Availability probe via /api/tags, chat completion via /api/chat

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	coreerrors "newsdigest/core/errors"
	"newsdigest/core/interfaces"
)

const (
	// DefaultBaseURL is the local Ollama endpoint.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "llama3.1:8b"
)

// Client talks to a local Ollama server. It implements
// interfaces.ChatBackend for the scoring stage.
type Client struct {
	baseURL string
	model   string
	http    interfaces.HTTPClient
}

var _ interfaces.ChatBackend = (*Client)(nil)

// NewClient creates an Ollama client. Empty baseURL or model fall back
// to the local defaults.
func NewClient(baseURL, model string, httpClient interfaces.HTTPClient) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    httpClient,
	}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

// CheckAvailable verifies the server responds on /api/tags and that the
// configured model is installed. Any installed tag of the configured base
// model counts.
func (c *Client) CheckAvailable(ctx context.Context) error {
	resp, err := c.http.Get(ctx, c.baseURL+"/api/tags")
	if err != nil {
		return &coreerrors.BackendUnavailableError{
			Backend: "ollama",
			Message: fmt.Sprintf("not reachable at %s: %v (is `ollama serve` running?)", c.baseURL, err),
		}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return &coreerrors.BackendUnavailableError{
			Backend: "ollama",
			Message: fmt.Sprintf("returned status %d", resp.StatusCode()),
		}
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body()).Decode(&tags); err != nil {
		return &coreerrors.BackendUnavailableError{
			Backend: "ollama",
			Message: fmt.Sprintf("malformed /api/tags response: %v", err),
		}
	}

	for _, m := range tags.Models {
		if modelMatches(m.Name, c.model) {
			return nil
		}
	}

	return &coreerrors.BackendUnavailableError{
		Backend: "ollama",
		Message: fmt.Sprintf("model %q not installed (run `ollama pull %s`)", c.model, c.model),
	}
}

// modelMatches reports whether an installed tag satisfies the configured
// model. An exact tag matches, and so does any tag of the same base model,
// so "llama3.1:8b" is satisfied by an installed "llama3.1:latest".
func modelMatches(installed, configured string) bool {
	if installed == configured {
		return true
	}

	baseName := func(name string) string {
		return strings.SplitN(name, ":", 2)[0]
	}
	return baseName(installed) == baseName(configured)
}

// Chat sends a system and user message and returns the reply content.
// Temperature is kept low so scoring stays close to deterministic.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream:  false,
		Options: chatOptions{Temperature: 0.3},
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	resp, err := c.http.Post(ctx, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body(), 512))
		return "", fmt.Errorf("chat request returned status %d: %s", resp.StatusCode(), strings.TrimSpace(string(body)))
	}

	var reply struct {
		Message chatMessage `json:"message"`
	}
	if err := json.NewDecoder(resp.Body()).Decode(&reply); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}

	return reply.Message.Content, nil
}

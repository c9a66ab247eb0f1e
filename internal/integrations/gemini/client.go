// Package gemini adapts the Google GenAI SDK to the chat completion shape
// used by the cloud backend.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"portfolio-api/internal/domain"
)

const defaultTimeout = 20 * time.Second

var (
	// ErrCredential marks calls made without an API key.
	ErrCredential = errors.New("gemini: credential unavailable")
	// ErrMalformedResponse marks responses without any text candidate.
	ErrMalformedResponse = errors.New("gemini: malformed response")
)

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type connectFunc func(ctx context.Context, apiKey string, httpClient *http.Client) (contentGenerator, error)

// Client wraps the GenAI models service. A Client built without a key has no
// models and fails every call with ErrCredential.
type Client struct {
	models contentGenerator
}

// NewClient builds the GenAI client for an already resolved API key, with
// requests bounded by timeout. An empty key is accepted and reported per call.
func NewClient(ctx context.Context, apiKey string, timeout time.Duration) (*Client, error) {
	return newClient(ctx, apiKey, timeout, connectGeminiAPI)
}

func newClient(ctx context.Context, apiKey string, timeout time.Duration, connect connectFunc) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &Client{}, nil
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	models, err := connect(ctx, apiKey, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("gemini: create genai client: %w", err)
	}
	return &Client{models: models}, nil
}

func connectGeminiAPI(ctx context.Context, apiKey string, httpClient *http.Client) (contentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// Complete sends the conversation to Gemini and returns the concatenated
// text of the response. System messages become the system instruction.
func (c *Client) Complete(ctx context.Context, model string, messages []domain.ChatMessage, temperature float64, jsonOutput bool) (string, error) {
	if model == "" {
		return "", errors.New("gemini: model must not be empty")
	}
	if c.models == nil {
		return "", fmt.Errorf("%w: empty key", ErrCredential)
	}

	system, contents := toContents(messages)
	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(temperature)),
		SystemInstruction: system,
	}
	if jsonOutput {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := c.models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return responseText(resp)
}

func toContents(messages []domain.ChatMessage) (*genai.Content, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, m.Content)
		case domain.RoleAssistant:
			contents = append(contents, &genai.Content{Role: string(genai.RoleModel), Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: string(genai.RoleUser), Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	if len(system) == 0 {
		return nil, contents
	}
	return &genai.Content{Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}}}, contents
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrMalformedResponse)
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
		if builder.Len() > 0 {
			break
		}
	}
	if builder.Len() == 0 {
		return "", fmt.Errorf("%w: no text candidates", ErrMalformedResponse)
	}
	return builder.String(), nil
}

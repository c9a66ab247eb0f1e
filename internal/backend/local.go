package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"portfolio-api/internal/domain"
)

// ollamaChatter is the subset of *api.Client used by Local.
type ollamaChatter interface {
	Chat(ctx context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error
}

// Local talks to a self-hosted Ollama server.
type Local struct {
	model   string
	timeout time.Duration
	client  ollamaChatter
}

// NewLocal returns a Local backend for the Ollama server at baseURL.
func NewLocal(baseURL, model string, timeout time.Duration) (*Local, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend: invalid ollama base url %q", baseURL)
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("backend: ollama model must not be empty")
	}
	return &Local{
		model:   model,
		timeout: timeout,
		client:  api.NewClient(u, &http.Client{Timeout: timeout}),
	}, nil
}

func (l *Local) Name() string { return "ollama" }

func (l *Local) Model() string { return l.model }

func (l *Local) Generate(ctx context.Context, messages []domain.ChatMessage, opts Options) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	stream := false
	req := &api.ChatRequest{
		Model:    l.model,
		Messages: make([]api.Message, 0, len(messages)),
		Stream:   &stream,
		Options:  map[string]any{"temperature": opts.Temperature},
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, api.Message{Role: m.Role, Content: m.Content})
	}
	if opts.Structured {
		req.Format = json.RawMessage(`"json"`)
	}

	var content strings.Builder
	err := l.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", newError(KindTransport, l.Name(), err)
	}

	text := strings.TrimSpace(content.String())
	if opts.Structured {
		if !json.Valid([]byte(text)) {
			return "", ErrNoStructuredResult
		}
		return text, nil
	}
	if text == "" {
		return "", newError(KindResponseShape, l.Name(), errors.New("empty message content"))
	}
	return text, nil
}

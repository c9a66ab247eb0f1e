package backend

import (
	"context"
	"errors"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/integrations/gemini"
	"portfolio-api/internal/integrations/openai"
)

// completer is satisfied by the vendor clients under internal/integrations.
type completer interface {
	Complete(ctx context.Context, model string, messages []domain.ChatMessage, temperature float64, jsonOutput bool) (string, error)
}

// Cloud calls a hosted chat completion API once per request.
type Cloud struct {
	name     string
	model    string
	timeout  time.Duration
	client   completer
	classify func(error) ErrorKind
	// credErr is set when no credential resolved at startup.
	credErr error
}

// NewOpenAI returns a Cloud backend for an OpenAI-compatible endpoint.
func NewOpenAI(client *openai.Client, model string, timeout time.Duration) *Cloud {
	return &Cloud{
		name:    "openai",
		model:   model,
		timeout: timeout,
		client:  client,
		classify: func(err error) ErrorKind {
			switch {
			case errors.Is(err, openai.ErrCredential):
				return KindConfiguration
			case errors.Is(err, openai.ErrMalformedResponse):
				return KindResponseShape
			}
			return KindTransport
		},
	}
}

// NewGemini returns a Cloud backend for the Gemini API.
func NewGemini(client *gemini.Client, model string, timeout time.Duration) *Cloud {
	return &Cloud{
		name:    "gemini",
		model:   model,
		timeout: timeout,
		client:  client,
		classify: func(err error) ErrorKind {
			switch {
			case errors.Is(err, gemini.ErrCredential):
				return KindConfiguration
			case errors.Is(err, gemini.ErrMalformedResponse):
				return KindResponseShape
			}
			return KindTransport
		},
	}
}

func (c *Cloud) Name() string { return c.name }

func (c *Cloud) Model() string { return c.model }

func (c *Cloud) Generate(ctx context.Context, messages []domain.ChatMessage, opts Options) (string, error) {
	if c.credErr != nil {
		return "", newError(KindConfiguration, c.name, c.credErr)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.client.Complete(ctx, c.model, messages, opts.Temperature, opts.Structured)
	if err != nil {
		return "", newError(c.classify(err), c.name, err)
	}
	return text, nil
}

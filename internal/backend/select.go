package backend

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/config"
	"portfolio-api/internal/integrations/gemini"
	"portfolio-api/internal/integrations/openai"
	"portfolio-api/internal/secrets"
)

// New builds the provider selected by cfg.Backend. Cloud credentials are
// resolved here, once; params backs credentials stored in Parameter Store and
// may be nil. A credential that is simply not configured does not fail
// startup: the provider reports a configuration error on every call instead.
func New(ctx context.Context, cfg config.Config, params secrets.ParameterGetter) (Provider, error) {
	switch cfg.Backend {
	case config.BackendHeuristic:
		return NewHeuristic(), nil

	case config.BackendOpenAI:
		key, credErr, err := resolveKey(ctx, secrets.Source{
			Name:      "openai api key",
			Value:     cfg.OpenAI.APIKey,
			File:      cfg.OpenAI.APIKeyFile,
			Parameter: cfg.OpenAI.APIKeyParam,
		}, params)
		if err != nil {
			return nil, err
		}
		client := openai.NewClient(key,
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithTimeout(cfg.OpenAI.Timeout),
		)
		b := NewOpenAI(client, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
		b.credErr = credErr
		return b, nil

	case config.BackendGemini:
		key, credErr, err := resolveKey(ctx, secrets.Source{
			Name:      "gemini api key",
			Value:     cfg.Gemini.APIKey,
			File:      cfg.Gemini.APIKeyFile,
			Parameter: cfg.Gemini.APIKeyParam,
		}, params)
		if err != nil {
			return nil, err
		}
		client, err := gemini.NewClient(ctx, key, cfg.Gemini.Timeout)
		if err != nil {
			return nil, err
		}
		b := NewGemini(client, cfg.Gemini.Model, cfg.Gemini.Timeout)
		b.credErr = credErr
		return b, nil

	case config.BackendOllama:
		return NewLocal(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Ollama.Timeout)
	}
	return nil, fmt.Errorf("backend: unknown backend %q", cfg.Backend)
}

// resolveKey splits credential failures into "not configured", kept for call
// time, and everything else, which fails startup.
func resolveKey(ctx context.Context, src secrets.Source, params secrets.ParameterGetter) (key string, credErr, err error) {
	key, err = secrets.Load(ctx, src, params)
	switch {
	case err == nil:
		return key, nil, nil
	case errors.Is(err, secrets.ErrNotConfigured):
		return "", err, nil
	}
	return "", nil, fmt.Errorf("backend: %w", err)
}

// ModelOf returns the model a provider targets, empty when not applicable.
func ModelOf(p Provider) string {
	if m, ok := p.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}

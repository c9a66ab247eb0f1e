// Package secrets resolves credentials from inline values, files or
// AWS Systems Manager Parameter Store.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when no source yields a usable secret.
var ErrNotConfigured = errors.New("secret is not configured")

// ParameterGetter reads a named parameter, e.g. *paramstore.Client.
type ParameterGetter interface {
	Token(ctx context.Context, name string) (string, error)
}

// Source describes where a secret may come from. File wins over Value;
// Parameter is consulted only when both are empty.
type Source struct {
	// Name is used in error messages.
	Name      string
	Value     string
	File      string
	Parameter string
}

// Load returns the trimmed secret described by src. params may be nil when
// src.Parameter is empty.
func Load(ctx context.Context, src Source, params ParameterGetter) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty: %w", name, file, ErrNotConfigured)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	if param := strings.TrimSpace(src.Parameter); param != "" {
		if params == nil {
			return "", fmt.Errorf("%s parameter %q set without a parameter store: %w", name, param, ErrNotConfigured)
		}
		secret, err := params.Token(ctx, param)
		if err != nil {
			return "", fmt.Errorf("reading %s from parameter %q: %w", name, param, err)
		}
		return secret, nil
	}

	return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
}

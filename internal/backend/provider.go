// Package backend contains the interchangeable text generators behind the
// chat and resume analysis endpoints.
package backend

import (
	"context"

	"portfolio-api/internal/domain"
)

// Task identifies what a generation request is for.
type Task string

const (
	TaskChat   Task = "chat"
	TaskResume Task = "resume"
)

// Options carries per-request generation settings.
type Options struct {
	Task Task
	// Structured asks the backend for a JSON object response.
	Structured  bool
	Temperature float64
	// Match holds the raw resume and posting for backends that score
	// without a model. Set only for TaskResume.
	Match *domain.ResumeMatchRequest
}

// Provider produces text for a prepared message list. Implementations are
// safe for concurrent use and return *Error or ErrNoStructuredResult on failure.
type Provider interface {
	Name() string
	Generate(ctx context.Context, messages []domain.ChatMessage, opts Options) (string, error)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio-api/internal/backend"
	"portfolio-api/internal/domain"
	"portfolio-api/internal/logger"
)

// Settings are the per-task generation parameters.
type Settings struct {
	ChatTemperature   float64
	ResumeTemperature float64
}

// Service runs chat and resume analysis against a single backend and
// degrades to fixed answers when the backend cannot deliver.
type Service struct {
	provider backend.Provider
	log      *zap.Logger
	settings Settings
}

func NewService(provider backend.Provider, log *zap.Logger, settings Settings) (*Service, error) {
	if provider == nil {
		return nil, errors.New("usecase: provider must not be nil")
	}
	log = logger.OrNop(log).With(logger.BackendFields(provider.Name(), backend.ModelOf(provider))...)
	return &Service{provider: provider, log: log, settings: settings}, nil
}

// Chat answers the conversation. Only validation failures are returned as
// errors; backend failures yield a degraded reply.
func (s *Service) Chat(ctx context.Context, turns []domain.ChatMessage) (domain.ChatResult, error) {
	if !hasConversationalTurn(turns) {
		return domain.ChatResult{}, newError(ErrorInvalidInput, ReasonEmptyMessages, nil)
	}

	start := time.Now()
	text, err := s.provider.Generate(ctx, buildChatMessages(turns), backend.Options{
		Task:        backend.TaskChat,
		Temperature: s.settings.ChatTemperature,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = &backend.Error{Kind: backend.KindResponseShape, Backend: s.provider.Name(), Err: errors.New("empty reply")}
	}
	if err != nil {
		s.degraded(backend.TaskChat, err, start)
		return domain.ChatResult{Reply: degradedChatReply}, nil
	}

	s.log.Debug("chat reply generated",
		zap.String(logger.FieldTask, string(backend.TaskChat)),
		zap.Duration("duration", time.Since(start)),
		zap.Int("reply_length", len(text)),
	)
	return domain.ChatResult{Reply: strings.TrimSpace(text)}, nil
}

// AnalyzeResume scores the resume against the posting. Only validation
// failures are returned as errors; backend failures or unusable output
// yield a degraded result.
func (s *Service) AnalyzeResume(ctx context.Context, req domain.ResumeMatchRequest) (domain.ResumeMatchResult, error) {
	if strings.TrimSpace(req.Resume) == "" || strings.TrimSpace(req.Job) == "" {
		return domain.ResumeMatchResult{}, newError(ErrorInvalidInput, ReasonMissingResumeOrJob, nil)
	}

	start := time.Now()
	text, err := s.provider.Generate(ctx, buildResumeMessages(req), backend.Options{
		Task:        backend.TaskResume,
		Structured:  true,
		Temperature: s.settings.ResumeTemperature,
		Match:       &req,
	})
	if err != nil {
		s.degraded(backend.TaskResume, err, start)
		return degradedMatchResult(), nil
	}

	result, err := parseMatchResult(text)
	if err != nil {
		s.log.Debug("unparseable resume analysis", zap.String("output", logger.TruncateForLog(text, 200)))
		s.degraded(backend.TaskResume, err, start)
		return degradedMatchResult(), nil
	}

	s.log.Debug("resume analysis generated",
		zap.String(logger.FieldTask, string(backend.TaskResume)),
		zap.Duration("duration", time.Since(start)),
		zap.Int("match_score", result.MatchScore),
	)
	return result, nil
}

func (s *Service) degraded(task backend.Task, err error, start time.Time) {
	kind := backend.KindOf(err)
	if isUnparseable(err) {
		kind = backend.KindUnparseable
	}
	s.log.Warn("backend unavailable, returning degraded response",
		zap.String(logger.FieldTask, string(task)),
		zap.String(logger.FieldErrorKind, string(kind)),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
}

func hasConversationalTurn(turns []domain.ChatMessage) bool {
	for _, t := range turns {
		if t.IsConversational() {
			return true
		}
	}
	return false
}

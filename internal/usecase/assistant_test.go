package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"portfolio-api/internal/backend"
	"portfolio-api/internal/domain"
	"portfolio-api/internal/logger"
)

type stubProvider struct {
	out      string
	err      error
	calls    int
	messages []domain.ChatMessage
	opts     backend.Options
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Generate(_ context.Context, messages []domain.ChatMessage, opts backend.Options) (string, error) {
	s.calls++
	s.messages = messages
	s.opts = opts
	return s.out, s.err
}

var testSettings = Settings{ChatTemperature: 0.7, ResumeTemperature: 0.2}

func newTestService(t *testing.T, p backend.Provider) (*Service, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	svc, err := NewService(p, zap.New(core), testSettings)
	require.NoError(t, err)
	return svc, logs
}

func expectInvalidInput(t *testing.T, err error, reason string) {
	t.Helper()
	var ue *Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, ErrorInvalidInput, ue.Code)
	require.Equal(t, reason, ue.Reason)
}

func TestNewService_NilProvider(t *testing.T) {
	_, err := NewService(nil, nil, testSettings)
	require.Error(t, err)
}

func TestChat_HappyPath(t *testing.T) {
	p := &stubProvider{out: "  I mostly use Go.  "}
	svc, _ := newTestService(t, p)

	got, err := svc.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "frontend greeting"},
		{Role: domain.RoleUser, Content: "What's your stack?"},
	})
	require.NoError(t, err)
	require.Equal(t, "I mostly use Go.", got.Reply)

	require.Equal(t, 1, p.calls)
	require.Equal(t, backend.TaskChat, p.opts.Task)
	require.False(t, p.opts.Structured)
	require.InDelta(t, 0.7, p.opts.Temperature, 1e-9)

	systems := 0
	for _, m := range p.messages {
		if m.Role == domain.RoleSystem {
			systems++
			require.NotEqual(t, "frontend greeting", m.Content)
		}
	}
	require.Equal(t, 1, systems)
}

func TestChat_RejectsWithoutBackendCall(t *testing.T) {
	for name, turns := range map[string][]domain.ChatMessage{
		"nil":         nil,
		"empty":       {},
		"system only": {{Role: domain.RoleSystem, Content: "hi"}},
	} {
		t.Run(name, func(t *testing.T) {
			p := &stubProvider{out: "unused"}
			svc, _ := newTestService(t, p)

			_, err := svc.Chat(context.Background(), turns)
			expectInvalidInput(t, err, ReasonEmptyMessages)
			require.Zero(t, p.calls)
		})
	}
}

func TestChat_DegradesOnBackendFailure(t *testing.T) {
	cases := []struct {
		name string
		out  string
		err  error
		kind backend.ErrorKind
	}{
		{name: "transport", err: &backend.Error{Kind: backend.KindTransport, Backend: "stub", Err: errors.New("connection refused")}, kind: backend.KindTransport},
		{name: "configuration", err: &backend.Error{Kind: backend.KindConfiguration, Backend: "stub"}, kind: backend.KindConfiguration},
		{name: "blank reply", out: "   ", kind: backend.KindResponseShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &stubProvider{out: tc.out, err: tc.err}
			svc, logs := newTestService(t, p)

			got, err := svc.Chat(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}})
			require.NoError(t, err)
			require.Equal(t, degradedChatReply, got.Reply)
			require.Equal(t, 1, p.calls)

			warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
			require.Len(t, warns, 1)
			fields := warns[0].ContextMap()
			require.Equal(t, "chat", fields[logger.FieldTask])
			require.Equal(t, "stub", fields[logger.FieldBackend])
			require.Equal(t, string(tc.kind), fields[logger.FieldErrorKind])
		})
	}
}

func TestAnalyzeResume_HappyPath(t *testing.T) {
	p := &stubProvider{out: `{"match_score":"85","summary":"ok"}`}
	svc, _ := newTestService(t, p)

	req := domain.ResumeMatchRequest{Resume: "Go developer", Job: "Go role"}
	got, err := svc.AnalyzeResume(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, domain.ResumeMatchResult{
		MatchScore:   85,
		Summary:      "ok",
		Strengths:    defaultStrengths,
		Improvements: defaultImprovements,
	}, got)

	require.Equal(t, backend.TaskResume, p.opts.Task)
	require.True(t, p.opts.Structured)
	require.InDelta(t, 0.2, p.opts.Temperature, 1e-9)
	require.Equal(t, &req, p.opts.Match)
	require.Len(t, p.messages, 2)
}

func TestAnalyzeResume_RejectsMissingFields(t *testing.T) {
	for name, req := range map[string]domain.ResumeMatchRequest{
		"empty resume": {Resume: "", Job: "job"},
		"blank job":    {Resume: "resume", Job: "  \n"},
		"both missing": {},
	} {
		t.Run(name, func(t *testing.T) {
			p := &stubProvider{}
			svc, _ := newTestService(t, p)

			_, err := svc.AnalyzeResume(context.Background(), req)
			expectInvalidInput(t, err, ReasonMissingResumeOrJob)
			require.Zero(t, p.calls)
		})
	}
}

func TestAnalyzeResume_Degrades(t *testing.T) {
	cases := []struct {
		name string
		out  string
		err  error
		kind backend.ErrorKind
	}{
		{name: "non json", out: "The candidate looks great!", kind: backend.KindUnparseable},
		{name: "no structured result", err: backend.ErrNoStructuredResult, kind: backend.KindUnparseable},
		{name: "transport", err: &backend.Error{Kind: backend.KindTransport, Backend: "stub"}, kind: backend.KindTransport},
		{name: "response shape", err: &backend.Error{Kind: backend.KindResponseShape, Backend: "stub"}, kind: backend.KindResponseShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &stubProvider{out: tc.out, err: tc.err}
			svc, logs := newTestService(t, p)

			got, err := svc.AnalyzeResume(context.Background(), domain.ResumeMatchRequest{Resume: "r", Job: "j"})
			require.NoError(t, err)
			require.Equal(t, degradedMatchResult(), got)
			require.Equal(t, 1, p.calls)

			warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
			require.Len(t, warns, 1)
			require.Equal(t, string(tc.kind), warns[0].ContextMap()[logger.FieldErrorKind])
			require.Equal(t, "resume", warns[0].ContextMap()[logger.FieldTask])
		})
	}
}

func TestService_WithHeuristicBackend(t *testing.T) {
	svc, _ := newTestService(t, backend.NewHeuristic())

	res, err := svc.AnalyzeResume(context.Background(), domain.ResumeMatchRequest{
		Resume: "I know react and python",
		Job:    "need react and python",
	})
	require.NoError(t, err)
	require.Equal(t, 56, res.MatchScore)
	require.Equal(t, "Mentions: python, react", res.Strengths)

	chat, err := svc.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Tell me about a project and your stack"},
	})
	require.NoError(t, err)
	require.Contains(t, chat.Reply, "React, JavaScript, Python, Flask")
}

func TestError_PublicMessage(t *testing.T) {
	require.Equal(t, "resume and job fields are required", newError(ErrorInvalidInput, ReasonMissingResumeOrJob, nil).PublicMessage())
	require.Equal(t, "messages field must be a non-empty list", newError(ErrorInvalidInput, ReasonEmptyMessages, nil).PublicMessage())
	require.Equal(t, "invalid request", newError(ErrorInvalidInput, "other", nil).PublicMessage())
	require.Equal(t, "internal error", newError(ErrorInternal, "boom", nil).PublicMessage())
}

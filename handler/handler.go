// Package handler exposes the assistant over API Gateway (Lambda) and a
// plain HTTP server. Both transports share the request handling below.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/logger"
)

const (
	pathHealth  = "/api/health"
	pathAnalyze = "/api/analyze-resume"
	pathChat    = "/api/chat"

	headerCorrelationID = "X-Correlation-Id"
	maxBodyBytes        = 1 << 20
)

// Assistant is the use case layer consumed by the handlers.
type Assistant interface {
	Chat(ctx context.Context, turns []domain.ChatMessage) (domain.ChatResult, error)
	AnalyzeResume(ctx context.Context, req domain.ResumeMatchRequest) (domain.ResumeMatchResult, error)
}

type Handler struct {
	svc Assistant
	log *zap.Logger
}

func NewHandler(svc Assistant, log *zap.Logger) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("handler: assistant must not be nil")
	}
	return &Handler{svc: svc, log: logger.OrNop(log)}, nil
}

type analyzeRequest struct {
	Resume string `json:"resume"`
	Job    string `json:"job"`
}

type chatRequest struct {
	Messages json.RawMessage `json:"messages"`
}

func (h *Handler) health() (int, any) {
	return http.StatusOK, healthResponse{Status: "ok"}
}

func (h *Handler) analyze(ctx context.Context, body []byte) (int, any) {
	var in analyzeRequest
	if err := decodeBody(body, &in); err != nil {
		return http.StatusBadRequest, errorResponse{Error: msgInvalidBody}
	}

	res, err := h.svc.AnalyzeResume(ctx, domain.ResumeMatchRequest{Resume: in.Resume, Job: in.Job})
	if err != nil {
		return errorPayload(err)
	}
	return http.StatusOK, assembleAnalysis(res)
}

func (h *Handler) chat(ctx context.Context, body []byte) (int, any) {
	var in chatRequest
	if err := decodeBody(body, &in); err != nil {
		return http.StatusBadRequest, errorResponse{Error: msgInvalidBody}
	}

	res, err := h.svc.Chat(ctx, decodeTurns(in.Messages))
	if err != nil {
		return errorPayload(err)
	}
	return http.StatusOK, assembleChat(res)
}

// decodeBody treats an empty body as an empty object so that validation
// reports the missing fields.
func decodeBody(body []byte, v any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

// decodeTurns returns nil unless raw is a JSON array. Elements that are not
// message objects are dropped.
func decodeTurns(raw json.RawMessage) []domain.ChatMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	turns := make([]domain.ChatMessage, 0, len(items))
	for _, item := range items {
		var m domain.ChatMessage
		if err := json.Unmarshal(item, &m); err != nil {
			continue
		}
		turns = append(turns, m)
	}
	return turns
}

func marshalPayload(v any) []byte {
	buf, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return buf
}

package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-api/internal/logger"
)

var newCorrelationID = uuid.NewString

// Handle serves API Gateway proxy events.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	correlationID := correlationIDFromHeaders(req.Headers)
	log := h.log.With(zap.String(logger.FieldCorrelationID, correlationID))

	status, payload := h.route(ctx, req)

	log.Info("request handled",
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	)

	headers := map[string]string{
		"Content-Type":                 "application/json",
		headerCorrelationID:            correlationID,
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type, " + headerCorrelationID,
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	}
	if status == http.StatusNoContent {
		return events.APIGatewayProxyResponse{StatusCode: status, Headers: headers}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(marshalPayload(payload)),
	}, nil
}

func (h *Handler) route(ctx context.Context, req events.APIGatewayProxyRequest) (int, any) {
	path := strings.TrimRight(req.Path, "/")
	method := strings.ToUpper(req.HTTPMethod)

	var want string
	switch path {
	case pathHealth:
		want = http.MethodGet
	case pathAnalyze, pathChat:
		want = http.MethodPost
	default:
		return http.StatusNotFound, errorResponse{Error: msgNotFound}
	}
	if method == http.MethodOptions {
		return http.StatusNoContent, nil
	}
	if method != want {
		return http.StatusMethodNotAllowed, errorResponse{Error: msgMethodNotAllowed}
	}

	body, err := eventBody(req)
	if err != nil {
		return http.StatusBadRequest, errorResponse{Error: msgInvalidBody}
	}

	switch path {
	case pathAnalyze:
		return h.analyze(ctx, body)
	case pathChat:
		return h.chat(ctx, body)
	}
	return h.health()
}

func eventBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	return base64.StdEncoding.DecodeString(req.Body)
}

func correlationIDFromHeaders(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, headerCorrelationID) {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return newCorrelationID()
}

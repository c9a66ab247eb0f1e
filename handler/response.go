package handler

import (
	"errors"
	"net/http"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/usecase"
)

type healthResponse struct {
	Status string `json:"status"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type analyzeResponse struct {
	MatchScore   int    `json:"match_score"`
	Summary      string `json:"summary"`
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const (
	msgInvalidBody      = "invalid request body"
	msgNotFound         = "not found"
	msgMethodNotAllowed = "method not allowed"
)

func assembleChat(res domain.ChatResult) chatResponse {
	return chatResponse{Reply: res.Reply}
}

func assembleAnalysis(res domain.ResumeMatchResult) analyzeResponse {
	return analyzeResponse{
		MatchScore:   res.MatchScore,
		Summary:      res.Summary,
		Strengths:    res.Strengths,
		Improvements: res.Improvements,
	}
}

func errorPayload(err error) (int, errorResponse) {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError, errorResponse{Error: "internal error"}
	}
	switch ue.Code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest, errorResponse{Error: ue.PublicMessage()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: ue.PublicMessage()}
	}
}

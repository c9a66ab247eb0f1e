package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"portfolio-api/internal/backend"
	"portfolio-api/internal/domain"
)

const (
	defaultMatchScore   = 50
	defaultSummary      = "No summary provided."
	defaultStrengths    = "No strengths provided."
	defaultImprovements = "No improvements provided."
)

// ErrUnparseable reports backend output that holds no usable JSON object.
var ErrUnparseable = errors.New("usecase: unparseable structured output")

type matchFields struct {
	Score        any    `mapstructure:"match_score"`
	Summary      string `mapstructure:"summary"`
	Strengths    string `mapstructure:"strengths"`
	Improvements string `mapstructure:"improvements"`
}

// parseMatchResult turns raw backend text into a complete result. Missing
// fields are defaulted; only the absence of a JSON object is an error.
func parseMatchResult(raw string) (domain.ResumeMatchResult, error) {
	obj, err := extractObject(raw)
	if err != nil {
		return domain.ResumeMatchResult{}, err
	}

	var fields matchFields
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       textHook,
		WeaklyTypedInput: true,
		Result:           &fields,
	})
	if err != nil {
		return domain.ResumeMatchResult{}, fmt.Errorf("usecase: build decoder: %w", err)
	}
	if err := dec.Decode(obj); err != nil {
		return domain.ResumeMatchResult{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	return domain.ResumeMatchResult{
		MatchScore:   coerceScore(fields.Score),
		Summary:      orDefault(fields.Summary, defaultSummary),
		Strengths:    orDefault(fields.Strengths, defaultStrengths),
		Improvements: orDefault(fields.Improvements, defaultImprovements),
	}, nil
}

func extractObject(raw string) (map[string]any, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return nil, fmt.Errorf("%w: empty output", ErrUnparseable)
	}

	var whole any
	if err := json.Unmarshal([]byte(text), &whole); err == nil {
		if obj, ok := whole.(map[string]any); ok {
			return obj, nil
		}
		return nil, fmt.Errorf("%w: JSON value is not an object", ErrUnparseable)
	}

	var obj map[string]any
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrUnparseable)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: invalid JSON object", ErrUnparseable)
	}
	return obj, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// textHook flattens lists and objects into text for string fields.
func textHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || data == nil {
		return data, nil
	}
	switch v := data.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" && item != nil {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), nil
	case map[string]any:
		buf, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(buf), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return data, nil
}

func coerceScore(v any) int {
	var f float64
	switch s := v.(type) {
	case float64:
		f = s
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
		if err != nil {
			return defaultMatchScore
		}
		f = parsed
	default:
		return defaultMatchScore
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return defaultMatchScore
	}
	return int(math.Max(0, math.Min(100, math.Round(f))))
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// isUnparseable reports outcomes that mean "no structured result".
func isUnparseable(err error) bool {
	return errors.Is(err, ErrUnparseable) || errors.Is(err, backend.ErrNoStructuredResult)
}

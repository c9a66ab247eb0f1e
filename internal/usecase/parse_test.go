package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-api/internal/domain"
)

func TestParseMatchResult_FillsDefaults(t *testing.T) {
	got, err := parseMatchResult(`{"match_score":"85","summary":"ok"}`)
	require.NoError(t, err)
	require.Equal(t, domain.ResumeMatchResult{
		MatchScore:   85,
		Summary:      "ok",
		Strengths:    defaultStrengths,
		Improvements: defaultImprovements,
	}, got)
}

func TestParseMatchResult_Shapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want domain.ResumeMatchResult
	}{
		{
			name: "complete",
			raw:  `{"match_score":72,"summary":"Good fit","strengths":"Go","improvements":"Kubernetes"}`,
			want: domain.ResumeMatchResult{MatchScore: 72, Summary: "Good fit", Strengths: "Go", Improvements: "Kubernetes"},
		},
		{
			name: "code fence",
			raw:  "```json\n{\"match_score\": 64.6, \"summary\": \"Solid\"}\n```",
			want: domain.ResumeMatchResult{MatchScore: 65, Summary: "Solid", Strengths: defaultStrengths, Improvements: defaultImprovements},
		},
		{
			name: "surrounding prose",
			raw:  "Here is the analysis:\n{\"match_score\": 40, \"strengths\": [\"React\", \"Python\"]}\nHope it helps!",
			want: domain.ResumeMatchResult{MatchScore: 40, Summary: defaultSummary, Strengths: "React, Python", Improvements: defaultImprovements},
		},
		{
			name: "out of range high",
			raw:  `{"match_score": 140}`,
			want: domain.ResumeMatchResult{MatchScore: 100, Summary: defaultSummary, Strengths: defaultStrengths, Improvements: defaultImprovements},
		},
		{
			name: "out of range low",
			raw:  `{"match_score": "-3"}`,
			want: domain.ResumeMatchResult{MatchScore: 0, Summary: defaultSummary, Strengths: defaultStrengths, Improvements: defaultImprovements},
		},
		{
			name: "non numeric score",
			raw:  `{"match_score": "high", "summary": "  "}`,
			want: domain.ResumeMatchResult{MatchScore: defaultMatchScore, Summary: defaultSummary, Strengths: defaultStrengths, Improvements: defaultImprovements},
		},
		{
			name: "percent score",
			raw:  `{"match_score": "78%"}`,
			want: domain.ResumeMatchResult{MatchScore: 78, Summary: defaultSummary, Strengths: defaultStrengths, Improvements: defaultImprovements},
		},
		{
			name: "empty object",
			raw:  `{}`,
			want: domain.ResumeMatchResult{MatchScore: defaultMatchScore, Summary: defaultSummary, Strengths: defaultStrengths, Improvements: defaultImprovements},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseMatchResult(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseMatchResult_Unparseable(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"The candidate is a good fit.",
		`[{"match_score": 80}]`,
		`"just a string"`,
		`{"match_score": 80`,
		"} backwards {",
		"null",
	} {
		_, err := parseMatchResult(raw)
		require.ErrorIs(t, err, ErrUnparseable, "raw=%q", raw)
	}
}

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"portfolio-api/internal/domain"
)

const (
	heuristicBaseScore  = 50
	heuristicKeywordHit = 3
	heuristicMaxScore   = 90

	heuristicSummary = "Heuristic resume analysis without external AI. " +
		"Score is based on overlapping keywords between the resume and job posting."
	heuristicNoStrengths    = "General web dev skills."
	heuristicNoImprovements = "You already mention most of the core technologies from the posting."

	heuristicGreeting = "Hi! I'm a lightweight assistant running on Tej's portfolio backend. " +
		"Ask me about his tech stack, projects, or experience as a student developer."
)

var heuristicKeywords = []string{
	"react", "javascript", "python", "flask", "django",
	"api", "json", "git", "linux", "ai", "llm", "cloud",
}

var heuristicCoreSkills = []string{"react", "javascript", "python", "flask", "django"}

type replyGroup struct {
	keywords []string
	reply    string
}

// Order matters: the first group with a matching keyword answers.
var heuristicReplies = []replyGroup{
	{
		keywords: []string{"stack", "tech"},
		reply: "Tej mainly works with React, JavaScript, Python, Flask, Git, and basic cloud platforms. " +
			"He also has growing experience with AI/LLM-powered tools.",
	},
	{
		keywords: []string{"project"},
		reply: "This portfolio showcases an AI-powered resume analyzer and a student Q&A agent, " +
			"built with a React frontend and a Python/Flask backend.",
	},
	{
		keywords: []string{"ai", "llm"},
		reply: "This deployment uses a simple rules-based backend, but the local version of the project " +
			"is wired to experiment with LLMs via a separate environment.",
	},
}

// Heuristic answers without any network access using keyword rules.
type Heuristic struct{}

func NewHeuristic() *Heuristic { return &Heuristic{} }

func (*Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Generate(_ context.Context, messages []domain.ChatMessage, opts Options) (string, error) {
	if opts.Task != TaskResume {
		return HeuristicReply(lastUserContent(messages)), nil
	}
	if opts.Match == nil {
		return "", newError(KindConfiguration, h.Name(), errors.New("resume task without match input"))
	}
	out, err := json.Marshal(ScoreResume(*opts.Match))
	if err != nil {
		return "", newError(KindResponseShape, h.Name(), err)
	}
	return string(out), nil
}

// HeuristicReply picks the canned reply for a user message.
func HeuristicReply(text string) string {
	text = strings.ToLower(text)
	for _, group := range heuristicReplies {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.reply
			}
		}
	}
	return heuristicGreeting
}

// ScoreResume compares keyword coverage between a resume and a posting.
func ScoreResume(req domain.ResumeMatchRequest) domain.ResumeMatchResult {
	resume := strings.ToLower(req.Resume)
	job := strings.ToLower(req.Job)

	score := heuristicBaseScore
	for _, kw := range heuristicKeywords {
		if strings.Contains(resume, kw) && strings.Contains(job, kw) {
			score += heuristicKeywordHit
		}
	}
	score = min(score, heuristicMaxScore)

	var strengths, missing []string
	for _, kw := range heuristicCoreSkills {
		switch {
		case strings.Contains(resume, kw):
			strengths = append(strengths, kw)
		case strings.Contains(job, kw):
			missing = append(missing, kw)
		}
	}

	result := domain.ResumeMatchResult{
		MatchScore:   score,
		Summary:      heuristicSummary,
		Strengths:    heuristicNoStrengths,
		Improvements: heuristicNoImprovements,
	}
	if len(strengths) > 0 {
		result.Strengths = "Mentions: " + strings.Join(sortedUnique(strengths), ", ")
	}
	if len(missing) > 0 {
		result.Improvements = "Consider adding: " + strings.Join(sortedUnique(missing), ", ")
	}
	return result
}

func sortedUnique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func lastUserContent(messages []domain.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

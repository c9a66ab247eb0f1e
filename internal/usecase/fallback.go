package usecase

import "portfolio-api/internal/domain"

const degradedChatReply = "Sorry, I'm having trouble reaching my language model right now. " +
	"Please try again in a moment, or ask me about Tej's tech stack and projects."

func degradedMatchResult() domain.ResumeMatchResult {
	return domain.ResumeMatchResult{
		MatchScore:   defaultMatchScore,
		Summary:      "Automatic analysis is temporarily unavailable, so this is a neutral placeholder score.",
		Strengths:    "Unable to assess strengths right now.",
		Improvements: "Please try again later for tailored suggestions.",
	}
}

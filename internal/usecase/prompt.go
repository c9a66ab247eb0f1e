package usecase

import (
	"fmt"
	"strings"

	"portfolio-api/internal/domain"
)

func buildChatMessages(turns []domain.ChatMessage) []domain.ChatMessage {
	messages := make([]domain.ChatMessage, 0, len(turns)+1)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: chatPersonaPrompt()})

	for _, t := range turns {
		if !t.IsConversational() || strings.TrimSpace(t.Content) == "" {
			continue
		}
		messages = append(messages, domain.ChatMessage{Role: t.Role, Content: t.Content})
	}
	return messages
}

func buildResumeMessages(req domain.ResumeMatchRequest) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: resumeSchemaPrompt()},
		{Role: domain.RoleUser, Content: fmt.Sprintf("Job posting:\n%s\n\nResume:\n%s", req.Job, req.Resume)},
	}
}

func chatPersonaPrompt() string {
	return strings.Join([]string{
		"Role:",
		"You are the assistant on Tej's developer portfolio site.",
		"",
		"Behavior Rules:",
		"1) Answer questions about Tej's tech stack, projects, and experience as a student developer.",
		"2) Keep answers friendly, concise, and in plain text.",
		"3) If you do not know something about Tej, say so instead of guessing.",
		"4) Politely steer unrelated questions back to the portfolio.",
	}, "\n")
}

func resumeSchemaPrompt() string {
	return strings.Join([]string{
		"You compare a resume against a job posting for a recruiter.",
		"",
		"Output Contract:",
		"Return JSON only, with no prose and no code fences, using exactly these keys:",
		`{"match_score": <integer 0-100>, "summary": "<string>", "strengths": "<string>", "improvements": "<string>"}`,
		"match_score is how well the resume fits the posting, 0 meaning no fit and 100 a perfect fit.",
		"summary is two or three sentences on the overall fit.",
		"strengths lists the resume's most relevant qualifications for this posting.",
		"improvements lists concrete gaps or additions that would strengthen the application.",
	}, "\n")
}

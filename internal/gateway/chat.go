package gateway

import (
	"context"
	"fmt"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/llm"
)

// TurnResult is the mentor's side of one exchange.
type TurnResult struct {
	Text           string
	GroundingLinks []domain.GroundingLink
}

// ChatSession is an opaque handle for one mentor conversation. It carries
// the system instruction assembled from the mission's fields and replays
// the transcript to the backend on every turn. A session is bound to one
// mission and level; mission or level changes require a fresh session.
type ChatSession struct {
	client       llm.Client
	systemPrompt string
	transcript   []llm.ChatTurn
}

// NewChatSession creates a session for the given level and mission.
func NewChatSession(client llm.Client, level domain.GradeLevel, mission *domain.Mission) *ChatSession {
	return &ChatSession{
		client:       client,
		systemPrompt: buildMentorSystemPrompt(level, mission),
	}
}

// Send delivers one student message and returns the mentor's reply.
// Failed turns are not recorded in the session transcript, so the mentor's
// context never contains an exchange the student did not see answered.
func (s *ChatSession) Send(ctx context.Context, text string) (*TurnResult, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: s.systemPrompt,
		UserPrompt:   text,
		History:      s.transcript,
	})
	if err != nil {
		return nil, fmt.Errorf("chat turn failed: %w", err)
	}

	s.transcript = append(s.transcript,
		llm.ChatTurn{Role: "user", Text: text},
		llm.ChatTurn{Role: "model", Text: resp.Text},
	)

	result := &TurnResult{Text: resp.Text}
	for _, link := range resp.GroundingLinks {
		result.GroundingLinks = append(result.GroundingLinks, domain.GroundingLink{
			Title: link.Title,
			URI:   link.URI,
			Type:  link.Type,
		})
	}
	return result, nil
}

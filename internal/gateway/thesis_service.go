package gateway

import (
	"context"
	"fmt"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/llm"
)

// ThesisService drafts the six-field solution paper from the conversation
// and the decision log.
type ThesisService interface {
	// Draft returns a partial document: fields the model omitted stay
	// empty and the caller merges over the existing thesis.
	Draft(ctx context.Context, mission *domain.Mission, history []domain.Message,
		decisions []domain.MicroDecision, level domain.GradeLevel) (*domain.ThesisDocument, error)
}

type thesisService struct {
	client llm.Client
}

// NewThesisService creates a ThesisService backed by the generative client.
func NewThesisService(client llm.Client) ThesisService {
	return &thesisService{client: client}
}

func (s *thesisService) Draft(ctx context.Context, mission *domain.Mission, history []domain.Message,
	decisions []domain.MicroDecision, level domain.GradeLevel) (*domain.ThesisDocument, error) {

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskThesis,
		UserPrompt: buildThesisPrompt(mission, history, decisions, level),
		JSONOutput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("thesis draft failed: %w", err)
	}

	draft, err := llm.ExtractJSON[domain.ThesisDocument](resp.Text, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to extract thesis draft: %w", err)
	}
	return &draft, nil
}

package domain

import "github.com/google/uuid"

// CustomDecisionQuestion is the sentinel question recorded for free-form
// decisions that do not answer a specific challenge prompt.
const CustomDecisionQuestion = "Custom Decision"

// MicroDecision is a discrete choice-with-reasoning the student commits
// to during orienteering. Decisions are never mutated or retracted.
type MicroDecision struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Decision  string `json:"decision"`
	Reasoning string `json:"reasoning"`
}

// NewMicroDecision creates a decision entry. An empty question is recorded
// under the custom-decision sentinel.
func NewMicroDecision(question, decision, reasoning string) MicroDecision {
	if question == "" {
		question = CustomDecisionQuestion
	}
	return MicroDecision{
		ID:        uuid.NewString(),
		Question:  question,
		Decision:  decision,
		Reasoning: reasoning,
	}
}

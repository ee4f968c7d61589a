package domain

import "fmt"

// CoreConcept is one term/definition pair the student should master
// before tackling the mission.
type CoreConcept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Mission is a generated lesson scenario (a "conundrum"). Missions are
// immutable after creation; exactly one is active at a time.
type Mission struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"` // the main orienteering question
	LearningObjective string   `json:"learningObjective"`
	Difficulty        string   `json:"difficulty"`
	Tags              []string `json:"tags"`

	WarmUpQuestion     string        `json:"warmUpQuestion"`
	FollowUpQuestions  []string      `json:"followUpQuestions"`
	DecisionChallenges []string      `json:"decisionChallenges"`
	PossibleSolutions  []string      `json:"possibleSolutions"`
	CoreConcepts       []CoreConcept `json:"coreConcepts"`
}

// Validate checks the structural invariants of a mission: non-empty title
// and main question, exactly 3 follow-up questions and 3 decision challenges.
func (m *Mission) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("mission title is required")
	}
	if m.Description == "" {
		return fmt.Errorf("mission description is required")
	}
	if m.WarmUpQuestion == "" {
		return fmt.Errorf("warm-up question is required")
	}
	if len(m.FollowUpQuestions) != 3 {
		return fmt.Errorf("expected 3 follow-up questions, got %d", len(m.FollowUpQuestions))
	}
	if len(m.DecisionChallenges) != 3 {
		return fmt.Errorf("expected 3 decision challenges, got %d", len(m.DecisionChallenges))
	}
	return nil
}

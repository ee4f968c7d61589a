package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/llm"
)

// MissionService generates lesson scenarios scoped to a grade level.
type MissionService interface {
	// Generate produces a new mission for the level. It never fails: any
	// backend or parse error yields the built-in fallback mission so the
	// mission grid is always usable.
	Generate(ctx context.Context, level domain.GradeLevel) *domain.Mission
}

type missionService struct {
	client llm.Client
}

// NewMissionService creates a MissionService backed by the generative client.
func NewMissionService(client llm.Client) MissionService {
	return &missionService{client: client}
}

// missionResponse is the JSON structure expected from the backend.
// The identifier is assigned locally, never by the model.
type missionResponse struct {
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	LearningObjective  string               `json:"learningObjective"`
	Difficulty         string               `json:"difficulty"`
	Tags               []string             `json:"tags"`
	WarmUpQuestion     string               `json:"warmUpQuestion"`
	FollowUpQuestions  []string             `json:"followUpQuestions"`
	DecisionChallenges []string             `json:"decisionChallenges"`
	PossibleSolutions  []string             `json:"possibleSolutions"`
	CoreConcepts       []domain.CoreConcept `json:"coreConcepts"`
}

func (s *missionService) Generate(ctx context.Context, level domain.GradeLevel) *domain.Mission {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskMission,
		UserPrompt: buildMissionPrompt(level),
		JSONOutput: true,
	})
	if err != nil {
		return FallbackMission(level)
	}

	parsed, err := llm.ExtractJSON[missionResponse](resp.Text, nil)
	if err != nil {
		return FallbackMission(level)
	}

	mission := &domain.Mission{
		ID:                 uuid.NewString(),
		Title:              parsed.Title,
		Description:        parsed.Description,
		LearningObjective:  parsed.LearningObjective,
		Difficulty:         level.Difficulty(), // authoritative even if the model disagrees
		Tags:               parsed.Tags,
		WarmUpQuestion:     parsed.WarmUpQuestion,
		FollowUpQuestions:  parsed.FollowUpQuestions,
		DecisionChallenges: parsed.DecisionChallenges,
		PossibleSolutions:  parsed.PossibleSolutions,
		CoreConcepts:       parsed.CoreConcepts,
	}
	if err := mission.Validate(); err != nil {
		return FallbackMission(level)
	}
	return mission
}

// FallbackMission is the fully populated lesson used whenever generation
// fails. Its difficulty label follows the requested level; everything else
// is fixed.
func FallbackMission(level domain.GradeLevel) *domain.Mission {
	return &domain.Mission{
		ID:                "fallback",
		Title:             "Lunar Base Survival",
		Description:       "How can we establish a sustainable and safe human presence on the moon?",
		LearningObjective: "Resource Management and ISRU",
		Difficulty:        level.Difficulty(),
		Tags:              []string{"#MoonBase", "#Sustainability", "#ISRU"},
		WarmUpQuestion:    "Imagine you're planning a trip to a place with no atmosphere. What top 3 things do you pack?",
		FollowUpQuestions: []string{
			"How does lack of atmosphere affect safety?",
			"Where should we build: Surface or Underground?",
			"How do we get water without bringing it from Earth?",
		},
		DecisionChallenges: []string{
			"Choose a power source: Nuclear vs. Solar.",
			"Choose a location: Polar Ice Caps vs. Lava Tubes.",
			"Choose a food source: Hydroponics vs. Imported rations.",
		},
		PossibleSolutions: []string{
			"In-Situ Resource Utilization (ISRU)",
			"Closed-Loop Life Support",
			"Robotic Pre-construction",
		},
		CoreConcepts: []domain.CoreConcept{
			{Term: "ISRU", Definition: "In-Situ Resource Utilization: The practice of collecting and using materials found on other worlds."},
			{Term: "Closed-Loop System", Definition: "A life support system that recycles air, water, and waste with zero loss."},
			{Term: "Regolith", Definition: "The layer of loose, heterogeneous superficial deposits covering solid rock on the Moon."},
		},
	}
}

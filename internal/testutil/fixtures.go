package testutil

import (
	"fmt"

	"github.com/icanacademy/eduspace/internal/domain"
)

// SampleMission returns a valid mission card for tests. The fields are
// deliberately ordinary; tests that care about a specific value should
// override it on the returned struct.
func SampleMission() *domain.Mission {
	return &domain.Mission{
		ID:                "test-mission",
		Title:             "Asteroid Relay Outpost",
		Description:       "Your relay outpost on asteroid 433 Eros has lost contact with Earth.",
		LearningObjective: "Understand how signal relays and power budgets interact.",
		Difficulty:        "Medium",
		Tags:              []string{"Communication", "Engineering", "Problem Solving"},
		WarmUpQuestion:    "What do you think a relay station does?",
		FollowUpQuestions: []string{
			"Why might a signal get weaker over distance?",
			"What could interrupt a radio link in space?",
			"How would you check which part failed first?",
		},
		DecisionChallenges: []string{
			"Which system do you restore first?",
			"Do you reroute power from life support experiments?",
			"Do you wait for Earth's instructions or act now?",
		},
		PossibleSolutions: []string{
			"Restore the main antenna using backup power.",
			"Deploy the emergency beacon and conserve energy.",
			"Chain the rover radios into a makeshift relay.",
		},
		CoreConcepts: []domain.CoreConcept{
			{Term: "Relay", Definition: "A station that receives a signal and passes it on."},
			{Term: "Power Budget", Definition: "The total energy available versus what systems consume."},
			{Term: "Redundancy", Definition: "Backup systems that take over when the primary fails."},
		},
	}
}

// SampleHistory returns n alternating student/mentor turns.
func SampleHistory(n int) []domain.Message {
	history := make([]domain.Message, 0, n)
	for i := 0; i < n; i++ {
		role := domain.RoleStudent
		if i%2 == 1 {
			role = domain.RoleMentor
		}
		history = append(history, domain.NewMessage(role, fmt.Sprintf("turn %d", i+1)))
	}
	return history
}

// SampleThesis returns a fully populated thesis document.
func SampleThesis() domain.ThesisDocument {
	return domain.ThesisDocument{
		Title:            "Restoring the Eros Relay",
		Abstract:         "How we brought the outpost back online.",
		ProblemAnalysis:  "The main antenna lost power after a micrometeorite strike.",
		Alternatives:     "Waiting for Earth, emergency beacon, rover relay chain.",
		ProposedSolution: "Reroute backup power and restore the main antenna.",
		Conclusion:       "Prioritizing communication restored the mission fastest.",
	}
}

package gateway

import (
	"fmt"
	"strings"

	"github.com/icanacademy/eduspace/internal/domain"
)

// toneDirective selects the mentor's register for a grade level.
func toneDirective(level domain.GradeLevel) string {
	switch level {
	case domain.ElementaryLower:
		return "Use simple words, emojis, and ask 'What if?' questions. (Difficulty: Easy)"
	case domain.HighSchool:
		return "Demand scientific evidence, cost-benefit analysis, and ethical justification. (Difficulty: Expert)"
	default:
		return "Encourage critical thinking and weigh pros/cons."
	}
}

// levelContext scopes mission generation to age-appropriate subject matter.
func levelContext(level domain.GradeLevel) string {
	switch level {
	case domain.ElementaryLower:
		return "Simple survival or moral choices (e.g., Saving a robot vs. saving food)."
	case domain.ElementaryUpper:
		return "Resource management and basic science (e.g., Building a moon base)."
	case domain.MiddleSchool:
		return "Engineering trade-offs and environmental systems."
	case domain.HighSchool:
		return "Complex socio-political and advanced technical dilemmas."
	default:
		return "Resource management and basic science."
	}
}

// buildMentorSystemPrompt assembles the Socratic mentor instruction from the
// mission's fields. The protocol walks warm-up, follow-ups, then the three
// decision challenges, one question at a time.
func buildMentorSystemPrompt(level domain.GradeLevel, m *domain.Mission) string {
	var b strings.Builder

	b.WriteString(`You are "Commander Gemini," a Socratic AI mentor for ICAN Academy's "Space Thinking Expansion" program.
Your goal is to guide the student through a specific problem-solving process to develop cosmic thinking.
DO NOT give long lectures. Ask one question at a time.

`)
	fmt.Fprintf(&b, "Current Mission: %q\n", m.Title)
	fmt.Fprintf(&b, "Main Question: %q\n\n", m.Description)

	b.WriteString("Core Concepts available to student:\n")
	if len(m.CoreConcepts) == 0 {
		b.WriteString("None loaded.\n")
	}
	for _, c := range m.CoreConcepts {
		fmt.Fprintf(&b, "- %s: %s\n", c.Term, c.Definition)
	}

	b.WriteString("\nPROTOCOL:\n")
	fmt.Fprintf(&b, "1. Start by asking the \"Warm-up Question\": %q\n", m.WarmUpQuestion)
	b.WriteString("2. Wait for the student's answer. Discuss it briefly.\n")
	b.WriteString("3. Move to the \"Follow-up Questions\". Ask them ONE by one.\n")
	for i, q := range m.FollowUpQuestions {
		fmt.Fprintf(&b, "   - Q%d: %s\n", i+1, q)
	}
	b.WriteString("4. Once the context is understood, present the \"Decision Challenges\" (Micro-decisions) one by one.\n")
	b.WriteString("   - These are the \"Small Decisions\" the student must make to build their final solution.\n")
	for i, q := range m.DecisionChallenges {
		fmt.Fprintf(&b, "   - Challenge %d: %s\n", i+1, q)
	}
	b.WriteString("5. Finally, help them synthesize their \"Best Solution\".\n\n")

	fmt.Fprintf(&b, "Tone for %s:\n%s\n\n", level, toneDirective(level))

	b.WriteString(`If the user asks about specific locations (e.g., "Where is the Kennedy Space Center?"), provide the answer and the tool will show the map.`)

	return b.String()
}

// buildMissionPrompt asks for a structured lesson plan scoped to the level.
func buildMissionPrompt(level domain.GradeLevel) string {
	return fmt.Sprintf(`Generate a structured "Space Orienteering Lesson Plan".
Difficulty Level: %s (%s).
Context: %s

It MUST follow this exact structure (like a teacher's guide):
1. Title & Main Orienteering Question (The big complex problem).
2. Warm-up Question (An icebreaker scenario).
3. Follow-up Questions (3 questions to deepen understanding of the environment/physics).
4. Decision Challenges (3 distinct "Choice" questions the student must answer to solve the main problem).
5. Possible Solutions (List of standard approaches).
6. Core Concepts (3-4 key scientific terms or theories needed to solve this, with definitions).
7. Hashtags.

Return ONLY a JSON object with keys:
- title
- description (The Main Orienteering Question)
- learningObjective
- difficulty (%q)
- tags (array of strings including hashtags)
- warmUpQuestion (string)
- followUpQuestions (array of 3 strings)
- decisionChallenges (array of 3 strings - these are the small decisions)
- possibleSolutions (array of strings)
- coreConcepts (array of objects with 'term' and 'definition')`,
		level.Difficulty(), level, levelContext(level), level.Difficulty())
}

// buildThesisPrompt turns the transcript and decision log into a drafting
// request for the six-field solution paper.
func buildThesisPrompt(m *domain.Mission, history []domain.Message, decisions []domain.MicroDecision, level domain.GradeLevel) string {
	var hist strings.Builder
	for _, msg := range history {
		hist.WriteString(string(msg.Role))
		hist.WriteString(": ")
		hist.WriteString(msg.Text)
		hist.WriteByte('\n')
	}

	var dec strings.Builder
	for _, d := range decisions {
		fmt.Fprintf(&dec, "Decision: %s (Reason: %s)\n", d.Decision, d.Reasoning)
	}

	return fmt.Sprintf(`Act as a research assistant. Based on the chat history and the "Micro-Decisions" the student made, draft a solution paper.

Mission: %q
Student Level: %s

Chat History:
%s
Key Decisions Made by Student:
%s
Return JSON with:
- title (A creative title for the solution)
- abstract (Summary of the %q and context)
- problemAnalysis (Analysis of %s)
- alternatives (List the "Possible Solutions" that were considered but maybe not chosen)
- proposedSolution (The "Best Solution" based on the student's specific decisions)
- conclusion (Why is this the Best Solution? Justify using the decisions made)`,
		m.Title, level, hist.String(), dec.String(), m.WarmUpQuestion,
		strings.Join(m.FollowUpQuestions, "; "))
}

// buildSlidesPrompt converts the thesis into the four-slide decision journey.
func buildSlidesPrompt(thesisJSON string, level domain.GradeLevel) string {
	return fmt.Sprintf(`Convert the following project data into 4 presentation slides for a student in %s.
The presentation should focus on the DECISION JOURNEY.

Data: %s

Return a JSON object with a key "slides" which is an array of objects.
Each slide object must have: "title" (string) and "points" (array of strings, max 3 points per slide).
Slide 1: The Challenge.
Slide 2: The Options we weighed.
Slide 3: The Decisions we made.
Slide 4: The Final Solution.`, level, thesisJSON)
}

// illustrationVariants are the three camera perspectives requested in
// parallel for each idea-train strip.
var illustrationVariants = []string{
	"Wide angle, establishing shot, futuristic environment.",
	"Close up detail, technical schematic style, blueprint elements.",
	"Action shot, dynamic angle, problem solving in progress.",
}

// buildIllustrationPrompt composes the base sketch prompt with one variant.
func buildIllustrationPrompt(excerpt, variant string) string {
	return fmt.Sprintf("Sci-fi concept art sketch, colorful, imaginative, visualizing: %s. %s", excerpt, variant)
}

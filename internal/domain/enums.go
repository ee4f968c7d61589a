package domain

import "fmt"

// Stage identifies which surface of the application is active.
type Stage string

const (
	StageMissionControl Stage = "MISSION_CONTROL"
	StageKnowledgeBase  Stage = "KNOWLEDGE_BASE"
	StageOrienteering   Stage = "ORIENTEERING"
	StageThesis         Stage = "THESIS"
	StageLaunchpad      Stage = "LAUNCHPAD"
)

// GradeLevel is the difficulty tier the student selected.
type GradeLevel string

const (
	ElementaryLower GradeLevel = "Elementary (Lower)" // grades 1-3
	ElementaryUpper GradeLevel = "Elementary (Upper)" // grades 4-6
	MiddleSchool    GradeLevel = "Middle School"      // grades 7-9
	HighSchool      GradeLevel = "High School"        // grades 10-12
)

// DefaultGradeLevel is used when no level has been persisted yet.
const DefaultGradeLevel = ElementaryUpper

// AllGradeLevels lists the tiers in ascending difficulty order.
var AllGradeLevels = []GradeLevel{
	ElementaryLower,
	ElementaryUpper,
	MiddleSchool,
	HighSchool,
}

// Difficulty returns the difficulty label shown on mission cards.
func (g GradeLevel) Difficulty() string {
	switch g {
	case ElementaryLower:
		return "Easy"
	case ElementaryUpper:
		return "Medium"
	case MiddleSchool:
		return "Hard"
	case HighSchool:
		return "Expert"
	default:
		return "Medium"
	}
}

// ParseGradeLevel validates a stored or user-supplied level string.
// Short command-line aliases are accepted alongside the canonical names.
func ParseGradeLevel(s string) (GradeLevel, error) {
	for _, g := range AllGradeLevels {
		if string(g) == s {
			return g, nil
		}
	}
	switch s {
	case "elementary-lower":
		return ElementaryLower, nil
	case "elementary-upper":
		return ElementaryUpper, nil
	case "middle":
		return MiddleSchool, nil
	case "high":
		return HighSchool, nil
	}
	return "", fmt.Errorf("unknown grade level %q", s)
}

// ParseStage validates a stage identifier.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageMissionControl, StageKnowledgeBase, StageOrienteering, StageThesis, StageLaunchpad:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

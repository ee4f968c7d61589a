package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMission() *Mission {
	return &Mission{
		ID:                 "m1",
		Title:              "Lunar Base Survival",
		Description:        "How can we establish a sustainable presence on the moon?",
		WarmUpQuestion:     "What would you pack?",
		FollowUpQuestions:  []string{"a", "b", "c"},
		DecisionChallenges: []string{"x", "y", "z"},
	}
}

func TestMissionValidate(t *testing.T) {
	require.NoError(t, validMission().Validate())
}

func TestMissionValidate_MissingFields(t *testing.T) {
	m := validMission()
	m.Title = ""
	assert.Error(t, m.Validate())

	m = validMission()
	m.Description = ""
	assert.Error(t, m.Validate())

	m = validMission()
	m.WarmUpQuestion = ""
	assert.Error(t, m.Validate())
}

func TestMissionValidate_Cardinality(t *testing.T) {
	m := validMission()
	m.FollowUpQuestions = []string{"only one"}
	assert.Error(t, m.Validate())

	m = validMission()
	m.DecisionChallenges = append(m.DecisionChallenges, "a fourth")
	assert.Error(t, m.Validate())
}

func TestParseGradeLevel(t *testing.T) {
	for _, g := range AllGradeLevels {
		parsed, err := ParseGradeLevel(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}

	parsed, err := ParseGradeLevel("middle")
	require.NoError(t, err)
	assert.Equal(t, MiddleSchool, parsed)

	_, err = ParseGradeLevel("kindergarten")
	assert.Error(t, err)
}

func TestGradeLevelDifficulty(t *testing.T) {
	assert.Equal(t, "Easy", ElementaryLower.Difficulty())
	assert.Equal(t, "Medium", ElementaryUpper.Difficulty())
	assert.Equal(t, "Hard", MiddleSchool.Difficulty())
	assert.Equal(t, "Expert", HighSchool.Difficulty())
	assert.Equal(t, "Medium", GradeLevel("bogus").Difficulty())
}

func TestNewMessage_AssignsUniqueIDs(t *testing.T) {
	a := NewMessage(RoleStudent, "hello")
	b := NewMessage(RoleMentor, "hi")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, RoleStudent, a.Role)
}

func TestNewMicroDecision_CustomSentinel(t *testing.T) {
	d := NewMicroDecision("", "Solar", "cheaper")
	assert.Equal(t, CustomDecisionQuestion, d.Question)

	d = NewMicroDecision("Choose a power source", "Nuclear", "night survival")
	assert.Equal(t, "Choose a power source", d.Question)
	assert.NotEmpty(t, d.ID)
}

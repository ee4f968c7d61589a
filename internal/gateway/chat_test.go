package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatMission() *domain.Mission {
	return &domain.Mission{
		Title:              "Lunar Base Survival",
		Description:        "How can we survive on the moon?",
		WarmUpQuestion:     "What would you pack?",
		FollowUpQuestions:  []string{"a", "b", "c"},
		DecisionChallenges: []string{"x", "y", "z"},
	}
}

func TestChatSession_SendBuildsTranscript(t *testing.T) {
	client := &mockClient{response: "Good thinking, cadet."}
	cs := NewChatSession(client, domain.ElementaryUpper, chatMission())

	first, err := cs.Send(context.Background(), "I would pack water.")
	require.NoError(t, err)
	assert.Equal(t, "Good thinking, cadet.", first.Text)

	_, err = cs.Send(context.Background(), "And oxygen tanks.")
	require.NoError(t, err)

	// The second call replays the first exchange as history.
	require.Len(t, client.lastReq.History, 2)
	assert.Equal(t, "user", client.lastReq.History[0].Role)
	assert.Equal(t, "I would pack water.", client.lastReq.History[0].Text)
	assert.Equal(t, "model", client.lastReq.History[1].Role)
	assert.Equal(t, "And oxygen tanks.", client.lastReq.UserPrompt)
}

func TestChatSession_SystemPromptCarriesMission(t *testing.T) {
	client := &mockClient{response: "ok"}
	cs := NewChatSession(client, domain.HighSchool, chatMission())

	_, err := cs.Send(context.Background(), "hello")
	require.NoError(t, err)

	assert.Contains(t, client.lastReq.SystemPrompt, "Commander Gemini")
	assert.Contains(t, client.lastReq.SystemPrompt, `"Lunar Base Survival"`)
	assert.Contains(t, client.lastReq.SystemPrompt, "What would you pack?")
	assert.Equal(t, llm.TaskChat, client.lastReq.Task)
	assert.False(t, client.lastReq.JSONOutput)
}

func TestChatSession_FailedTurnNotRecorded(t *testing.T) {
	client := &mockClient{response: "ok"}
	cs := NewChatSession(client, domain.ElementaryUpper, chatMission())

	_, err := cs.Send(context.Background(), "first")
	require.NoError(t, err)

	client.err = errors.New("network down")
	_, err = cs.Send(context.Background(), "second")
	require.Error(t, err)

	client.err = nil
	_, err = cs.Send(context.Background(), "third")
	require.NoError(t, err)

	// Only the successful exchanges appear in the replayed history.
	require.Len(t, client.lastReq.History, 2)
	assert.Equal(t, "first", client.lastReq.History[0].Text)
}

func TestChatSession_MapsGroundingLinks(t *testing.T) {
	client := &linkClient{}
	cs := NewChatSession(client, domain.ElementaryUpper, chatMission())

	result, err := cs.Send(context.Background(), "Where is the Kennedy Space Center?")
	require.NoError(t, err)
	require.Len(t, result.GroundingLinks, 1)
	assert.Equal(t, "map", result.GroundingLinks[0].Type)
	assert.Equal(t, "View Location", result.GroundingLinks[0].Title)
}

type linkClient struct{ mockClient }

func (c *linkClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{
		Text: "It is in Florida.",
		GroundingLinks: []llm.GroundingLink{
			{Title: "View Location", URI: "https://maps.example/ksc", Type: "map"},
		},
	}, nil
}

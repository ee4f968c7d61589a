package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = endpoint
	return cfg
}

// newBackend serves a canned generateContent response and captures the
// request body for assertions.
func newBackend(t *testing.T, status int, response string) (*httptest.Server, *geminiRequest) {
	t.Helper()
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func textResponse(text string) string {
	data, _ := json.Marshal(geminiResponse{
		Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{{Text: text}}},
		}},
	})
	return string(data)
}

func TestGenerate_NoAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	client := NewGeminiClient(cfg, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskChat, UserPrompt: "hi"})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerate_ReturnsText(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, textResponse("Welcome aboard, cadet."))
	client := NewGeminiClient(testConfig(srv.URL), nil)

	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskChat, UserPrompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome aboard, cadet.", resp.Text)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
}

func TestGenerate_JSONModeSetsMimeAndNoTools(t *testing.T) {
	srv, captured := newBackend(t, http.StatusOK, textResponse(`{"ok":true}`))
	client := NewGeminiClient(testConfig(srv.URL), nil)

	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskMission,
		UserPrompt: "make a mission",
		JSONOutput: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
	assert.Empty(t, captured.Tools)
}

func TestGenerate_PlainChatEnablesMapsTool(t *testing.T) {
	srv, captured := newBackend(t, http.StatusOK, textResponse("reply"))
	client := NewGeminiClient(testConfig(srv.URL), nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskChat, UserPrompt: "where is Baikonur?"})
	require.NoError(t, err)
	require.Len(t, captured.Tools, 1)
	assert.NotNil(t, captured.Tools[0].GoogleMaps)
}

func TestGenerate_HistoryPrecedesPrompt(t *testing.T) {
	srv, captured := newBackend(t, http.StatusOK, textResponse("reply"))
	client := NewGeminiClient(testConfig(srv.URL), nil)

	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskChat,
		UserPrompt: "third",
		History: []ChatTurn{
			{Role: "user", Text: "first"},
			{Role: "model", Text: "second"},
		},
	})
	require.NoError(t, err)
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "first", captured.Contents[0].Parts[0].Text)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "third", captured.Contents[2].Parts[0].Text)
}

func TestGenerate_GroundingLinks(t *testing.T) {
	data, _ := json.Marshal(geminiResponse{
		Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{{Text: "near the launch site"}}},
			GroundingMetadata: &geminiGroundingMetadata{
				GroundingChunks: []geminiGroundingChunk{
					{Maps: &geminiGroundingSource{URI: "https://maps.example/x"}},
					{Web: &geminiGroundingSource{URI: "https://example.com", Title: "Launch Sites"}},
				},
			},
		}},
	})
	srv, _ := newBackend(t, http.StatusOK, string(data))
	client := NewGeminiClient(testConfig(srv.URL), nil)

	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskChat, UserPrompt: "hi"})
	require.NoError(t, err)
	require.Len(t, resp.GroundingLinks, 2)
	assert.Equal(t, "map", resp.GroundingLinks[0].Type)
	assert.Equal(t, "View Location", resp.GroundingLinks[0].Title)
	assert.Equal(t, "web", resp.GroundingLinks[1].Type)
	assert.Equal(t, "Launch Sites", resp.GroundingLinks[1].Title)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{"candidates":[]}`)
	client := NewGeminiClient(testConfig(srv.URL), nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskChat, UserPrompt: "hi"})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestGenerate_BackendError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"boom"}}`)
	client := NewGeminiClient(testConfig(srv.URL), nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskChat, UserPrompt: "hi"})
	assert.Error(t, err)
}

func TestGenerateImage_DataURI(t *testing.T) {
	data, _ := json.Marshal(geminiResponse{
		Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{
				{Text: "here is your sketch"},
				{InlineData: &geminiInlineData{MimeType: "image/png", Data: "aGVsbG8="}},
			}},
		}},
	})
	srv, captured := newBackend(t, http.StatusOK, string(data))
	client := NewGeminiClient(testConfig(srv.URL), nil)

	resp, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a moon base", AspectRatio: "16:9"})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", resp.DataURI)
	assert.Equal(t, "16:9", captured.GenerationConfig.ImageConfig.AspectRatio)
}

func TestGenerateImage_NoImagePart(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, textResponse("no image, sorry"))
	client := NewGeminiClient(testConfig(srv.URL), nil)

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a moon base"})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestObserver_ReceivesOutcome(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, textResponse("ok"))

	var events []CallEvent
	obs := observerFunc(func(e CallEvent) { events = append(events, e) })
	client := NewGeminiClient(testConfig(srv.URL), obs)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskThesis, UserPrompt: "draft"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, TaskThesis, events[0].Task)
	assert.Equal(t, "gemini-2.5-flash-lite", events[0].Model)
}

type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }

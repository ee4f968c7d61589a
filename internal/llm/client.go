package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ChatTurn is one prior exchange replayed to the backend on a multi-turn
// call. Role is "user" or "model" in the backend's vocabulary.
type ChatTurn struct {
	Role string
	Text string
}

// GenerateRequest holds the parameters for a text generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	History      []ChatTurn // prior turns, oldest first; UserPrompt is the new turn
	JSONOutput   bool       // request schema-constrained JSON output
	Temperature  *float64   // nil uses task default
}

// GroundingLink is an external source the backend used to ground a reply.
type GroundingLink struct {
	Title string
	URI   string
	Type  string // "map" or "web"
}

// GenerateResponse holds the result of a text generation call.
type GenerateResponse struct {
	Text           string
	Model          string
	LatencyMs      int64
	GroundingLinks []GroundingLink
}

// ImageRequest holds the parameters for an illustration call.
type ImageRequest struct {
	Prompt      string
	AspectRatio string // e.g. "16:9"
}

// ImageResponse holds one generated image as a data URI.
type ImageResponse struct {
	DataURI   string
	Model     string
	LatencyMs int64
}

// Client provides access to the generative backend.
type Client interface {
	// Generate sends a prompt and returns the text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// GenerateImage requests a single inline image.
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}

// geminiClient implements Client against the Gemini generateContent API.
type geminiClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewGeminiClient creates a Client that talks to the Gemini HTTP API.
func NewGeminiClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Wire types for the generateContent request/response bodies.

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64            `json:"temperature,omitempty"`
	MaxOutputTokens  int                `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string             `json:"responseMimeType,omitempty"`
	ImageConfig      *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
}

type geminiTool struct {
	GoogleMaps *struct{} `json:"googleMaps,omitempty"`
}

type geminiGroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type geminiGroundingChunk struct {
	Web  *geminiGroundingSource `json:"web,omitempty"`
	Maps *geminiGroundingSource `json:"maps,omitempty"`
}

type geminiGroundingMetadata struct {
	GroundingChunks []geminiGroundingChunk `json:"groundingChunks"`
}

type geminiCandidate struct {
	Content           geminiContent            `json:"content"`
	GroundingMetadata *geminiGroundingMetadata `json:"groundingMetadata,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	model := c.cfg.TaskModel(req.Task)

	if c.cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: req.UserPrompt}},
	})

	body := geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     temp,
			MaxOutputTokens: taskCfg.MaxTokens,
		},
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: req.SystemPrompt}},
		}
	}
	if req.JSONOutput {
		body.GenerationConfig.ResponseMimeType = "application/json"
	} else if req.Task == TaskChat {
		// Location-lookup grounding is only available on plain-text chat turns.
		body.Tools = []geminiTool{{GoogleMaps: &struct{}{}}}
	}

	resp, err := c.doGenerate(ctx, model, body)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = c.mapError(ctx, err)
		c.observer.OnCallComplete(CallEvent{
			Task: req.Task, Model: model, LatencyMs: latency,
			Success: false, ErrorCode: errorCode(err),
		})
		return nil, err
	}

	text, links, err := flattenTextCandidate(resp)
	if err != nil {
		c.observer.OnCallComplete(CallEvent{
			Task: req.Task, Model: model, LatencyMs: latency,
			Success: false, ErrorCode: errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(CallEvent{
		Task: req.Task, Model: model, LatencyMs: latency, Success: true,
	})
	return &GenerateResponse{
		Text:           text,
		Model:          model,
		LatencyMs:      latency,
		GroundingLinks: links,
	}, nil
}

func (c *geminiClient) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	start := time.Now()
	model := c.cfg.TaskModel(TaskIllustration)

	if c.cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(TaskIllustration))*time.Millisecond)
	defer cancel()

	body := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: req.Prompt}},
		}},
	}
	if req.AspectRatio != "" {
		body.GenerationConfig = &geminiGenerationConfig{
			ImageConfig: &geminiImageConfig{AspectRatio: req.AspectRatio},
		}
	}

	resp, err := c.doGenerate(ctx, model, body)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = c.mapError(ctx, err)
		c.observer.OnCallComplete(CallEvent{
			Task: TaskIllustration, Model: model, LatencyMs: latency,
			Success: false, ErrorCode: errorCode(err),
		})
		return nil, err
	}

	uri, err := firstInlineImage(resp)
	if err != nil {
		c.observer.OnCallComplete(CallEvent{
			Task: TaskIllustration, Model: model, LatencyMs: latency,
			Success: false, ErrorCode: errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(CallEvent{
		Task: TaskIllustration, Model: model, LatencyMs: latency, Success: true,
	})
	return &ImageResponse{DataURI: uri, Model: model, LatencyMs: latency}, nil
}

func (c *geminiClient) doGenerate(ctx context.Context, model string, body geminiRequest) (*geminiResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.Endpoint, model, c.cfg.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("backend error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return &resp, nil
}

func (c *geminiClient) mapError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	if isConnectionError(err) {
		return ErrUnavailable
	}
	return err
}

// flattenTextCandidate joins the text parts of the first candidate and
// collects any grounding links from its metadata.
func flattenTextCandidate(resp *geminiResponse) (string, []GroundingLink, error) {
	if len(resp.Candidates) == 0 {
		return "", nil, ErrNoContent
	}
	cand := resp.Candidates[0]

	var text string
	for _, part := range cand.Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", nil, ErrNoContent
	}

	var links []GroundingLink
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			switch {
			case chunk.Maps != nil && chunk.Maps.URI != "":
				title := chunk.Maps.Title
				if title == "" {
					title = "View Location"
				}
				links = append(links, GroundingLink{Title: title, URI: chunk.Maps.URI, Type: "map"})
			case chunk.Web != nil && chunk.Web.URI != "":
				links = append(links, GroundingLink{Title: chunk.Web.Title, URI: chunk.Web.URI, Type: "web"})
			}
		}
	}
	return text, links, nil
}

// firstInlineImage extracts the first inline image part of the first
// candidate as a data URI.
func firstInlineImage(resp *geminiResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", ErrNoContent
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return "data:" + mime + ";base64," + part.InlineData.Data, nil
		}
	}
	return "", ErrNoContent
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

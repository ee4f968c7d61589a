package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/llm"
)

// SlideService converts a finished thesis into presentation slides.
// The locally synthesized title slide is not part of its output.
type SlideService interface {
	// Compile returns the generated slides in order. A response without a
	// slides array yields an empty list, not an error; the caller shows an
	// empty state.
	Compile(ctx context.Context, thesis *domain.ThesisDocument, level domain.GradeLevel) ([]domain.Slide, error)
}

type slideService struct {
	client llm.Client
}

// NewSlideService creates a SlideService backed by the generative client.
func NewSlideService(client llm.Client) SlideService {
	return &slideService{client: client}
}

// slidesResponse is the JSON structure expected from the backend.
type slidesResponse struct {
	Slides []struct {
		Title  string   `json:"title"`
		Points []string `json:"points"`
	} `json:"slides"`
}

func (s *slideService) Compile(ctx context.Context, thesis *domain.ThesisDocument, level domain.GradeLevel) ([]domain.Slide, error) {
	thesisJSON, err := json.Marshal(thesis)
	if err != nil {
		return nil, fmt.Errorf("marshaling thesis: %w", err)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskSlides,
		UserPrompt: buildSlidesPrompt(string(thesisJSON), level),
		JSONOutput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("slide compilation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[slidesResponse](resp.Text, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to extract slides: %w", err)
	}

	slides := make([]domain.Slide, 0, len(parsed.Slides))
	for _, raw := range parsed.Slides {
		points := raw.Points
		if len(points) > 3 {
			points = points[:3]
		}
		slides = append(slides, domain.Slide{
			ID:     uuid.NewString(),
			Title:  raw.Title,
			Points: points,
		})
	}
	return slides, nil
}

package gateway

import (
	"context"

	"github.com/icanacademy/eduspace/internal/llm"
	"golang.org/x/sync/errgroup"
)

// IllustrationService produces the "idea train" image strip for a mentor turn.
type IllustrationService interface {
	// Generate requests the three perspective variants concurrently and
	// returns whichever succeeded, in variant order. A failed variant
	// contributes nothing; the result may legitimately be empty. There is
	// no retry and no error return.
	Generate(ctx context.Context, excerpt string) []string
}

type illustrationService struct {
	client llm.Client
}

// NewIllustrationService creates an IllustrationService backed by the
// generative client.
func NewIllustrationService(client llm.Client) IllustrationService {
	return &illustrationService{client: client}
}

func (s *illustrationService) Generate(ctx context.Context, excerpt string) []string {
	results := make([]string, len(illustrationVariants))

	var g errgroup.Group
	for i, variant := range illustrationVariants {
		g.Go(func() error {
			resp, err := s.client.GenerateImage(ctx, llm.ImageRequest{
				Prompt:      buildIllustrationPrompt(excerpt, variant),
				AspectRatio: "16:9",
			})
			if err != nil {
				// Partial failure is tolerated; the slot stays empty.
				return nil
			}
			results[i] = resp.DataURI
			return nil
		})
	}
	_ = g.Wait()

	images := make([]string, 0, len(results))
	for _, uri := range results {
		if uri != "" {
			images = append(images, uri)
		}
	}
	return images
}

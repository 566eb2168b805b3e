package external

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/asterwei416/cybercat/internal/domain/entities"
	"github.com/asterwei416/cybercat/internal/domain/repositories"
)

const portraitAspectRatio = "1:1"

type GeminiGenerationService struct {
	pool  repositories.GenAIClientPool
	model string
}

func NewGeminiGenerationService(pool repositories.GenAIClientPool, model string) repositories.GenerationService {
	return &GeminiGenerationService{
		pool:  pool,
		model: model,
	}
}

// Generate requests a portrait for the visual traits and returns the
// first inline image part of the response. Single attempt, no retry.
func (s *GeminiGenerationService) Generate(ctx context.Context, visualTraits string) (*entities.GeneratedImage, error) {
	client, err := s.pool.GetClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrRemoteError, err)
	}

	prompt := buildPortraitPrompt(visualTraits)
	slog.Info("requesting portrait", "model", s.model, "promptBytes", len(prompt))

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: portraitAspectRatio,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrRemoteError, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: response has no candidates", entities.ErrNoImageReturned)
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return entities.NewGeneratedImage(part.InlineData.Data, part.InlineData.MIMEType), nil
		}
	}

	return nil, fmt.Errorf("%w: no inline image part in response", entities.ErrNoImageReturned)
}

func buildPortraitPrompt(visualTraits string) string {
	var sb strings.Builder

	sb.WriteString("Render a dramatic cyberpunk combat-unit portrait of the following subject: ")
	sb.WriteString(visualTraits)
	sb.WriteString(". ")
	sb.WriteString("Style: neon-noir synthwave, holographic HUD glow, rain-slick chrome backdrop, cinematic rim lighting. ")
	sb.WriteString("The subject fills the frame, facing the viewer like a boss-fight introduction. ")
	sb.WriteString("Absolutely no text, no letters, no numbers, no watermarks, and no human characters anywhere in the image.")

	return sb.String()
}

package repositories

import (
	"context"

	"github.com/asterwei416/cybercat/internal/domain/entities"
)

// AnalysisService classifies a captured frame into a structured record.
// A single attempt is made; transport failures surface as
// entities.ErrRemoteError and malformed responses as
// entities.ErrSchemaViolation.
type AnalysisService interface {
	Analyze(ctx context.Context, frame *entities.CapturedFrame) (*entities.AnalysisResult, error)
}

// GenerationService renders a portrait from the visual traits of an
// analysis. A response without inline image data surfaces as
// entities.ErrNoImageReturned.
type GenerationService interface {
	Generate(ctx context.Context, visualTraits string) (*entities.GeneratedImage, error)
}

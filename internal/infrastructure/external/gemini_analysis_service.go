package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/asterwei416/cybercat/internal/domain/entities"
	"github.com/asterwei416/cybercat/internal/domain/repositories"
	"github.com/asterwei416/cybercat/internal/domain/valueobjects"
)

const analysisInstruction = `You are the targeting computer of a cyberpunk cat-combat scanner.
Analyze the attached photo and report on its subject.

Requirements:
1. Decide whether the subject is a cat (isCat).
2. Invent a neon-noir codename for the subject (title) and pick one matching emoji.
3. Write a combat assessment of at least 100 characters (description) that explains
   how visible features justify the stat readings: cite fur, posture, eyes, claws,
   surroundings. Cause first, stat second.
4. Produce a terse visual description of the subject (visualTraits) usable as an
   image-generation prompt: species, coloring, markings, pose, expression. No lore,
   no stat talk.
5. Score six combat stats as integers from 0 to 100: cuteness, ferocity, agility,
   chaos, hunger, defense. If the subject is not a cat, score it anyway, harshly.`

// analysisSchema constrains the service to the exact record shape; any
// deviation on receipt is a schema violation, not a transport failure.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"isCat":        {Type: genai.TypeBoolean},
		"title":        {Type: genai.TypeString},
		"emoji":        {Type: genai.TypeString},
		"description":  {Type: genai.TypeString},
		"visualTraits": {Type: genai.TypeString},
		"stats": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"cuteness": {Type: genai.TypeInteger},
				"ferocity": {Type: genai.TypeInteger},
				"agility":  {Type: genai.TypeInteger},
				"chaos":    {Type: genai.TypeInteger},
				"hunger":   {Type: genai.TypeInteger},
				"defense":  {Type: genai.TypeInteger},
			},
			Required: []string{"cuteness", "ferocity", "agility", "chaos", "hunger", "defense"},
		},
	},
	Required: []string{"isCat", "title", "emoji", "description", "visualTraits", "stats"},
}

type GeminiAnalysisService struct {
	pool  repositories.GenAIClientPool
	model string
}

func NewGeminiAnalysisService(pool repositories.GenAIClientPool, model string) repositories.AnalysisService {
	return &GeminiAnalysisService{
		pool:  pool,
		model: model,
	}
}

// Analyze sends the frame with the fixed instruction and the declared
// response schema. Single attempt, no retry.
func (s *GeminiAnalysisService) Analyze(ctx context.Context, frame *entities.CapturedFrame) (*entities.AnalysisResult, error) {
	client, err := s.pool.GetClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrRemoteError, err)
	}

	// The wire contract is an inline JPEG; capture already normalizes,
	// this converts anything that slipped through another path.
	image, err := frame.Image().ToJPEG(valueobjects.TransmitQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrDecodeError, err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(analysisInstruction),
		{
			InlineData: &genai.Blob{
				MIMEType: image.MimeType(),
				Data:     image.Data(),
			},
		},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrRemoteError, err)
	}

	raw := resp.Text()
	slog.Info("analysis response received", "model", s.model, "bytes", len(raw))

	return parseAnalysisPayload([]byte(raw))
}

type analysisPayload struct {
	IsCat        *bool                   `json:"isCat"`
	Title        string                  `json:"title"`
	Emoji        string                  `json:"emoji"`
	Description  string                  `json:"description"`
	VisualTraits string                  `json:"visualTraits"`
	Stats        *valueobjects.StatBlock `json:"stats"`
}

// parseAnalysisPayload validates the duck-typed service response against
// the declared schema and converts it to a strictly typed record.
func parseAnalysisPayload(data []byte) (*entities.AnalysisResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty response body", entities.ErrSchemaViolation)
	}

	var payload analysisPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrSchemaViolation, err)
	}

	switch {
	case payload.IsCat == nil:
		return nil, fmt.Errorf("%w: missing field isCat", entities.ErrSchemaViolation)
	case payload.Title == "":
		return nil, fmt.Errorf("%w: missing field title", entities.ErrSchemaViolation)
	case payload.Emoji == "":
		return nil, fmt.Errorf("%w: missing field emoji", entities.ErrSchemaViolation)
	case payload.Description == "":
		return nil, fmt.Errorf("%w: missing field description", entities.ErrSchemaViolation)
	case payload.VisualTraits == "":
		return nil, fmt.Errorf("%w: missing field visualTraits", entities.ErrSchemaViolation)
	case payload.Stats == nil:
		return nil, fmt.Errorf("%w: missing field stats", entities.ErrSchemaViolation)
	}

	if err := payload.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrSchemaViolation, err)
	}

	return entities.NewAnalysisResult(
		*payload.IsCat,
		payload.Title,
		payload.Emoji,
		payload.Description,
		payload.VisualTraits,
		*payload.Stats,
	), nil
}

package repositories

import (
	"context"

	"google.golang.org/genai"
)

// GenAIClientPool hands out a shared, lazily constructed Gemini client.
type GenAIClientPool interface {
	GetClient(ctx context.Context) (*genai.Client, error)
	Close() error
}

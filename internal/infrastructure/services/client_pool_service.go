package services

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/asterwei416/cybercat/internal/domain/repositories"
)

// genAIClientPool lazily builds one shared Gemini client. Both remote
// services draw from the same pool so the process holds a single
// connection to the upstream API.
type genAIClientPool struct {
	apiKey string
	client *genai.Client
	mutex  sync.RWMutex
}

func NewGenAIClientPool(apiKey string) repositories.GenAIClientPool {
	return &genAIClientPool{apiKey: apiKey}
}

func (p *genAIClientPool) GetClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Double-checked: another request may have built it meanwhile.
	if p.client != nil {
		return p.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: p.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// The GenAI client holds no resources that need explicit cleanup.
	p.client = nil
	return nil
}

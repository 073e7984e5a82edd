// Package gemini implements provider.Backend on the Google Gemini API.
package gemini

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/provider"
	"google.golang.org/genai"
)

// Backend sends chat requests to Gemini.
type Backend struct {
	client GeminiClient
}

// New creates a Backend over client.
func New(client GeminiClient) *Backend {
	if client == nil {
		panic("client is required")
	}
	return &Backend{client: client}
}

// Connect is a provider.BackendFactory for the Gemini API.
func Connect(ctx context.Context, info config.ProviderInfo, apiKey string) (provider.Backend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", info.Name, err)
	}
	return New(NewRealGeminiClient(client)), nil
}

// Complete implements provider.Backend.
func (b *Backend) Complete(ctx context.Context, req *provider.Request) (*provider.Message, error) {
	system, contents := toGeminiContents(req.Messages)
	cfg := toGeminiConfig(req, system)

	resp, err := b.client.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return fromGeminiResponse(resp)
}

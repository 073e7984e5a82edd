package gemini

import (
	"context"
	"testing"

	"github.com/Cyclone1070/llmx/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestComplete_TextResponse(t *testing.T) {
	var gotModel string
	var gotContents []*genai.Content
	var gotConfig *genai.GenerateContentConfig
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel, gotContents, gotConfig = model, contents, config
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content:      &genai.Content{Parts: []*genai.Part{{Text: "Conexão OK"}}},
					FinishReason: genai.FinishReasonStop,
				}},
			}, nil
		},
	}

	msg, err := New(mockClient).Complete(context.Background(), &provider.Request{
		Model: "gemini-1.5-flash",
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: "persona"},
			{Role: provider.RoleUser, Content: "oi"},
		},
		MaxTokens: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, provider.RoleAssistant, msg.Role)
	assert.Equal(t, "Conexão OK", msg.Content)
	assert.Equal(t, "gemini-1.5-flash", gotModel)
	require.Len(t, gotContents, 1)
	assert.Equal(t, "persona", gotConfig.SystemInstruction.Parts[0].Text)
	assert.Equal(t, int32(20), gotConfig.MaxOutputTokens)
}

func TestComplete_MapsErrors(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "Quota exceeded"}
		},
	}

	_, err := New(mockClient).Complete(context.Background(), &provider.Request{Model: "gemini-1.5-pro"})

	assert.True(t, provider.IsQuotaExhausted(err))
}

func TestNew_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

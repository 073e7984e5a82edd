// Package openai implements provider.Backend on OpenAI-compatible chat
// completion APIs (Groq, OpenRouter).
package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/provider"
	"github.com/Cyclone1070/llmx/internal/tool"
	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Backend sends chat completion requests to one base URL.
type Backend struct {
	client oai.Client
}

// New creates a Backend. Retries are disabled; the provider client rotates
// credentials instead.
func New(baseURL, apiKey string, opts ...option.RequestOption) *Backend {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		base = append(base, option.WithBaseURL(baseURL))
	}
	return &Backend{client: oai.NewClient(append(base, opts...)...)}
}

// Connect is a provider.BackendFactory for OpenAI-compatible providers.
func Connect(_ context.Context, info config.ProviderInfo, apiKey string) (provider.Backend, error) {
	return New(info.BaseURL, apiKey), nil
}

// Complete implements provider.Backend.
func (b *Backend) Complete(ctx context.Context, req *provider.Request) (*provider.Message, error) {
	params := oai.ChatCompletionNewParams{
		Model:       shared.ChatModel(req.Model),
		Messages:    toMessages(req.Messages),
		MaxTokens:   oai.Int(int64(req.MaxTokens)),
		Temperature: oai.Float(req.Temperature),
	}
	if len(req.Tools) > 0 {
		params.Tools = toTools(req.Tools)
		params.ToolChoice = oai.ChatCompletionToolChoiceOptionUnionParam{OfAuto: oai.String("auto")}
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, &provider.Error{
			Code:       provider.ErrorCodeInvalidRequest,
			Message:    "no choices in response",
			Underlying: provider.ErrEmptyResponse,
		}
	}

	choice := resp.Choices[0].Message
	msg := &provider.Message{Role: provider.RoleAssistant, Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{
			ID: tc.ID,
			Function: provider.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return msg, nil
}

func toMessages(messages []provider.Message) []oai.ChatCompletionMessageParamUnion {
	out := make([]oai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case provider.RoleSystem:
			out = append(out, oai.SystemMessage(msg.Content))
		case provider.RoleTool:
			out = append(out, oai.ToolMessage(msg.Content, msg.ToolCallID))
		case provider.RoleAssistant:
			if len(msg.ToolCalls) == 0 {
				out = append(out, oai.AssistantMessage(msg.Content))
				continue
			}
			calls := make([]oai.ChatCompletionMessageToolCallParam, 0, len(msg.ToolCalls))
			for _, tc := range msg.ToolCalls {
				calls = append(calls, oai.ChatCompletionMessageToolCallParam{
					ID: tc.ID,
					Function: oai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Function.Name,
						Arguments: tc.Function.Arguments,
					},
				})
			}
			assistant := oai.ChatCompletionAssistantMessageParam{ToolCalls: calls}
			if msg.Content != "" {
				assistant.Content = oai.ChatCompletionAssistantMessageParamContentUnion{OfString: oai.String(msg.Content)}
			}
			out = append(out, oai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		default:
			out = append(out, oai.UserMessage(msg.Content))
		}
	}
	return out
}

func toTools(decls []tool.Declaration) []oai.ChatCompletionToolParam {
	out := make([]oai.ChatCompletionToolParam, 0, len(decls))
	for _, d := range decls {
		out = append(out, oai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        d.Name,
				Description: oai.String(d.Description),
				Parameters:  shared.FunctionParameters(d.Parameters.ToMap()),
			},
		})
	}
	return out
}

// mapError converts SDK errors into provider errors. Groq reports a
// malformed function call as a 400 whose code is tool_use_failed.
func mapError(err error) error {
	var apiErr *oai.Error
	if !errors.As(err, &apiErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return &provider.Error{Code: provider.ErrorCodeTimeout, Message: "request timeout", Underlying: err}
		}
		return &provider.Error{Code: provider.ErrorCodeNetwork, Message: "network error", Underlying: err}
	}

	parts := make([]string, 0, 2)
	if apiErr.Code != "" {
		parts = append(parts, apiErr.Code)
	}
	if apiErr.Message != "" {
		parts = append(parts, apiErr.Message)
	}
	message := strings.Join(parts, ": ")
	if message == "" {
		message = apiErr.Error()
	}
	return provider.ErrorFromStatus(apiErr.StatusCode, message, err)
}

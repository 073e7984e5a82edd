package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cyclone1070/llmx/internal/provider"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const toolCallResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1,
  "model": "llama-3.3-70b-versatile",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": "",
      "tool_calls": [{
        "id": "call_1",
        "type": "function",
        "function": {"name": "find_file", "arguments": "{\"pattern\":\"teste.txt\"}"}
      }]
    }
  }]
}`

func TestComplete_SendsRequestAndParsesToolCalls(t *testing.T) {
	var body map[string]any
	srv := newServer(t, http.StatusOK, toolCallResponse, &body)

	msg, err := New(srv.URL, "test-key").Complete(context.Background(), &provider.Request{
		Model: "llama-3.3-70b-versatile",
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: "persona"},
			{Role: provider.RoleUser, Content: "ache teste.txt"},
			{Role: provider.RoleAssistant, ToolCalls: []provider.ToolCall{{ID: "c0", Function: provider.FunctionCall{Name: "get_path", Arguments: `{"name":"x"}`}}}},
			{Role: provider.RoleTool, ToolCallID: "c0", Name: "get_path", Content: "/x"},
		},
		Tools: []tool.Declaration{{
			Name:        "find_file",
			Description: "procura arquivos",
			Parameters:  tool.Object(map[string]*tool.Schema{"pattern": {Type: tool.TypeString}}, "pattern"),
		}},
		MaxTokens:   4096,
		Temperature: 0.7,
	})

	require.NoError(t, err)
	assert.Equal(t, provider.RoleAssistant, msg.Role)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "call_1", msg.ToolCalls[0].ID)
	assert.Equal(t, "find_file", msg.ToolCalls[0].Function.Name)
	assert.JSONEq(t, `{"pattern":"teste.txt"}`, msg.ToolCalls[0].Function.Arguments)

	assert.Equal(t, "llama-3.3-70b-versatile", body["model"])
	assert.Equal(t, "auto", body["tool_choice"])
	assert.EqualValues(t, 4096, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)

	messages := body["messages"].([]any)
	require.Len(t, messages, 4)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assistant := messages[2].(map[string]any)
	assert.Equal(t, "assistant", assistant["role"])
	assert.Len(t, assistant["tool_calls"], 1)
	toolTurn := messages[3].(map[string]any)
	assert.Equal(t, "tool", toolTurn["role"])
	assert.Equal(t, "c0", toolTurn["tool_call_id"])

	tools := body["tools"].([]any)
	fn := tools[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, "find_file", fn["name"])
	assert.Equal(t, []any{"pattern"}, fn["parameters"].(map[string]any)["required"])
}

func TestComplete_OmitsToolChoiceWithoutTools(t *testing.T) {
	var body map[string]any
	srv := newServer(t, http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":"Conexão OK"}}]}`, &body)

	msg, err := New(srv.URL, "test-key").Complete(context.Background(), &provider.Request{
		Model:     "llama-3.1-8b-instant",
		Messages:  []provider.Message{{Role: provider.RoleUser, Content: "oi"}},
		MaxTokens: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, "Conexão OK", msg.Content)
	assert.False(t, msg.HasToolCalls())
	assert.NotContains(t, body, "tool_choice")
	assert.NotContains(t, body, "tools")
}

func TestComplete_MapsErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		code     provider.ErrorCode
		quota    bool
		toolFail bool
	}{
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"Rate limit reached for model","type":"tokens","code":"rate_limit_exceeded"}}`,
			code:   provider.ErrorCodeRateLimit,
			quota:  true,
		},
		{
			name:   "tokens per minute on 413",
			status: http.StatusRequestEntityTooLarge,
			body:   `{"error":{"message":"Request too large for model in organization on tokens per minute (TPM): Limit 6000, Requested 9000","type":"tokens","code":"rate_limit_exceeded"}}`,
			code:   provider.ErrorCodeRateLimit,
			quota:  true,
		},
		{
			name:     "tool use failed",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"Failed to call a function. Please adjust your prompt.","type":"invalid_request_error","code":"tool_use_failed"}}`,
			code:     provider.ErrorCodeToolUseFailed,
			toolFail: true,
		},
		{
			name:   "auth",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`,
			code:   provider.ErrorCodeAuth,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body, nil)

			_, err := New(srv.URL, "test-key").Complete(context.Background(), &provider.Request{
				Model:    "llama-3.3-70b-versatile",
				Messages: []provider.Message{{Role: provider.RoleUser, Content: "oi"}},
			})

			var pe *provider.Error
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.code, pe.Code)
			assert.Equal(t, tt.quota, provider.IsQuotaExhausted(err))
			assert.Equal(t, tt.toolFail, provider.IsToolUseFailure(err))
		})
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"choices":[]}`, nil)

	_, err := New(srv.URL, "test-key").Complete(context.Background(), &provider.Request{Model: "m"})

	assert.ErrorIs(t, err, provider.ErrEmptyResponse)
}

// Package loop drives one user message through routing, the tool-calling
// conversation with the provider and the retry policy.
package loop

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/provider"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/workflow"
)

// Answers returned when the loop cannot produce one from the model.
const (
	MsgTooComplex           = "desculpe, a operacao ficou muito complexa. tente uma pergunta mais simples."
	MsgNoContent            = "desculpe, nao consegui processar sua solicitacao."
	MsgCredentialsExhausted = "limite diario atingido. tente novamente mais tarde ou adicione mais API keys no arquivo .env"
	MsgRetriesExhausted     = "desculpe, nao consegui executar a operacao. tente reformular sua pergunta."
	MsgUnexpected           = "erro inesperado. verifique os logs."
	MsgCancelled            = "operacao cancelada."
)

type Loop struct {
	conversation conversation
	router       router
	tools        toolManager
	logger       logger
	events       chan<- workflow.Event
	config       config.AgentConfig
}

func NewLoop(conv conversation, r router, tools toolManager, log logger, events chan<- workflow.Event, cfg config.AgentConfig) *Loop {
	if conv == nil {
		panic("conversation is required")
	}
	if r == nil {
		panic("router is required")
	}
	if tools == nil {
		panic("tools is required")
	}
	if log == nil {
		panic("logger is required")
	}
	return &Loop{
		conversation: conv,
		router:       r,
		tools:        tools,
		logger:       log,
		events:       events,
		config:       cfg,
	}
}

// Handle answers one user message. It always returns text: failures are
// reported as a short message, never as an error.
func (l *Loop) Handle(ctx context.Context, userMessage string) string {
	defer l.emit(ctx, workflow.DoneEvent{})

	l.logger.Info("user message", "preview", preview(userMessage))
	decision := l.router.Route(userMessage)
	if decision.Composed() {
		l.logger.Info("routed by actions", "actions", decision.Actions, "tools", decision.Tools)
	} else {
		l.logger.Info("routed by category", "category", decision.Category)
	}
	tools := l.tools.Declarations(decision.Tools...)

	for attempt := 0; attempt <= l.config.MaxRetries; attempt++ {
		answer, err := l.attempt(ctx, userMessage, decision.SystemPrompt, tools)
		if err == nil {
			return answer
		}

		switch {
		case ctx.Err() != nil:
			l.logger.Info("message cancelled", "error", err.Error())
			return MsgCancelled

		case errors.Is(err, provider.ErrCredentialsExhausted):
			l.logger.Error(err, "all api keys exhausted")
			return MsgCredentialsExhausted

		case provider.IsToolUseFailure(err):
			l.logger.Error(err, fmt.Sprintf("tool use failed, attempt %d/%d", attempt+1, l.config.MaxRetries+1))
			if attempt == l.config.MaxRetries {
				return MsgRetriesExhausted
			}
			l.emit(ctx, workflow.NoticeEvent{Text: fmt.Sprintf("erro na chamada de ferramenta. tentando novamente (%d/%d)...", attempt+1, l.config.MaxRetries)})
			l.conversation.Reset()

		default:
			l.logger.Error(err, "unrecoverable error")
			if l.config.ClearHistoryOnFatal {
				l.conversation.Reset()
			}
			return fmt.Sprintf("erro ao processar: %v\n\n💡 log salvo em: %s", err, l.logger.Path())
		}
	}

	return MsgUnexpected
}

// attempt runs the initial request and the tool-calling rounds. Follow-up
// requests offer the whole catalog, so routing narrows only the first
// turn.
func (l *Loop) attempt(ctx context.Context, userMessage, systemPrompt string, tools []tool.Declaration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.emit(ctx, workflow.ThinkingEvent{})
	resp, err := l.conversation.Send(ctx, userMessage, tools, systemPrompt)
	if err != nil {
		return "", err
	}

	allTools := l.tools.Declarations()
	for i := 0; resp.HasToolCalls() && i < l.config.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		l.conversation.RecordAssistantTurn(*resp)
		if resp.Content != "" {
			l.emit(ctx, workflow.TextEvent{Text: resp.Content})
		}

		for j, tc := range resp.ToolCalls {
			result, err := l.tools.Execute(ctx, tc, l.events)
			if err != nil {
				l.closeBatch(resp.ToolCalls[j:])
				return "", err
			}
			l.conversation.RecordToolResult(tc.ID, tc.Function.Name, result.Content)
		}

		l.emit(ctx, workflow.ThinkingEvent{})
		resp, err = l.conversation.Continue(ctx, allTools)
		if err != nil {
			return "", err
		}
	}

	if resp.HasToolCalls() {
		l.logger.Error(fmt.Errorf("max iterations (%d) reached", l.config.MaxIterations), "tool loop")
		return MsgTooComplex, nil
	}
	if resp.Content == "" {
		return MsgNoContent, nil
	}

	l.conversation.RecordAssistantTurn(*resp)
	l.logger.Info("response", "preview", preview(resp.Content))
	return resp.Content, nil
}

// closeBatch answers the calls an interrupted batch never ran, so the
// recorded assistant turn stays paired for the next request.
func (l *Loop) closeBatch(calls []provider.ToolCall) {
	for _, tc := range calls {
		l.conversation.RecordToolResult(tc.ID, tc.Function.Name, MsgCancelled)
	}
}

func (l *Loop) emit(ctx context.Context, e workflow.Event) {
	if l.events == nil {
		return
	}
	select {
	case l.events <- e:
	case <-ctx.Done():
	}
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= 100 {
		return s
	}
	return string(r[:100]) + "..."
}

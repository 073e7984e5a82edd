package provider

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/logging"
	"github.com/Cyclone1070/llmx/internal/tool"
)

const (
	connectionProbe       = "Diga 'Conexão OK' em uma linha."
	connectionProbeTokens = 20
)

// Client owns one conversation: its history, the persona prompt and the
// backend connection for the session's current credential. Quota errors
// rotate to the next credential and repeat the request.
type Client struct {
	config  *config.Config
	creds   credentialSource
	factory BackendFactory
	logger  *logging.Logger
	session *Session
	persona string

	mu      sync.Mutex
	backend Backend
	history []Message
	notify  func(string)
}

// NewClient creates a Client. The backend is connected on first use.
func NewClient(cfg *config.Config, session *Session, creds credentialSource, factory BackendFactory, persona string, logger *logging.Logger) *Client {
	if cfg == nil {
		panic("cfg is required")
	}
	if session == nil {
		panic("session is required")
	}
	if creds == nil {
		panic("creds is required")
	}
	if factory == nil {
		panic("factory is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		config:  cfg,
		creds:   creds,
		factory: factory,
		logger:  logger,
		session: session,
		persona: persona,
	}
}

// SetNotifier registers a callback for user-facing notices such as a
// credential rotation.
func (c *Client) SetNotifier(fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

// Model returns the active model id.
func (c *Client) Model() string {
	return c.session.Model()
}

// Send appends the user turn, trims the history and asks the model with
// systemPrompt in front. The system prompt is not stored; an empty one
// means the persona prompt.
func (c *Client) Send(ctx context.Context, userMessage string, tools []tool.Declaration, systemPrompt string) (*Message, error) {
	if systemPrompt == "" {
		systemPrompt = c.persona
	}

	c.mu.Lock()
	c.history = append(c.history, Message{Role: RoleUser, Content: userMessage})
	c.history = truncateHistory(c.history, c.config.Provider.MaxHistory)
	messages := c.messagesLocked(systemPrompt)
	c.mu.Unlock()

	return c.complete(ctx, messages, tools, c.config.Provider.MaxTokens)
}

// Continue asks the model again after tool results were recorded. It
// always uses the persona prompt, whatever prompt started the exchange.
func (c *Client) Continue(ctx context.Context, tools []tool.Declaration) (*Message, error) {
	c.mu.Lock()
	messages := c.messagesLocked(c.persona)
	c.mu.Unlock()

	return c.complete(ctx, messages, tools, c.config.Provider.MaxTokens)
}

// RecordAssistantTurn appends an assistant turn to the history.
func (c *Client) RecordAssistantTurn(msg Message) {
	turn := Message{Role: RoleAssistant, Content: msg.Content}
	if len(msg.ToolCalls) > 0 {
		turn.ToolCalls = slices.Clone(msg.ToolCalls)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, turn)
}

// RecordToolResult appends a tool turn answering invocation id. Long
// results are cut to the configured length with a marker.
func (c *Client) RecordToolResult(id, name, result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, Message{
		Role:       RoleTool,
		ToolCallID: id,
		Name:       name,
		Content:    truncateResult(result, c.config.Provider.MaxToolResultLength),
	})
}

// History returns a copy of the stored turns.
func (c *Client) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.history)
}

// Reset clears the history. The credential cursor is left alone.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

// ReloadCredentials re-reads the credential store, moves the cursor back
// to the first credential and reconnects.
func (c *Client) ReloadCredentials(ctx context.Context) error {
	if loader, ok := c.creds.(credentialLoader); ok {
		if err := loader.Load(); err != nil {
			return fmt.Errorf("reload credentials: %w", err)
		}
	}
	c.session.Reset()

	c.mu.Lock()
	c.backend = nil
	c.mu.Unlock()

	_, err := c.connect(ctx)
	return err
}

// SetModel switches the session to model and reconnects with the first
// credential of its provider.
func (c *Client) SetModel(ctx context.Context, model string) error {
	if !config.IsKnownModel(model) {
		return fmt.Errorf("modelo desconhecido: %s", model)
	}
	c.session.SetModel(model)
	c.logger.Info("model changed", "model", model, "provider", c.session.Provider().Name)
	return c.ReloadCredentials(ctx)
}

// TestConnection sends a one-line request and returns the model's answer or
// an error text.
func (c *Client) TestConnection(ctx context.Context) string {
	messages := []Message{{Role: RoleUser, Content: connectionProbe}}
	resp, err := c.complete(ctx, messages, nil, connectionProbeTokens)
	if err != nil {
		return fmt.Sprintf("erro de conexao: %v", err)
	}
	return strings.TrimSpace(resp.Content)
}

// CredentialPosition returns the 1-based credential in use and how many
// the provider has.
func (c *Client) CredentialPosition() (int, int) {
	return c.session.Index() + 1, c.creds.Count(c.session.Provider().Name)
}

func (c *Client) messagesLocked(systemPrompt string) []Message {
	messages := make([]Message, 0, len(c.history)+1)
	messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	return append(messages, c.history...)
}

// complete issues one request, rotating credentials on quota errors. The
// loop is bounded by the credential count since the cursor never goes
// back.
func (c *Client) complete(ctx context.Context, messages []Message, tools []tool.Declaration, maxTokens int) (*Message, error) {
	for {
		backend, err := c.connect(ctx)
		if err != nil {
			return nil, err
		}

		req := &Request{
			Model:       c.session.Model(),
			Messages:    messages,
			Tools:       tools,
			MaxTokens:   maxTokens,
			Temperature: c.config.Provider.Temperature,
		}

		reqCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.Provider.RequestTimeout)*time.Second)
		resp, err := backend.Complete(reqCtx, req)
		cancel()
		if err == nil {
			if resp == nil {
				return nil, ErrEmptyResponse
			}
			return resp, nil
		}

		if ctx.Err() != nil || !IsQuotaExhausted(err) {
			return nil, err
		}
		if !c.rotate(ctx) {
			return nil, fmt.Errorf("%w: %w", ErrCredentialsExhausted, err)
		}
	}
}

// rotate advances to the next credential and drops the connection.
func (c *Client) rotate(ctx context.Context) bool {
	provider := c.session.Provider().Name
	total := c.creds.Count(provider)
	index, ok := c.session.Advance(total)
	if !ok {
		c.logger.Info("all credentials exhausted", "provider", provider, "count", total)
		return false
	}

	c.mu.Lock()
	c.backend = nil
	notify := c.notify
	c.mu.Unlock()

	c.logger.Info("credential rotated", "provider", provider, "index", index+1, "count", total)
	if notify != nil {
		notify(fmt.Sprintf("limite atingido. trocando para api key %d/%d...", index+1, total))
	}
	return true
}

// connect returns the live backend, creating it for the current
// credential when needed.
func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend != nil {
		return c.backend, nil
	}

	info := c.session.Provider()
	key, ok := c.creds.Credential(info.Name, c.session.Index())
	if !ok || key == "" {
		return nil, fmt.Errorf("%w: nenhuma chave de api encontrada para %s", ErrNoCredential, info.Name)
	}

	backend, err := c.factory(ctx, info, key)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", info.Name, err)
	}
	if backend == nil {
		return nil, errors.New("backend factory returned nil")
	}
	c.backend = backend
	return backend, nil
}

// Package toolmanager is the tool registry: it validates the built-in
// catalog at startup and dispatches provider tool calls.
package toolmanager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Cyclone1070/llmx/internal/provider"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/workflow"
)

// ToolManager dispatches tool calls to one of the executor groups.
type ToolManager struct {
	groups map[tool.Group]map[tool.ID]tool.Tool
	logger toolLogger
}

// NewToolManager registers tools. Every catalog tool must be registered
// exactly once.
func NewToolManager(logger toolLogger, tools ...tool.Tool) (*ToolManager, error) {
	if logger == nil {
		panic("logger is required")
	}
	m := &ToolManager{
		groups: make(map[tool.Group]map[tool.ID]tool.Tool),
		logger: logger,
	}
	for _, t := range tools {
		id := t.ID()
		if !id.Valid() {
			return nil, fmt.Errorf("tool %q is not in the catalog", id)
		}
		if m.lookup(id) != nil {
			return nil, fmt.Errorf("tool %q registered twice", id)
		}
		if t.Declaration().Name != string(id) {
			return nil, fmt.Errorf("tool %q declares name %q", id, t.Declaration().Name)
		}
		group := id.Group()
		if m.groups[group] == nil {
			m.groups[group] = make(map[tool.ID]tool.Tool)
		}
		m.groups[group][id] = t
	}

	var missing []error
	for _, id := range tool.All() {
		if m.lookup(id) == nil {
			missing = append(missing, fmt.Errorf("tool %q has no executor", id))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ToolManager) lookup(id tool.ID) tool.Tool {
	return m.groups[id.Group()][id]
}

// Declarations returns the schemas of ids in catalog order, or of every
// tool when ids is empty.
func (m *ToolManager) Declarations(ids ...tool.ID) []tool.Declaration {
	want := make(map[tool.ID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	decls := make([]tool.Declaration, 0, len(tool.All()))
	for _, id := range tool.All() {
		if len(ids) > 0 && !want[id] {
			continue
		}
		decls = append(decls, m.lookup(id).Declaration())
	}
	return decls
}

// Execute runs one tool call and returns the tool turn answering it.
// Every failure becomes result text; the error is non-nil only when ctx
// is done.
func (m *ToolManager) Execute(ctx context.Context, tc provider.ToolCall, events chan<- workflow.Event) (provider.Message, error) {
	name := tc.Function.Name
	args, parseErr := parseArguments(tc.Function.Arguments)
	if parseErr != nil {
		m.logger.Error(parseErr, "parse arguments for "+name)
	}

	emit(ctx, events, workflow.ToolStartEvent{ToolName: name, Preview: firstArgument(tc.Function.Arguments)})

	result, failed := m.run(ctx, name, args)
	m.logger.ToolCall(name, args, result)

	emit(ctx, events, workflow.ToolEndEvent{ToolName: name, Result: result, Failed: failed})

	if err := ctx.Err(); err != nil {
		return provider.Message{}, err
	}
	return provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: tc.ID,
		Name:       name,
		Content:    result,
	}, nil
}

func (m *ToolManager) run(ctx context.Context, name string, args map[string]any) (result string, failed bool) {
	id, err := tool.Parse(name)
	if err != nil {
		return err.Error(), true
	}
	t := m.lookup(id)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			m.logger.Error(err, "tool "+name)
			result, failed = executionError(name, err), true
		}
	}()

	out, err := t.Execute(ctx, args)
	if err != nil {
		m.logger.Error(err, "tool "+name)
		return executionError(name, err), true
	}
	return out, false
}

func executionError(name string, err error) string {
	return fmt.Sprintf("erro ao executar %s: %v", name, err)
}

// parseArguments decodes the serialized arguments. Malformed input yields
// an empty set so the tool still runs and reports what is missing.
func parseArguments(raw string) (map[string]any, error) {
	args := map[string]any{}
	if len(bytes.TrimSpace([]byte(raw))) == 0 {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]any{}, fmt.Errorf("invalid arguments %q: %w", raw, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// firstArgument returns the value of the first key in the serialized
// object, as the model wrote it.
func firstArgument(raw string) string {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return ""
	}
	if _, err := dec.Token(); err != nil {
		return ""
	}
	var value any
	if err := dec.Decode(&value); err != nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func emit(ctx context.Context, events chan<- workflow.Event, e workflow.Event) {
	if events == nil {
		return
	}
	select {
	case events <- e:
	case <-ctx.Done():
	}
}

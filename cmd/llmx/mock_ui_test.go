package main

import (
	"context"
	"sync"

	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/ui"
	"github.com/Cyclone1070/llmx/internal/workflow"
)

// mockUI records everything the application shows.
type mockUI struct {
	mu       sync.Mutex
	messages []string
	notices  []string
	models   [][]string
	current  string
	decision policy.Decision

	events   chan workflow.Event
	commands chan ui.UICommand
	ready    chan struct{}
	inputs   chan string
	stop     chan struct{}
}

func newMockUI() *mockUI {
	return &mockUI{
		events:   make(chan workflow.Event, 128),
		commands: make(chan ui.UICommand, 10),
		ready:    make(chan struct{}),
		inputs:   make(chan string, 10),
		stop:     make(chan struct{}),
	}
}

func (m *mockUI) Confirm(ctx context.Context, req policy.Request) (policy.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.decision == "" {
		return policy.DecisionDeny, nil
	}
	return m.decision, nil
}

func (m *mockUI) Start() error {
	close(m.ready)
	<-m.stop
	return nil
}

func (m *mockUI) Ready() <-chan struct{} { return m.ready }

func (m *mockUI) ReadInput(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case in := <-m.inputs:
		return in, nil
	}
}

func (m *mockUI) Events() chan<- workflow.Event { return m.events }

func (m *mockUI) WriteMessage(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, content)
}

func (m *mockUI) WriteNotice(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, text)
}

func (m *mockUI) WriteModelList(models []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models = append(m.models, models)
}

func (m *mockUI) SetModel(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = model
}

func (m *mockUI) Commands() <-chan ui.UICommand { return m.commands }

func (m *mockUI) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

func (m *mockUI) Notices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.notices...)
}

func (m *mockUI) Model() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

package provider

import (
	"sync"

	"github.com/Cyclone1070/llmx/internal/config"
)

// Session is the mutable selection behind one conversation: the active
// model, the provider serving it and the credential cursor. The cursor
// only moves forward until Reset or a model change.
type Session struct {
	mu       sync.RWMutex
	model    string
	provider config.ProviderInfo
	index    int
}

// NewSession starts a session on model with the first credential.
func NewSession(model string) *Session {
	return &Session{
		model:    model,
		provider: config.ProviderForModel(model),
	}
}

// Model returns the active model id.
func (s *Session) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Provider returns the provider serving the active model.
func (s *Session) Provider() config.ProviderInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// Index returns the credential cursor.
func (s *Session) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Advance moves the cursor to the next credential when one exists below
// count. It never wraps.
func (s *Session) Advance(count int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index+1 >= count {
		return s.index, false
	}
	s.index++
	return s.index, true
}

// Reset moves the cursor back to the first credential.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = 0
}

// SetModel switches model and provider and resets the cursor.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
	s.provider = config.ProviderForModel(model)
	s.index = 0
}

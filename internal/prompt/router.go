// Package prompt selects the system prompt and the tool subset for a user
// message.
package prompt

import "github.com/Cyclone1070/llmx/internal/tool"

// RoutingDecision is the routing output for one message. Tools is never
// empty and only names catalog tools.
type RoutingDecision struct {
	SystemPrompt string
	Tools        []tool.ID
	// Actions holds the detected action tags; empty when the message was
	// classified instead.
	Actions  []string
	Category Category
}

// Composed reports whether the decision came from action composition.
func (d RoutingDecision) Composed() bool {
	return len(d.Actions) > 0
}

// Router tries micro-prompt composition first and falls back to category
// classification with the whole catalog.
type Router struct {
	composer *Composer
}

// NewRouter creates a Router over the built-in action table.
func NewRouter() *Router {
	return newRouter(NewComposer(Actions, DefaultCacheSize))
}

func newRouter(composer *Composer) *Router {
	if composer == nil {
		panic("composer is required")
	}
	return &Router{composer: composer}
}

// Route maps message to a RoutingDecision. It depends only on message and
// the static tables.
func (r *Router) Route(message string) RoutingDecision {
	if tags := r.composer.Detect(message); len(tags) > 0 {
		systemPrompt, tools := r.composer.Compose(tags)
		return RoutingDecision{
			SystemPrompt: systemPrompt,
			Tools:        tools,
			Actions:      tags,
		}
	}

	category := Classify(message)
	return RoutingDecision{
		SystemPrompt: PromptFor(category),
		Tools:        tool.All(),
		Category:     category,
	}
}

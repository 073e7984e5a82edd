package prompt

import (
	"slices"
	"strings"
	"sync"

	"github.com/Cyclone1070/llmx/internal/tool"
)

// DefaultCacheSize bounds the composition cache.
const DefaultCacheSize = 32

type composition struct {
	prompt string
	tools  []tool.ID
}

// Composer detects actions in a message and joins their fragments onto
// the base prompt. Compositions are cached by the set of tags, so the
// same set in any order maps to one entry.
type Composer struct {
	actions  []Action
	index    map[string]int
	capacity int

	mu    sync.Mutex
	cache map[string]composition
}

// NewComposer creates a Composer over actions. It panics when an action
// names a tool outside the catalog or two actions share a tag.
func NewComposer(actions []Action, capacity int) *Composer {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	index := make(map[string]int, len(actions))
	for i, a := range actions {
		if _, dup := index[a.Tag]; dup {
			panic("duplicate action tag: " + a.Tag)
		}
		for _, id := range a.Tools {
			if !id.Valid() {
				panic("action " + a.Tag + " names unknown tool " + string(id))
			}
		}
		index[a.Tag] = i
	}
	return &Composer{
		actions:  actions,
		index:    index,
		capacity: capacity,
		cache:    make(map[string]composition, capacity),
	}
}

// Detect returns the tags whose keywords occur in message, in definition
// order.
func (c *Composer) Detect(message string) []string {
	lower := strings.ToLower(message)
	var tags []string
	for _, a := range c.actions {
		if containsAny(lower, a.Keywords) {
			tags = append(tags, a.Tag)
		}
	}
	return tags
}

// Compose returns the prompt and tools for a set of tags. Unknown tags
// are ignored.
func (c *Composer) Compose(tags []string) (string, []tool.ID) {
	key := cacheKey(tags)

	c.mu.Lock()
	if hit, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return hit.prompt, slices.Clone(hit.tools)
	}
	c.mu.Unlock()

	built := c.build(tags)

	c.mu.Lock()
	if len(c.cache) >= c.capacity {
		for k := range c.cache {
			delete(c.cache, k)
			break
		}
	}
	c.cache[key] = built
	c.mu.Unlock()

	return built.prompt, slices.Clone(built.tools)
}

// cached reports how many compositions are held.
func (c *Composer) cached() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *Composer) build(tags []string) composition {
	selected := make([]bool, len(c.actions))
	for _, t := range tags {
		if i, ok := c.index[t]; ok {
			selected[i] = true
		}
	}

	parts := []string{basePrompt}
	wanted := make(map[tool.ID]bool)
	for _, id := range baseTools {
		wanted[id] = true
	}
	for i, a := range c.actions {
		if !selected[i] {
			continue
		}
		parts = append(parts, a.Fragment)
		for _, id := range a.Tools {
			wanted[id] = true
		}
	}

	return composition{
		prompt: strings.Join(parts, "\n"),
		tools:  inCatalogOrder(wanted),
	}
}

func cacheKey(tags []string) string {
	sorted := slices.Clone(tags)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), ",")
}

func inCatalogOrder(wanted map[tool.ID]bool) []tool.ID {
	ids := make([]tool.ID, 0, len(wanted))
	for _, id := range tool.All() {
		if wanted[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

package config

import "slices"

// DefaultModel is used when neither the dotfile nor LLMX_MODEL picks one.
const DefaultModel = "llama-3.3-70b-versatile"

// Backend selects the wire protocol used to talk to a provider.
type Backend string

const (
	BackendOpenAI Backend = "openai" // OpenAI-compatible chat completions
	BackendGemini Backend = "gemini"
)

// ProviderInfo describes one remote chat-completion vendor.
type ProviderInfo struct {
	Name    string
	Backend Backend
	BaseURL string
	// EnvKeys are read in order when no key file entry exists.
	EnvKeys []string
	Models  []string
}

var providers = []ProviderInfo{
	{
		Name:    "groq",
		Backend: BackendOpenAI,
		BaseURL: "https://api.groq.com/openai/v1",
		EnvKeys: []string{"GROQ_API_KEY", "GROQ_API_KEY_2", "GROQ_API_KEY_3"},
		Models: []string{
			"llama-3.3-70b-versatile",
			"llama-3.1-8b-instant",
			"mixtral-8x7b-32768",
			"gemma2-9b-it",
		},
	},
	{
		Name:    "openrouter",
		Backend: BackendOpenAI,
		BaseURL: "https://openrouter.ai/api/v1",
		EnvKeys: []string{"OPENROUTER_API_KEY"},
		Models: []string{
			"xiaomi/mimo-v2-flash:free",
			"mistralai/devstral-2512:free",
			"nvidia/nemotron-3-nano-30b-a3b:free",
			"liquid/lfm-2.5-1.2b-thinking:free",
		},
	},
	{
		Name:    "google",
		Backend: BackendGemini,
		EnvKeys: []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		Models: []string{
			"gemini-2.0-flash-exp",
			"gemini-1.5-flash",
			"gemini-1.5-pro",
		},
	},
}

// Providers returns the provider catalog in declaration order.
func Providers() []ProviderInfo {
	return slices.Clone(providers)
}

// LookupProvider returns the provider with the given name.
func LookupProvider(name string) (ProviderInfo, bool) {
	for _, p := range providers {
		if p.Name == name {
			return p, true
		}
	}
	return ProviderInfo{}, false
}

// ProviderForModel resolves which provider serves model. Unknown models
// fall back to groq.
func ProviderForModel(model string) ProviderInfo {
	for _, p := range providers {
		if slices.Contains(p.Models, model) {
			return p
		}
	}
	return providers[0]
}

// IsKnownModel reports whether model appears in the catalog.
func IsKnownModel(model string) bool {
	for _, p := range providers {
		if slices.Contains(p.Models, model) {
			return true
		}
	}
	return false
}

// AllModels lists every catalog model, grouped by provider.
func AllModels() []string {
	var out []string
	for _, p := range providers {
		out = append(out, p.Models...)
	}
	return out
}

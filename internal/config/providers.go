package config

type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
)

func SupportedProviders() []Provider {
	return []Provider{
		ProviderOpenRouter,
		ProviderGemini,
	}
}

// DefaultModelTable returns the routing table a provider starts with.
// OpenRouter ids are namespaced; Gemini uses bare model names.
func DefaultModelTable(p Provider) ModelTable {
	switch p {
	case ProviderGemini:
		return ModelTable{
			Default:  "gemini-2.5-flash",
			Fast:     "gemini-2.5-flash-lite",
			Thinking: "gemini-2.5-pro",
		}
	default:
		return ModelTable{
			Default:  "deepseek/deepseek-chat-v3.1",
			Fast:     "deepseek/deepseek-chat-v3.1",
			Thinking: "deepseek/deepseek-r1",
		}
	}
}

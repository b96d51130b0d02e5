package config

import "fmt"

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// Defaults target an OpenAI-compatible ModelScope endpoint serving
// DeepSeek.
const (
	DefaultModelID     = "deepseek-ai/DeepSeek-V3.2"
	DefaultBaseURL     = "https://api-inference.modelscope.cn/v1"
	DefaultTemperature = 0.7
)

// Model represents a reasoning-backend configuration.
type Model struct {
	Name        string   `hcl:"name,label"`
	Provider    Provider `hcl:"provider"`
	ModelID     string   `hcl:"model,optional"`
	APIKey      string   `hcl:"api_key"`
	BaseURL     string   `hcl:"base_url,optional"`
	Temperature float64  `hcl:"temperature,optional"`
}

func (m *Model) Defaults() {
	if m.ModelID == "" {
		m.ModelID = DefaultModelID
	}
	if m.Temperature == 0 {
		m.Temperature = DefaultTemperature
	}
	// base_url only applies to OpenAI-compatible endpoints; the other
	// SDKs manage their own endpoints.
	if m.BaseURL == "" && m.Provider == ProviderOpenAI {
		m.BaseURL = DefaultBaseURL
	}
}

func (m *Model) Validate() error {
	switch m.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("unsupported provider '%s' (expected openai, anthropic, or gemini)", m.Provider)
	}
	if m.APIKey == "" {
		return fmt.Errorf("api_key is required (set it in config or via the LLM_API_KEY environment variable)")
	}
	return nil
}

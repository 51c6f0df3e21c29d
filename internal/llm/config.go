package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of AI task being performed.
type TaskType string

const (
	TaskPlan TaskType = "plan"
)

// Provider names accepted in LLMConfig.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// TaskConfig holds per-task parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the AI subsystem.
type LLMConfig struct {
	Provider   string
	APIKey     string
	Endpoint   string
	Model      string
	Offline    bool
	LogCalls   bool
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig for the Anthropic Messages API with
// no credential. Plans are generated in a single attempt.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderAnthropic,
		Endpoint:   defaultEndpoint(ProviderAnthropic),
		Model:      defaultModel(ProviderAnthropic),
		TimeoutMs:  60000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskPlan: {Temperature: 0.2, MaxTokens: 4096},
		},
	}
}

// LoadConfig reads configuration from environment variables, falling
// back to defaults for any unset or invalid values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("WOODGENIE_PROVIDER"); v != "" {
		p := strings.ToLower(strings.TrimSpace(v))
		cfg.Provider = p
		cfg.Endpoint = defaultEndpoint(p)
		cfg.Model = defaultModel(p)
	}
	cfg.APIKey = os.Getenv("WOODGENIE_API_KEY")
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case ProviderAnthropic:
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case ProviderGemini:
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if v := os.Getenv("WOODGENIE_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("WOODGENIE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("WOODGENIE_OFFLINE"); v != "" {
		cfg.Offline, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WOODGENIE_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WOODGENIE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("WOODGENIE_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tc := cfg.Tasks[TaskPlan]
			tc.MaxTokens = n
			cfg.Tasks[TaskPlan] = tc
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskPlan, "WOODGENIE_PLAN_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}

func defaultEndpoint(provider string) string {
	switch provider {
	case ProviderGemini:
		return "https://generativelanguage.googleapis.com"
	default:
		return "https://api.anthropic.com"
	}
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	default:
		return "claude-opus-4-1-20250805"
	}
}

package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	TaskMission      TaskType = "mission"
	TaskChat         TaskType = "chat"
	TaskIllustration TaskType = "illustration"
	TaskThesis       TaskType = "thesis"
	TaskSlides       TaskType = "slides"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the generative backend.
type Config struct {
	APIKey    string
	Endpoint  string
	LogCalls  bool
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with the stock model assignments:
// flash for missions and chat, flash-lite for the fast drafting tasks,
// and the image model for illustrations.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "https://generativelanguage.googleapis.com/v1beta",
		TimeoutMs: 30000,
		Tasks: map[TaskType]TaskConfig{
			TaskMission:      {Model: "gemini-2.5-flash", Temperature: 0.9, MaxTokens: 4096, TimeoutMs: 30000},
			TaskChat:         {Model: "gemini-2.5-flash", Temperature: 0.7, MaxTokens: 2048, TimeoutMs: 30000},
			TaskIllustration: {Model: "gemini-2.5-flash-image", TimeoutMs: 45000},
			TaskThesis:       {Model: "gemini-2.5-flash-lite", Temperature: 0.4, MaxTokens: 4096, TimeoutMs: 30000},
			TaskSlides:       {Model: "gemini-2.5-flash-lite", Temperature: 0.4, MaxTokens: 2048, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads backend configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("EDUSPACE_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if v := os.Getenv("EDUSPACE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("EDUSPACE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("EDUSPACE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskModelEnv(&cfg, TaskMission, "EDUSPACE_LLM_MISSION_MODEL")
	applyTaskModelEnv(&cfg, TaskChat, "EDUSPACE_LLM_CHAT_MODEL")
	applyTaskModelEnv(&cfg, TaskIllustration, "EDUSPACE_LLM_IMAGE_MODEL")
	applyTaskModelEnv(&cfg, TaskThesis, "EDUSPACE_LLM_THESIS_MODEL")
	applyTaskModelEnv(&cfg, TaskSlides, "EDUSPACE_LLM_SLIDES_MODEL")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// TaskModel returns the model configured for a given task type.
func (c Config) TaskModel(task TaskType) string {
	if tc, ok := c.Tasks[task]; ok && tc.Model != "" {
		return tc.Model
	}
	return "gemini-2.5-flash"
}

func applyTaskModelEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	tc := cfg.Tasks[task]
	tc.Model = v
	cfg.Tasks[task] = tc
}

// Package config loads the immutable service configuration from defaults,
// an optional config file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend names accepted by the llm-backend key.
const (
	BackendHeuristic = "heuristic"
	BackendOpenAI    = "openai"
	BackendGemini    = "gemini"
	BackendOllama    = "ollama"
)

var backendAliases = map[string]string{
	"":      BackendHeuristic,
	"none":  BackendHeuristic,
	"cloud": BackendOpenAI,
	"local": BackendOllama,
}

type Config struct {
	Backend string       `mapstructure:"llm-backend"`
	Port    int          `mapstructure:"port"`
	OpenAI  OpenAIConfig `mapstructure:"openai"`
	Gemini  GeminiConfig `mapstructure:"gemini"`
	Ollama  OllamaConfig `mapstructure:"ollama"`
	Chat    TaskConfig   `mapstructure:"chat"`
	Resume  TaskConfig   `mapstructure:"resume"`
	Log     LogConfig    `mapstructure:"log"`
}

type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api-key"`
	APIKeyFile  string        `mapstructure:"api-key-file"`
	APIKeyParam string        `mapstructure:"api-key-param"`
	BaseURL     string        `mapstructure:"base-url"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type GeminiConfig struct {
	APIKey      string        `mapstructure:"api-key"`
	APIKeyFile  string        `mapstructure:"api-key-file"`
	APIKeyParam string        `mapstructure:"api-key-param"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type OllamaConfig struct {
	BaseURL string        `mapstructure:"base-url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TaskConfig holds per-task generation settings.
type TaskConfig struct {
	Temperature float64 `mapstructure:"temperature"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// NewViper returns a viper instance with every key defaulted and environment
// lookup enabled, e.g. openai.api-key is read from OPENAI_API_KEY.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("llm-backend", BackendHeuristic)
	v.SetDefault("port", 5000)

	v.SetDefault("openai.api-key", "")
	v.SetDefault("openai.api-key-file", "")
	v.SetDefault("openai.api-key-param", "")
	v.SetDefault("openai.base-url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", 20*time.Second)

	v.SetDefault("gemini.api-key", "")
	v.SetDefault("gemini.api-key-file", "")
	v.SetDefault("gemini.api-key-param", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout", 20*time.Second)

	v.SetDefault("ollama.base-url", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama3")
	v.SetDefault("ollama.timeout", 60*time.Second)

	v.SetDefault("chat.temperature", 0.7)
	v.SetDefault("resume.temperature", 0.2)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	return v
}

// Load reads the optional config file into v and returns the validated
// configuration. An empty file path skips file loading.
func Load(v *viper.Viper, file string) (Config, error) {
	if v == nil {
		return Config{}, errors.New("config: viper instance must not be nil")
	}
	if file = strings.TrimSpace(file); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Backend = normalizeBackend(cfg.Backend)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func normalizeBackend(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := backendAliases[name]; ok {
		return alias
	}
	return name
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendHeuristic, BackendOpenAI, BackendGemini, BackendOllama:
	default:
		return fmt.Errorf("config: unknown llm-backend %q", c.Backend)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	for name, t := range map[string]float64{"chat.temperature": c.Chat.Temperature, "resume.temperature": c.Resume.Temperature} {
		if t < 0 || t > 1 {
			return fmt.Errorf("config: %s must be within [0,1], got %v", name, t)
		}
	}
	for name, d := range map[string]time.Duration{
		"openai.timeout": c.OpenAI.Timeout,
		"gemini.timeout": c.Gemini.Timeout,
		"ollama.timeout": c.Ollama.Timeout,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive", name)
		}
	}
	return nil
}

// Model returns the model name of the selected backend, empty for the heuristic.
func (c Config) Model() string {
	switch c.Backend {
	case BackendOpenAI:
		return c.OpenAI.Model
	case BackendGemini:
		return c.Gemini.Model
	case BackendOllama:
		return c.Ollama.Model
	}
	return ""
}

// APIKeyParam returns the Parameter Store name holding the selected cloud
// backend's key, empty when none is configured.
func (c Config) APIKeyParam() string {
	switch c.Backend {
	case BackendOpenAI:
		return c.OpenAI.APIKeyParam
	case BackendGemini:
		return c.Gemini.APIKeyParam
	}
	return ""
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from config.yaml and
// environment variable overrides.
type Config struct {
	Environment    EnvironmentConfig    `mapstructure:"environment"`
	HTTPServer     HTTPServerConfig     `mapstructure:"http_server"`
	Logger         LoggerConfig         `mapstructure:"logger"`
	Database       DatabaseConfig       `mapstructure:"database"`
	LLM            LLMConfig            `mapstructure:"llm"`
	Assistant      AssistantConfig      `mapstructure:"assistant"`
	GoogleCalendar GoogleCalendarConfig `mapstructure:"google_calendar"`
}

type EnvironmentConfig struct {
	Name string `mapstructure:"name"`
}

type HTTPServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Mode     string `mapstructure:"mode"`
	Encoding string `mapstructure:"encoding"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LLMConfig configures the provider chain used for classification,
// extraction and response generation.
type LLMConfig struct {
	Providers       []ProviderConfig `mapstructure:"providers"`
	FallbackEnabled bool             `mapstructure:"fallback_enabled"`
	RetryAttempts   int              `mapstructure:"retry_attempts"`
	RetryDelay      time.Duration    `mapstructure:"retry_delay"`
	MaxTotalTimeout time.Duration    `mapstructure:"max_total_timeout"`
}

type ProviderConfig struct {
	Name     string        `mapstructure:"name"`
	Enabled  bool          `mapstructure:"enabled"`
	Priority int           `mapstructure:"priority"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// AssistantConfig tunes the orchestration pipeline: model budgets, context
// depth and per-user rate limits.
type AssistantConfig struct {
	Timezone string `mapstructure:"timezone"`

	HostedTimeout time.Duration `mapstructure:"hosted_timeout"`
	LocalTimeout  time.Duration `mapstructure:"local_timeout"`

	LightweightMaxTokens int `mapstructure:"lightweight_max_tokens"`
	FullMaxTokens        int `mapstructure:"full_max_tokens"`

	HostedHistoryDepth int `mapstructure:"hosted_history_depth"`
	LocalHistoryDepth  int `mapstructure:"local_history_depth"`

	LightweightLengthThreshold int `mapstructure:"lightweight_length_threshold"`

	OpenTaskLimit        int `mapstructure:"open_task_limit"`
	KnowledgeLimitHosted int `mapstructure:"knowledge_limit_hosted"`
	KnowledgeLimitLocal  int `mapstructure:"knowledge_limit_local"`
	KnowledgeCharBudget  int `mapstructure:"knowledge_char_budget"`

	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
}

type GoogleCalendarConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	CredentialsFile string `mapstructure:"credentials_file"`
	TokenFile       string `mapstructure:"token_file"`
	CalendarID      string `mapstructure:"calendar_id"`
}

// Load reads configuration from config.yaml (working directory or ./config)
// with environment variable overrides prefixed STUDYFLOW_.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("STUDYFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine, defaults plus env vars apply.
	}

	cfg := &Config{
		Environment: EnvironmentConfig{
			Name: v.GetString("environment.name"),
		},
		HTTPServer: HTTPServerConfig{
			Host: v.GetString("http_server.host"),
			Port: v.GetInt("http_server.port"),
			Mode: v.GetString("http_server.mode"),
		},
		Logger: LoggerConfig{
			Level:    v.GetString("logger.level"),
			Mode:     v.GetString("logger.mode"),
			Encoding: v.GetString("logger.encoding"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		LLM: LLMConfig{
			FallbackEnabled: v.GetBool("llm.fallback_enabled"),
			RetryAttempts:   v.GetInt("llm.retry_attempts"),
			RetryDelay:      v.GetDuration("llm.retry_delay"),
			MaxTotalTimeout: v.GetDuration("llm.max_total_timeout"),
		},
		Assistant: AssistantConfig{
			Timezone:                   v.GetString("assistant.timezone"),
			HostedTimeout:              v.GetDuration("assistant.hosted_timeout"),
			LocalTimeout:               v.GetDuration("assistant.local_timeout"),
			LightweightMaxTokens:       v.GetInt("assistant.lightweight_max_tokens"),
			FullMaxTokens:              v.GetInt("assistant.full_max_tokens"),
			HostedHistoryDepth:         v.GetInt("assistant.hosted_history_depth"),
			LocalHistoryDepth:          v.GetInt("assistant.local_history_depth"),
			LightweightLengthThreshold: v.GetInt("assistant.lightweight_length_threshold"),
			OpenTaskLimit:              v.GetInt("assistant.open_task_limit"),
			KnowledgeLimitHosted:       v.GetInt("assistant.knowledge_limit_hosted"),
			KnowledgeLimitLocal:        v.GetInt("assistant.knowledge_limit_local"),
			KnowledgeCharBudget:        v.GetInt("assistant.knowledge_char_budget"),
			RateLimitPerMinute:         v.GetInt("assistant.rate_limit_per_minute"),
		},
		GoogleCalendar: GoogleCalendarConfig{
			Enabled:         v.GetBool("google_calendar.enabled"),
			CredentialsFile: v.GetString("google_calendar.credentials_file"),
			TokenFile:       v.GetString("google_calendar.token_file"),
			CalendarID:      v.GetString("google_calendar.calendar_id"),
		},
	}

	providers, err := parseProviders(v)
	if err != nil {
		return nil, err
	}
	cfg.LLM.Providers = providers

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")

	v.SetDefault("http_server.host", "0.0.0.0")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")

	v.SetDefault("database.path", "studyflow.db")

	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 2)
	v.SetDefault("llm.retry_delay", 500*time.Millisecond)
	v.SetDefault("llm.max_total_timeout", 60*time.Second)

	v.SetDefault("assistant.timezone", "Asia/Tokyo")
	v.SetDefault("assistant.hosted_timeout", 30*time.Second)
	v.SetDefault("assistant.local_timeout", 120*time.Second)
	v.SetDefault("assistant.lightweight_max_tokens", 256)
	v.SetDefault("assistant.full_max_tokens", 2048)
	v.SetDefault("assistant.hosted_history_depth", 20)
	v.SetDefault("assistant.local_history_depth", 6)
	v.SetDefault("assistant.lightweight_length_threshold", 20)
	v.SetDefault("assistant.open_task_limit", 10)
	v.SetDefault("assistant.knowledge_limit_hosted", 5)
	v.SetDefault("assistant.knowledge_limit_local", 2)
	v.SetDefault("assistant.knowledge_char_budget", 4000)
	v.SetDefault("assistant.rate_limit_per_minute", 30)

	v.SetDefault("google_calendar.enabled", false)
	v.SetDefault("google_calendar.calendar_id", "primary")
}

// parseProviders reads llm.providers as a generic list so that api_key
// values can pass through expandEnvVar before use.
func parseProviders(v *viper.Viper) ([]ProviderConfig, error) {
	raw := v.Get("llm.providers")
	if raw == nil {
		return nil, nil
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("llm.providers must be a list")
	}

	providers := make([]ProviderConfig, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("llm.providers[%d] must be a map", i)
		}

		p := ProviderConfig{
			Name:     getStringFromMap(m, "name"),
			Enabled:  getBoolFromMap(m, "enabled"),
			Priority: getIntFromMap(m, "priority"),
			APIKey:   expandEnvVar(getStringFromMap(m, "api_key")),
			BaseURL:  getStringFromMap(m, "base_url"),
			Model:    getStringFromMap(m, "model"),
		}
		if s := getStringFromMap(m, "timeout"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("llm.providers[%d].timeout: %w", i, err)
			}
			p.Timeout = d
		}
		providers = append(providers, p)
	}

	return providers, nil
}

// expandEnvVar resolves ${VAR} references so secrets stay out of the
// config file.
func expandEnvVar(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		name := value[2 : len(value)-1]
		return os.Getenv(name)
	}
	return value
}

func validateLLMConfig(cfg *LLMConfig) error {
	seen := make(map[int]string)
	enabled := 0
	for _, p := range cfg.Providers {
		if !p.Enabled {
			continue
		}
		enabled++
		if p.Name == "" {
			return fmt.Errorf("llm provider with priority %d has no name", p.Priority)
		}
		if prev, dup := seen[p.Priority]; dup {
			return fmt.Errorf("llm providers %q and %q share priority %d", prev, p.Name, p.Priority)
		}
		seen[p.Priority] = p.Name
	}
	if enabled == 0 {
		return fmt.Errorf("no llm providers enabled")
	}
	return nil
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

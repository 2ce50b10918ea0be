package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/usecase"
)

// Config represents application configuration
type Config struct {
	// Feishu configuration
	Feishu FeishuConfig

	// Text generation service (OpenAI-compatible)
	Generation GenerationConfig

	// Local state
	Store StoreConfig

	// Rate limiting and reply pacing
	Responder ResponderConfig

	// Local admin API
	API APIConfig

	// Prompts configuration (loaded from YAML)
	Prompts *PromptsConfig

	// Debug mode
	Debug bool
}

// FeishuConfig contains Feishu configuration
type FeishuConfig struct {
	AppID     string
	AppSecret string
}

// GenerationConfig contains generation service configuration
type GenerationConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// StoreConfig contains state store configuration
type StoreConfig struct {
	Dir     string
	Backend string // file, sqlite
}

// ResponderConfig contains pipeline tuning
type ResponderConfig struct {
	RateLimit     int
	RateWindow    time.Duration
	ReplyDelayMin time.Duration
	ReplyDelayMax time.Duration
}

// APIConfig contains admin API configuration
type APIConfig struct {
	Port int // 0 disables the API
}

const (
	DefaultAPIPort       = 9877
	defaultReplyDelayMin = 1000
	defaultReplyDelayMax = 3000
)

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	stateDir := os.Getenv("STATE_DIR")
	if stateDir == "" {
		homeDir, _ := os.UserHomeDir()
		stateDir = filepath.Join(homeDir, ".feishu-away-bot")
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "file"
	}

	// GROQ_API_KEY is accepted for compatibility with existing deployments
	apiKey := os.Getenv("GENERATION_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	// Load prompts from YAML
	promptsConfig, err := LoadPromptsConfig(os.Getenv("PROMPTS_CONFIG_PATH"))
	if err != nil {
		fmt.Printf("[Config] %v, using default prompts\n", err)
		promptsConfig = DefaultPromptsConfig()
	}
	if owner := os.Getenv("OWNER_NAME"); owner != "" {
		promptsConfig.Persona.OwnerName = owner
	}
	if bot := os.Getenv("BOT_NAME"); bot != "" {
		promptsConfig.Persona.BotName = bot
	}

	return &Config{
		Feishu: FeishuConfig{
			AppID:     os.Getenv("FEISHU_APP_ID"),
			AppSecret: os.Getenv("FEISHU_APP_SECRET"),
		},
		Generation: GenerationConfig{
			APIKey:  apiKey,
			BaseURL: os.Getenv("GENERATION_BASE_URL"),
			Model:   os.Getenv("GENERATION_MODEL"),
		},
		Store: StoreConfig{
			Dir:     stateDir,
			Backend: backend,
		},
		Responder: ResponderConfig{
			RateLimit:     envInt("RATE_LIMIT_COUNT", usecase.DefaultRateLimit),
			RateWindow:    time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", int(usecase.DefaultRateWindow/time.Second))) * time.Second,
			ReplyDelayMin: time.Duration(envInt("REPLY_DELAY_MIN_MS", defaultReplyDelayMin)) * time.Millisecond,
			ReplyDelayMax: time.Duration(envInt("REPLY_DELAY_MAX_MS", defaultReplyDelayMax)) * time.Millisecond,
		},
		API: APIConfig{
			Port: envInt("API_PORT", DefaultAPIPort),
		},
		Prompts: promptsConfig,
		Debug:   os.Getenv("DEBUG") == "true",
	}
}

// envInt parses an integer variable, keeping def when unset or invalid
func envInt(name string, def int) int {
	if val := os.Getenv(name); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

// ToPromptConfig converts to prompt configuration
func (c *Config) ToPromptConfig() usecase.PromptConfig {
	if c.Prompts == nil {
		return usecase.DefaultPromptConfig
	}
	return c.Prompts.ToPromptConfig()
}

// Validate checks the settings needed to run the bot
func (c *Config) Validate() error {
	if c.Feishu.AppID == "" || c.Feishu.AppSecret == "" {
		return &ConfigError{Field: "FEISHU_APP_ID/FEISHU_APP_SECRET", Message: "required"}
	}
	if c.Generation.APIKey == "" {
		return &ConfigError{Field: "GENERATION_API_KEY", Message: "required (or GROQ_API_KEY)"}
	}
	return c.ValidateLocal()
}

// ValidateLocal checks the settings used by commands that only touch local state
func (c *Config) ValidateLocal() error {
	switch c.Store.Backend {
	case "file", "sqlite":
	default:
		return &ConfigError{Field: "STORE_BACKEND", Message: "must be file or sqlite"}
	}
	if c.Responder.RateLimit <= 0 {
		return &ConfigError{Field: "RATE_LIMIT_COUNT", Message: "must be positive"}
	}
	if c.Responder.RateWindow <= 0 {
		return &ConfigError{Field: "RATE_LIMIT_WINDOW_SECONDS", Message: "must be positive"}
	}
	if c.Responder.ReplyDelayMin < 0 || c.Responder.ReplyDelayMax < c.Responder.ReplyDelayMin {
		return &ConfigError{Field: "REPLY_DELAY_MIN_MS/REPLY_DELAY_MAX_MS", Message: "need 0 <= min <= max"}
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return &ConfigError{Field: "API_PORT", Message: "out of range"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

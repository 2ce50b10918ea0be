package conf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/usecase"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("STATE_DIR", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("GENERATION_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("RATE_LIMIT_COUNT", "")
	t.Setenv("REPLY_DELAY_MIN_MS", "")
	t.Setenv("API_PORT", "")
	t.Setenv("PROMPTS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("OWNER_NAME", "")
	t.Setenv("BOT_NAME", "")

	cfg := LoadFromEnv()

	if cfg.Generation.APIKey != "gsk_test" {
		t.Errorf("APIKey = %q, want GROQ_API_KEY fallback", cfg.Generation.APIKey)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Store.Backend)
	}
	if filepath.Base(cfg.Store.Dir) != ".feishu-away-bot" {
		t.Errorf("Dir = %q", cfg.Store.Dir)
	}
	if cfg.Responder.RateLimit != usecase.DefaultRateLimit || cfg.Responder.RateWindow != 10*time.Second {
		t.Errorf("rate = %d/%v", cfg.Responder.RateLimit, cfg.Responder.RateWindow)
	}
	if cfg.Responder.ReplyDelayMin != time.Second || cfg.Responder.ReplyDelayMax != 3*time.Second {
		t.Errorf("delay = %v..%v", cfg.Responder.ReplyDelayMin, cfg.Responder.ReplyDelayMax)
	}
	if cfg.API.Port != DefaultAPIPort {
		t.Errorf("Port = %d", cfg.API.Port)
	}
	if cfg.ToPromptConfig().GreetingReply != "Kya kaam hai?" {
		t.Errorf("prompts should fall back to defaults")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("GENERATION_API_KEY", "primary")
	t.Setenv("GROQ_API_KEY", "secondary")
	t.Setenv("RATE_LIMIT_COUNT", "3")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "60")
	t.Setenv("API_PORT", "0")
	t.Setenv("OWNER_NAME", "Asha")
	t.Setenv("BOT_NAME", "Echo")
	t.Setenv("PROMPTS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := LoadFromEnv()
	if cfg.Generation.APIKey != "primary" {
		t.Errorf("APIKey = %q", cfg.Generation.APIKey)
	}
	if cfg.Responder.RateLimit != 3 || cfg.Responder.RateWindow != time.Minute {
		t.Errorf("rate = %d/%v", cfg.Responder.RateLimit, cfg.Responder.RateWindow)
	}
	if cfg.API.Port != 0 {
		t.Errorf("Port = %d", cfg.API.Port)
	}
	p := cfg.ToPromptConfig()
	if p.OwnerName != "Asha" || p.BotName != "Echo" {
		t.Errorf("persona = %s/%s", p.OwnerName, p.BotName)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Feishu:     FeishuConfig{AppID: "cli_x", AppSecret: "secret"},
			Generation: GenerationConfig{APIKey: "key"},
			Store:      StoreConfig{Dir: "/tmp/x", Backend: "file"},
			Responder: ResponderConfig{
				RateLimit:     10,
				RateWindow:    10 * time.Second,
				ReplyDelayMin: time.Second,
				ReplyDelayMax: 3 * time.Second,
			},
			API: APIConfig{Port: DefaultAPIPort},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing app id", func(c *Config) { c.Feishu.AppID = "" }, "FEISHU_APP_ID/FEISHU_APP_SECRET"},
		{"missing api key", func(c *Config) { c.Generation.APIKey = "" }, "GENERATION_API_KEY"},
		{"bad backend", func(c *Config) { c.Store.Backend = "redis" }, "STORE_BACKEND"},
		{"zero limit", func(c *Config) { c.Responder.RateLimit = 0 }, "RATE_LIMIT_COUNT"},
		{"inverted delay", func(c *Config) { c.Responder.ReplyDelayMin = 5 * time.Second }, "REPLY_DELAY_MIN_MS/REPLY_DELAY_MAX_MS"},
		{"bad port", func(c *Config) { c.API.Port = 70000 }, "API_PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}
}

func TestLoadPromptsConfig_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	yaml := `persona:
  owner_name: Ravi
replies:
  greeting: "Bolo?"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPromptsConfig(path)
	if err != nil {
		t.Fatalf("LoadPromptsConfig: %v", err)
	}
	p := cfg.ToPromptConfig()
	if p.OwnerName != "Ravi" || p.GreetingReply != "Bolo?" {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.BotName != "Zero" || p.SystemPrompt != usecase.DefaultSystemPrompt {
		t.Errorf("defaults not filled: bot=%q", p.BotName)
	}
	if len(p.GreetingWords) != 7 {
		t.Errorf("GreetingWords = %v", p.GreetingWords)
	}
}

func TestLoadPromptsConfig_Errors(t *testing.T) {
	if _, err := LoadPromptsConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit path")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("persona: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPromptsConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

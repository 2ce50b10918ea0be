package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/usecase"
)

// PromptsConfig contains all prompt configurations loaded from YAML
type PromptsConfig struct {
	Persona PersonaPrompts `yaml:"persona"`
	Replies ReplyPhrases   `yaml:"replies"`
}

// PersonaPrompts describes who the bot speaks for
type PersonaPrompts struct {
	OwnerName    string `yaml:"owner_name"`
	BotName      string `yaml:"bot_name"`
	SystemPrompt string `yaml:"system_prompt"` // {{emoji}}, {{owner}} and {{bot}} are substituted
}

// ReplyPhrases contains the canned replies
type ReplyPhrases struct {
	GreetingWords      []string `yaml:"greeting_words"`
	Greeting           string   `yaml:"greeting"`
	GenerationFallback string   `yaml:"generation_fallback"`
	Error              string   `yaml:"error"`
}

// LoadPromptsConfig loads prompts configuration from YAML file
func LoadPromptsConfig(configPath string) (*PromptsConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/prompts.yaml",
			"/etc/feishu-away-bot/prompts.yaml",
		}
		// Add path relative to executable
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "prompts.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err == nil {
			data = raw
			loadedPath = p
			break
		}
	}

	if data == nil {
		if configPath != "" {
			return nil, fmt.Errorf("prompts file %s not readable", configPath)
		}
		fmt.Println("[Config] No prompts.yaml found, using defaults")
		return DefaultPromptsConfig(), nil
	}

	fmt.Printf("[Config] Loading prompts from: %s\n", loadedPath)

	var config PromptsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse prompts.yaml: %w", err)
	}

	// Fill in defaults for empty values
	config.fillDefaults()

	return &config, nil
}

// fillDefaults fills in default values for empty fields
func (c *PromptsConfig) fillDefaults() {
	defaults := DefaultPromptsConfig()

	if c.Persona.OwnerName == "" {
		c.Persona.OwnerName = defaults.Persona.OwnerName
	}
	if c.Persona.BotName == "" {
		c.Persona.BotName = defaults.Persona.BotName
	}
	if c.Persona.SystemPrompt == "" {
		c.Persona.SystemPrompt = defaults.Persona.SystemPrompt
	}

	if len(c.Replies.GreetingWords) == 0 {
		c.Replies.GreetingWords = defaults.Replies.GreetingWords
	}
	if c.Replies.Greeting == "" {
		c.Replies.Greeting = defaults.Replies.Greeting
	}
	if c.Replies.GenerationFallback == "" {
		c.Replies.GenerationFallback = defaults.Replies.GenerationFallback
	}
	if c.Replies.Error == "" {
		c.Replies.Error = defaults.Replies.Error
	}
}

// ToPromptConfig converts to the selector's prompt configuration
func (c *PromptsConfig) ToPromptConfig() usecase.PromptConfig {
	return usecase.PromptConfig{
		OwnerName:          c.Persona.OwnerName,
		BotName:            c.Persona.BotName,
		SystemPrompt:       c.Persona.SystemPrompt,
		GreetingWords:      c.Replies.GreetingWords,
		GreetingReply:      c.Replies.Greeting,
		GenerationFallback: c.Replies.GenerationFallback,
		ErrorReply:         c.Replies.Error,
	}
}

// DefaultPromptsConfig returns the default prompts configuration
func DefaultPromptsConfig() *PromptsConfig {
	d := usecase.DefaultPromptConfig
	return &PromptsConfig{
		Persona: PersonaPrompts{
			OwnerName:    d.OwnerName,
			BotName:      d.BotName,
			SystemPrompt: d.SystemPrompt,
		},
		Replies: ReplyPhrases{
			GreetingWords:      append([]string(nil), d.GreetingWords...),
			Greeting:           d.GreetingReply,
			GenerationFallback: d.GenerationFallback,
			Error:              d.ErrorReply,
		},
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

// PromptConfig contains the persona prompt and canned phrases
type PromptConfig struct {
	OwnerName          string
	BotName            string
	SystemPrompt       string // Template; {{emoji}}, {{owner}} and {{bot}} are substituted
	GreetingWords      []string
	GreetingReply      string
	GenerationFallback string
	ErrorReply         string
}

// DefaultPromptConfig is the default prompt configuration
var DefaultPromptConfig = PromptConfig{
	OwnerName:          "Sunny",
	BotName:            "Zero",
	SystemPrompt:       DefaultSystemPrompt,
	GreetingWords:      domain.DefaultGreetingWords,
	GreetingReply:      "Kya kaam hai?",
	GenerationFallback: "Sorry, I could not generate a response.",
	ErrorReply:         "Sorry, I encountered an error. Please try again.",
}

// DefaultSystemPrompt is the persona used for generated replies
const DefaultSystemPrompt = `You are {{bot}}, an auto-reply bot for {{owner}}, who does coding and AI/ML work. {{owner}} is currently offline/busy.

YOUR ROLE: Only acknowledge messages briefly and inform that {{owner}} will reply later.

LANGUAGE MATCHING:
- Detect the user's language style from their message
- If they write in English, reply in English
- If they write in Hindi (Devanagari), reply in Hindi
- If they write in Hinglish (Roman Hindi-English mix), reply in Hinglish
- Match their tone and formality level

EMOJI USAGE:
- Add the emoji "{{emoji}}" at the start of your response (already provided based on time of day)
- Keep responses friendly and warm

RULES:
- Keep responses VERY SHORT (1 sentence)
- Acknowledge their message
- Tell them {{owner}} will reply soon
- If asked who you are, say "Main {{bot}} hoon, {{owner}} ka auto-reply bot"
- DO NOT offer help or ask questions
- DO NOT give advice

EXAMPLE RESPONSES:
English: "Got your message! {{owner}} will reply soon."
Hinglish: "Message mil gaya! {{owner}} jaldi reply karenge."
Hindi: "संदेश मिल गया! {{owner}} जल्दी जवाब देंगे।"
Who are you: "Main {{bot}} hoon, {{owner}} ka auto-reply bot."

Remember: You are {{bot}}. Just acknowledge and inform. {{owner}} will handle everything.`

// RenderSystemPrompt fills in the persona template
func (c PromptConfig) RenderSystemPrompt(emoji string) string {
	r := strings.NewReplacer(
		"{{emoji}}", emoji,
		"{{owner}}", c.OwnerName,
		"{{bot}}", c.BotName,
	)
	return r.Replace(c.SystemPrompt)
}

// SelectorUsecase decides how to answer a message
type SelectorUsecase struct {
	resources  repo.ResourceRepo
	generation repo.GenerationRepo
	memory     *MemoryUsecase
	prompts    PromptConfig
}

// NewSelectorUsecase creates a new reply selector
func NewSelectorUsecase(
	resources repo.ResourceRepo,
	generation repo.GenerationRepo,
	memory *MemoryUsecase,
	prompts PromptConfig,
) *SelectorUsecase {
	return &SelectorUsecase{
		resources:  resources,
		generation: generation,
		memory:     memory,
		prompts:    prompts,
	}
}

// Select picks the reply branch in priority order: custom away message,
// greeting, generated. The sender's user turn must already be in memory.
func (uc *SelectorUsecase) Select(ctx context.Context, sender, text string, now time.Time) (domain.Decision, error) {
	emoji := domain.TimeEmoji(now.Hour())

	if d, ok := uc.customAway(ctx, emoji); ok {
		return d, nil
	}
	if d, ok := uc.greeting(text, emoji); ok {
		return d, nil
	}
	return uc.generated(ctx, sender, emoji)
}

func (uc *SelectorUsecase) customAway(ctx context.Context, emoji string) (domain.Decision, bool) {
	away, err := uc.resources.AwayMessage(ctx)
	if err != nil {
		fmt.Printf("[Selector] Error reading away message: %v\n", err)
		return domain.Decision{}, false
	}
	if away == "" {
		return domain.Decision{}, false
	}
	return domain.Decision{
		Kind:  domain.ReplyCustomAway,
		Emoji: emoji,
		Text:  emoji + " " + away,
	}, true
}

func (uc *SelectorUsecase) greeting(text, emoji string) (domain.Decision, bool) {
	if !domain.IsGreeting(text, uc.prompts.GreetingWords) {
		return domain.Decision{}, false
	}
	return domain.Decision{
		Kind:  domain.ReplyGreeting,
		Emoji: emoji,
		Text:  emoji + " " + uc.prompts.GreetingReply,
	}, true
}

func (uc *SelectorUsecase) generated(ctx context.Context, sender, emoji string) (domain.Decision, error) {
	history := uc.memory.HistoryFor(sender)

	messages := make([]domain.Turn, 0, len(history)+1)
	messages = append(messages, domain.Turn{
		Role:    domain.RoleSystem,
		Content: uc.prompts.RenderSystemPrompt(emoji),
	})
	messages = append(messages, history...)

	reply, err := uc.generation.Generate(ctx, messages)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("generate reply: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		reply = uc.prompts.GenerationFallback
	}

	return domain.Decision{
		Kind:  domain.ReplyGenerated,
		Emoji: emoji,
		Text:  reply,
	}, nil
}

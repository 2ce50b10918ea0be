package data

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

const (
	DefaultGenerationBaseURL = "https://api.groq.com/openai/v1"
	DefaultGenerationModel   = "llama-3.3-70b-versatile"

	generationTemperature = 0.7
	generationMaxTokens   = 500
)

// generationRepo calls an OpenAI-compatible chat completion endpoint
type generationRepo struct {
	client *openai.Client
	model  string
}

// NewGenerationRepo creates the generation client. Empty baseURL and model use the Groq defaults.
func NewGenerationRepo(apiKey, baseURL, model string) repo.GenerationRepo {
	if baseURL == "" {
		baseURL = DefaultGenerationBaseURL
	}
	if model == "" {
		model = DefaultGenerationModel
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &generationRepo{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Generate returns the first choice's content, or "" when the service returns no choices
func (r *generationRepo) Generate(ctx context.Context, messages []domain.Turn) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    toChatMessages(messages),
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func toChatMessages(turns []domain.Turn) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		switch t.Role {
		case domain.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case domain.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	return out
}

package repo

import (
	"context"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
)

// GenerationRepo is the hosted text-generation service
type GenerationRepo interface {
	// Generate returns the generated reply for the ordered role-tagged messages.
	// An empty string with nil error means the service produced no content.
	Generate(ctx context.Context, messages []domain.Turn) (string, error)
}

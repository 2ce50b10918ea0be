package repo

import (
	"context"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
)

// MessageRepo is the outbound side of the chat transport
type MessageRepo interface {
	// Reply sends text as a reply to the originating message
	Reply(ctx context.Context, msg *domain.InboundMessage, text string) error
}

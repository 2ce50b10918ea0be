package data

import (
	"context"
	"fmt"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

// ReplySender is the transport capability the message repository needs
type ReplySender interface {
	Reply(ctx context.Context, messageID, text string) error
	SendText(ctx context.Context, chatID, text string) error
}

// feishuRepo implements the Feishu message repository
type feishuRepo struct {
	client ReplySender
}

// NewFeishuRepo creates a new Feishu repository
func NewFeishuRepo(client ReplySender) repo.MessageRepo {
	return &feishuRepo{client: client}
}

// Reply answers msg in its chat. Messages without an id are sent to the chat directly.
func (r *feishuRepo) Reply(ctx context.Context, msg *domain.InboundMessage, text string) error {
	if msg.ID != "" {
		return r.client.Reply(ctx, msg.ID, text)
	}
	if msg.ChatID == "" {
		return fmt.Errorf("no message id or chat id to reply to")
	}
	return r.client.SendText(ctx, msg.ChatID, text)
}

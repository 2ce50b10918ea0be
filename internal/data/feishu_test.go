package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
)

type fakeSender struct {
	replied map[string]string
	sent    map[string]string
}

func (f *fakeSender) Reply(ctx context.Context, messageID, text string) error {
	f.replied[messageID] = text
	return nil
}

func (f *fakeSender) SendText(ctx context.Context, chatID, text string) error {
	f.sent[chatID] = text
	return nil
}

func TestFeishuRepo_Reply(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{replied: map[string]string{}, sent: map[string]string{}}
	r := NewFeishuRepo(sender)

	require.NoError(t, r.Reply(ctx, &domain.InboundMessage{ID: "om_1", ChatID: "oc_1"}, "hi"))
	assert.Equal(t, "hi", sender.replied["om_1"])

	require.NoError(t, r.Reply(ctx, &domain.InboundMessage{ChatID: "oc_2"}, "yo"))
	assert.Equal(t, "yo", sender.sent["oc_2"])

	assert.Error(t, r.Reply(ctx, &domain.InboundMessage{}, "lost"))
}

package feishu

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	"github.com/larksuite/oapi-sdk-go/v3/event/dispatcher"
	larkim "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	larkws "github.com/larksuite/oapi-sdk-go/v3/ws"
)

const (
	ChatTypeP2P   = "p2p"
	ChatTypeGroup = "group"

	// SenderTypeApp marks messages sent by an app, including this bot
	SenderTypeApp = "app"
)

// Message represents a received Feishu message
type Message struct {
	ChatID     string
	MsgID      string
	MsgType    string // text, post
	ChatType   string // p2p (private), group
	Content    string // Text content (extracted from text and post messages)
	SenderID   string // open_id of the sender
	SenderType string // user, app
	CreateTime time.Time
}

// IsGroup reports whether the message came from a group chat
func (m *Message) IsGroup() bool {
	return m.ChatType == ChatTypeGroup
}

// FromApp reports whether the message was sent by an app rather than a person
func (m *Message) FromApp() bool {
	return m.SenderType == SenderTypeApp
}

// MessageHandler is the callback for received messages
type MessageHandler func(msg *Message)

// Client is the Feishu API client
type Client struct {
	appID     string
	appSecret string
	logLevel  larkcore.LogLevel
	larkCli   *lark.Client
	wsCli     *larkws.Client
	onMessage MessageHandler
	cancel    context.CancelFunc
}

// NewClient creates a new Feishu client
func NewClient(appID, appSecret string, debug bool) *Client {
	level := larkcore.LogLevelInfo
	if debug {
		level = larkcore.LogLevelDebug
	}
	return &Client{
		appID:     appID,
		appSecret: appSecret,
		logLevel:  level,
		larkCli:   lark.NewClient(appID, appSecret, lark.WithLogLevel(level)),
	}
}

// OnMessage sets the message handler
func (c *Client) OnMessage(handler MessageHandler) {
	c.onMessage = handler
}

// Start connects to Feishu via WebSocket and blocks until ctx is done or the connection fails
func (c *Client) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	// Must return quickly so the SDK can ACK, otherwise Feishu redelivers the event
	eventHandler := dispatcher.NewEventDispatcher("", "").
		OnP2MessageReceiveV1(func(_ context.Context, event *larkim.P2MessageReceiveV1) error {
			go c.handleEvent(event)
			return nil
		})

	c.wsCli = larkws.NewClient(c.appID, c.appSecret,
		larkws.WithEventHandler(eventHandler),
		larkws.WithLogLevel(c.logLevel),
	)

	fmt.Println("[Feishu] Starting WebSocket connection...")
	return c.wsCli.Start(ctx)
}

// Stop disconnects from Feishu
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Client) handleEvent(event *larkim.P2MessageReceiveV1) {
	msg, ok := ParseEvent(event)
	if !ok {
		return
	}
	fmt.Printf("[Feishu] Received %s from %s chat %s: %s\n", msg.MsgType, msg.ChatType, msg.ChatID, truncate(msg.Content, 50))
	if c.onMessage != nil {
		c.onMessage(msg)
	}
}

// ParseEvent converts a receive event into a Message.
// Events without a message body or with an unsupported type are dropped.
func ParseEvent(event *larkim.P2MessageReceiveV1) (*Message, bool) {
	if event == nil || event.Event == nil || event.Event.Message == nil {
		return nil, false
	}
	raw := event.Event.Message

	msg := &Message{
		ChatID:   deref(raw.ChatId),
		MsgID:    deref(raw.MessageId),
		MsgType:  deref(raw.MessageType),
		ChatType: deref(raw.ChatType),
	}

	// Create time is a millisecond Unix timestamp
	if ts, err := strconv.ParseInt(deref(raw.CreateTime), 10, 64); err == nil {
		msg.CreateTime = time.UnixMilli(ts)
	}

	if sender := event.Event.Sender; sender != nil {
		if sender.SenderId != nil {
			msg.SenderID = deref(sender.SenderId.OpenId)
		}
		msg.SenderType = deref(sender.SenderType)
	}

	mentionMap := make(map[string]string)
	for _, mention := range raw.Mentions {
		if mention != nil && mention.Key != nil && mention.Name != nil {
			mentionMap[*mention.Key] = *mention.Name
		}
	}

	switch msg.MsgType {
	case "text":
		msg.Content = parseTextContent(deref(raw.Content), mentionMap)
	case "post":
		msg.Content = parsePostContent(deref(raw.Content), mentionMap)
	default:
		fmt.Printf("[Feishu] Unsupported message type: %s\n", msg.MsgType)
		return nil, false
	}

	return msg, true
}

// parseTextContent extracts text from a text message and resolves mention placeholders
func parseTextContent(content string, mentionMap map[string]string) string {
	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return ""
	}
	return replaceMentions(parsed.Text, mentionMap)
}

// parsePostContent flattens a rich text message into lines of plain text
func parsePostContent(content string, mentionMap map[string]string) string {
	var parsed struct {
		Title   string `json:"title"`
		Content [][]struct {
			Tag    string `json:"tag"`
			Text   string `json:"text,omitempty"`
			UserID string `json:"user_id,omitempty"` // for "at" tags
		} `json:"content"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return ""
	}

	var lines []string
	if parsed.Title != "" {
		lines = append(lines, parsed.Title)
	}
	for _, line := range parsed.Content {
		var parts []string
		for _, elem := range line {
			switch elem.Tag {
			case "text":
				if elem.Text != "" {
					parts = append(parts, elem.Text)
				}
			case "at":
				if elem.UserID == "" {
					continue
				}
				if name, ok := mentionMap[elem.UserID]; ok {
					parts = append(parts, "@"+name)
				} else {
					parts = append(parts, "@"+elem.UserID)
				}
			}
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, ""))
		}
	}

	return replaceMentions(strings.Join(lines, "\n"), mentionMap)
}

// replaceMentions replaces mention placeholders (@_user_1, @_user_2, etc.) with real names
func replaceMentions(text string, mentionMap map[string]string) string {
	for key, name := range mentionMap {
		text = strings.ReplaceAll(text, key, "@"+name)
	}
	return text
}

func textContent(text string) string {
	contentJSON, _ := json.Marshal(map[string]string{"text": text})
	return string(contentJSON)
}

// Reply sends a text reply to a message; it lands in the same chat as the original
func (c *Client) Reply(ctx context.Context, messageID, text string) error {
	req := larkim.NewReplyMessageReqBuilder().
		MessageId(messageID).
		Body(larkim.NewReplyMessageReqBodyBuilder().
			MsgType(larkim.MsgTypeText).
			Content(textContent(text)).
			Build()).
		Build()

	resp, err := c.larkCli.Im.Message.Reply(ctx, req)
	if err != nil {
		return fmt.Errorf("reply message failed: %w", err)
	}
	if !resp.Success() {
		return fmt.Errorf("reply message error: %s", resp.Msg)
	}

	fmt.Printf("[Feishu] Replied to %s\n", messageID)
	return nil
}

// SendText sends a text message to a chat
func (c *Client) SendText(ctx context.Context, chatID, text string) error {
	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(larkim.ReceiveIdTypeChatId).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(chatID).
			MsgType(larkim.MsgTypeText).
			Content(textContent(text)).
			Build()).
		Build()

	resp, err := c.larkCli.Im.Message.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("send message failed: %w", err)
	}
	if !resp.Success() {
		return fmt.Errorf("send message error: %s", resp.Msg)
	}

	fmt.Printf("[Feishu] Message sent to %s\n", chatID)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

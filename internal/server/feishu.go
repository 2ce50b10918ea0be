package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/infra/feishu"
	"github.com/DevRickLin/feishu-away-bot/internal/service"
)

// Transport delivers inbound Feishu messages until ctx is done
type Transport interface {
	OnMessage(handler feishu.MessageHandler)
	Start(ctx context.Context) error
	Stop()
}

// MessageHandler is the pipeline entry point
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg *domain.InboundMessage) error
}

// FeishuServer feeds Feishu private messages into the responder
type FeishuServer struct {
	transport Transport
	responder MessageHandler
	scheduler *service.SummaryScheduler

	mu     sync.Mutex // orders cancel against wg.Add
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup // in-flight messages
}

// NewFeishuServer creates a new Feishu server; scheduler may be nil
func NewFeishuServer(transport Transport, responder MessageHandler, scheduler *service.SummaryScheduler) *FeishuServer {
	return &FeishuServer{
		transport: transport,
		responder: responder,
		scheduler: scheduler,
	}
}

// Start runs the scheduler and the transport; it blocks until ctx is done or the transport fails
func (s *FeishuServer) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	if s.scheduler != nil {
		s.scheduler.Start(s.ctx)
	}

	s.transport.OnMessage(s.handleMessage)
	return s.transport.Start(s.ctx)
}

// Stop stops accepting messages and waits for in-flight ones to finish
func (s *FeishuServer) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.transport.Stop()
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.wg.Wait()
}

// handleMessage handles Feishu messages
func (s *FeishuServer) handleMessage(msg *feishu.Message) {
	s.mu.Lock()
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	if err := s.responder.HandleMessage(ctx, ToInbound(msg, time.Now())); err != nil {
		fmt.Printf("[Server] Handle message error: %v\n", err)
	}
}

// ToInbound maps a Feishu message onto the transport-neutral inbound message.
// Messages sent by apps (including this bot) count as the owner's own messages.
func ToInbound(msg *feishu.Message, received time.Time) *domain.InboundMessage {
	at := msg.CreateTime
	if at.IsZero() {
		at = received
	}
	return &domain.InboundMessage{
		ID:         msg.MsgID,
		ChatID:     msg.ChatID,
		From:       msg.SenderID,
		Body:       msg.Content,
		FromMe:     msg.FromApp(),
		IsGroup:    msg.IsGroup(),
		ReceivedAt: at,
	}
}

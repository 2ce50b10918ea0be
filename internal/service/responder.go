package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/usecase"
)

// DelayFunc waits before a reply is recorded and delivered
type DelayFunc func(ctx context.Context) error

// RandomDelay waits a uniformly random duration in [min, max], or until ctx is done
func RandomDelay(min, max time.Duration) DelayFunc {
	return func(ctx context.Context) error {
		d := min
		if max > min {
			d += time.Duration(rand.Int64N(int64(max-min) + 1))
		}
		if d <= 0 {
			return ctx.Err()
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}

// ResponderDeps groups the collaborators of ResponderService
type ResponderDeps struct {
	Dedup       *usecase.DedupGuard
	Limiter     *usecase.RateLimiter
	Memory      *usecase.MemoryUsecase
	Stats       *usecase.StatsUsecase
	Categorizer *usecase.CategorizerUsecase
	Schedule    *usecase.ScheduleUsecase
	Selector    *usecase.SelectorUsecase
	Resources   repo.ResourceRepo
	MessageRepo repo.MessageRepo
	ErrorReply  string
}

// ResponderService runs the away-reply pipeline for inbound private messages
type ResponderService struct {
	dedup       *usecase.DedupGuard
	limiter     *usecase.RateLimiter
	memory      *usecase.MemoryUsecase
	stats       *usecase.StatsUsecase
	categorizer *usecase.CategorizerUsecase
	schedule    *usecase.ScheduleUsecase
	selector    *usecase.SelectorUsecase
	resources   repo.ResourceRepo
	messageRepo repo.MessageRepo
	errorReply  string

	clock func() time.Time
	delay DelayFunc

	// Per-sender locks serialize handling of one sender's messages
	locksMu     sync.Mutex
	senderLocks map[string]*sync.Mutex
}

// NewResponderService creates the pipeline with no reply delay; see SetDelay
func NewResponderService(deps ResponderDeps) *ResponderService {
	errorReply := deps.ErrorReply
	if errorReply == "" {
		errorReply = usecase.DefaultPromptConfig.ErrorReply
	}
	return &ResponderService{
		dedup:       deps.Dedup,
		limiter:     deps.Limiter,
		memory:      deps.Memory,
		stats:       deps.Stats,
		categorizer: deps.Categorizer,
		schedule:    deps.Schedule,
		selector:    deps.Selector,
		resources:   deps.Resources,
		messageRepo: deps.MessageRepo,
		errorReply:  errorReply,
		clock:       time.Now,
		delay:       RandomDelay(0, 0),
		senderLocks: make(map[string]*sync.Mutex),
	}
}

// SetClock replaces the time source
func (s *ResponderService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SetDelay sets the wait applied before each reply
func (s *ResponderService) SetDelay(delay DelayFunc) {
	s.delay = delay
}

func (s *ResponderService) lockSender(sender string) func() {
	s.locksMu.Lock()
	l, ok := s.senderLocks[sender]
	if !ok {
		l = &sync.Mutex{}
		s.senderLocks[sender] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// HandleMessage processes one inbound message end to end.
// Rejections are silent and return nil. A processing failure triggers one
// apology reply and is returned after it has been logged.
func (s *ResponderService) HandleMessage(ctx context.Context, msg *domain.InboundMessage) error {
	if ignore, reason := msg.ShouldIgnore(); ignore {
		fmt.Printf("[Responder] Ignoring message %s: %s\n", msg.ID, reason)
		return nil
	}

	if msg.ID != "" && s.dedup.CheckAndMark(msg.ID) {
		fmt.Printf("[Responder] Duplicate message ignored: %s\n", msg.ID)
		return nil
	}

	unlock := s.lockSender(msg.From)
	defer unlock()

	trace := uuid.NewString()[:8]
	now := s.clock()

	if err := s.resources.AppendTranscript(ctx, now, msg.From, msg.Body); err != nil {
		fmt.Printf("[Responder] [%s] Failed to append transcript: %v\n", trace, err)
	}

	if s.schedule != nil && !s.schedule.Active(now.Hour()) {
		fmt.Printf("[Responder] [%s] Outside active hours, not replying to %s\n", trace, msg.From)
		return nil
	}

	if adm := s.limiter.Admit(msg.From, now); !adm.Allowed {
		fmt.Printf("[Responder] [%s] Rate limited %s (%d in window, resets %s)\n",
			trace, msg.From, adm.Count, adm.ResetAt.Format(time.TimeOnly))
		return nil
	}

	if _, err := s.stats.Record(ctx, now); err != nil {
		fmt.Printf("[Responder] [%s] Failed to save stats: %v\n", trace, err)
	}

	fmt.Printf("[Responder] [%s] Message from %s: %s\n", trace, msg.From, truncate(msg.Body, 50))

	if err := s.respond(ctx, trace, msg, now); err != nil {
		if ctx.Err() != nil {
			fmt.Printf("[Responder] [%s] Cancelled: %v\n", trace, err)
			return err
		}
		fmt.Printf("[Responder] [%s] Error processing message: %v\n", trace, err)
		if ferr := s.messageRepo.Reply(ctx, msg, s.errorReply); ferr != nil {
			fmt.Printf("[Responder] [%s] Failed to send error reply: %v\n", trace, ferr)
		}
		return err
	}
	return nil
}

func (s *ResponderService) respond(ctx context.Context, trace string, msg *domain.InboundMessage, now time.Time) error {
	s.memory.AppendUser(msg.From, msg.Body)
	s.flushMemory(ctx, trace)

	if c, err := s.categorizer.Classify(ctx, msg.From, msg.Body, now); err != nil {
		fmt.Printf("[Responder] [%s] Failed to save categories: %v\n", trace, err)
	} else {
		fmt.Printf("[Responder] [%s] Category: %s (keyword=%q)\n", trace, c.Category, c.Keyword)
	}

	decision, err := s.selector.Select(ctx, msg.From, msg.Body, now)
	if err != nil {
		return err
	}
	if err := s.delay(ctx); err != nil {
		return fmt.Errorf("reply delay: %w", err)
	}

	s.memory.AppendAssistant(msg.From, decision.Text)
	s.flushMemory(ctx, trace)

	if err := s.messageRepo.Reply(ctx, msg, decision.Text); err != nil {
		return fmt.Errorf("deliver reply: %w", err)
	}
	fmt.Printf("[Responder] [%s] Sent %s reply to %s\n", trace, decision.Kind, msg.From)
	return nil
}

// flushMemory persists history; on failure the in-memory history stays
// authoritative and the next successful flush repairs the file
func (s *ResponderService) flushMemory(ctx context.Context, trace string) {
	if err := s.memory.Flush(ctx); err != nil {
		fmt.Printf("[Responder] [%s] Failed to save history: %v\n", trace, err)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

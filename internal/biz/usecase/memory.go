package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

// MemoryUsecase keeps the bounded per-sender conversation log that feeds generation
type MemoryUsecase struct {
	store    repo.StateStore
	maxTurns int

	mu    sync.RWMutex
	convs domain.Conversations
}

// NewMemoryUsecase creates the conversation memory, loading persisted history
func NewMemoryUsecase(ctx context.Context, store repo.StateStore, maxTurns int) *MemoryUsecase {
	if maxTurns <= 0 {
		maxTurns = domain.MaxHistoryTurns
	}

	convs := make(domain.Conversations)
	if loadState(ctx, store, repo.KeyConversationHistory, &convs) && convs != nil {
		fmt.Printf("[Memory] Loaded conversation history for %d senders\n", len(convs))
	} else {
		convs = make(domain.Conversations)
	}
	for sender, h := range convs {
		convs[sender] = h.Truncate(maxTurns)
	}

	return &MemoryUsecase{
		store:    store,
		maxTurns: maxTurns,
		convs:    convs,
	}
}

// AppendUser records an inbound turn
func (uc *MemoryUsecase) AppendUser(sender, text string) {
	uc.append(sender, domain.Turn{Role: domain.RoleUser, Content: text})
}

// AppendAssistant records a reply turn
func (uc *MemoryUsecase) AppendAssistant(sender, text string) {
	uc.append(sender, domain.Turn{Role: domain.RoleAssistant, Content: text})
}

func (uc *MemoryUsecase) append(sender string, turn domain.Turn) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.convs[sender] = uc.convs[sender].Append(turn, uc.maxTurns)
}

// HistoryFor returns a copy of the sender's retained turns, oldest first
func (uc *MemoryUsecase) HistoryFor(sender string) domain.History {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.convs[sender].Clone()
}

// Senders lists senders with history, sorted
func (uc *MemoryUsecase) Senders() []string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	senders := make([]string, 0, len(uc.convs))
	for s := range uc.convs {
		senders = append(senders, s)
	}
	sort.Strings(senders)
	return senders
}

// Flush persists all conversations
func (uc *MemoryUsecase) Flush(ctx context.Context) error {
	uc.mu.RLock()
	snapshot := make(domain.Conversations, len(uc.convs))
	for s, h := range uc.convs {
		snapshot[s] = h.Clone()
	}
	uc.mu.RUnlock()

	if err := uc.store.Save(ctx, repo.KeyConversationHistory, snapshot); err != nil {
		return fmt.Errorf("save conversation history: %w", err)
	}
	return nil
}

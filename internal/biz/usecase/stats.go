package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

// StatsUsecase keeps the running message totals
type StatsUsecase struct {
	store repo.StateStore

	mu    sync.Mutex
	stats domain.MessageStats
}

// NewStatsUsecase loads persisted stats, starting fresh at now when none exist
func NewStatsUsecase(ctx context.Context, store repo.StateStore, now time.Time) *StatsUsecase {
	stats := domain.NewMessageStats(now)
	if !loadState(ctx, store, repo.KeyStats, &stats) {
		stats = domain.NewMessageStats(now)
	}
	return &StatsUsecase{store: store, stats: stats}
}

// Record counts an accepted message and persists immediately.
// The in-memory counter advances even when the write fails.
func (uc *StatsUsecase) Record(ctx context.Context, now time.Time) (domain.MessageStats, error) {
	uc.mu.Lock()
	uc.stats.Record(now)
	snapshot := uc.stats
	uc.mu.Unlock()

	if err := uc.store.Save(ctx, repo.KeyStats, snapshot); err != nil {
		return snapshot, fmt.Errorf("save stats: %w", err)
	}
	return snapshot, nil
}

// Snapshot returns the current totals
func (uc *StatsUsecase) Snapshot() domain.MessageStats {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.stats
}

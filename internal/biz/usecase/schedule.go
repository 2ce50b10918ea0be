package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

// ScheduleUsecase holds the active-hours window
type ScheduleUsecase struct {
	store repo.StateStore

	mu       sync.RWMutex
	schedule domain.Schedule
}

// NewScheduleUsecase loads the persisted schedule; anything missing or invalid means disabled
func NewScheduleUsecase(ctx context.Context, store repo.StateStore) *ScheduleUsecase {
	s := domain.DefaultSchedule()
	if !loadState(ctx, store, repo.KeySchedule, &s) || !s.Valid() {
		s = domain.DefaultSchedule()
	}
	return &ScheduleUsecase{store: store, schedule: s}
}

// Get returns the current schedule
func (uc *ScheduleUsecase) Get() domain.Schedule {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.schedule
}

// Set replaces the schedule and persists it
func (uc *ScheduleUsecase) Set(ctx context.Context, s domain.Schedule) error {
	if !s.Valid() {
		return fmt.Errorf("invalid schedule: hours must be within 0-23 (got %d-%d)", s.StartHour, s.EndHour)
	}
	uc.mu.Lock()
	uc.schedule = s
	uc.mu.Unlock()

	if err := uc.store.Save(ctx, repo.KeySchedule, s); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// Active reports whether replies are enabled at the given hour
func (uc *ScheduleUsecase) Active(hour int) bool {
	return uc.Get().IsActive(hour)
}

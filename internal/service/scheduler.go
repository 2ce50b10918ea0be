package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/usecase"
)

const (
	summaryHour   = 23
	summaryMinute = 59
)

// NextRun returns the next local 23:59:00 strictly after now
func NextRun(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), summaryHour, summaryMinute, 0, 0, now.Location())
	if !now.Before(run) {
		run = time.Date(now.Year(), now.Month(), now.Day()+1, summaryHour, summaryMinute, 0, 0, now.Location())
	}
	return run
}

// SummaryScheduler writes the daily summary once per day at 23:59 local time
type SummaryScheduler struct {
	summaryUC *usecase.SummaryUsecase
	clock     func() time.Time
	next      func(now time.Time) time.Time

	mu       sync.Mutex
	lastDate string // date of the last scheduled report

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSummaryScheduler creates a new summary scheduler
func NewSummaryScheduler(summaryUC *usecase.SummaryUsecase) *SummaryScheduler {
	return &SummaryScheduler{
		summaryUC: summaryUC,
		clock:     time.Now,
		next:      NextRun,
	}
}

// Start starts the scheduler
func (s *SummaryScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop(ctx)

	fmt.Printf("[Scheduler] Started, next summary at %s\n", s.next(s.clock()).Format(time.DateTime))
}

// Stop stops the scheduler
func (s *SummaryScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	fmt.Println("[Scheduler] Stopped")
}

func (s *SummaryScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	for {
		now := s.clock()
		timer := time.NewTimer(s.next(now).Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runScheduled(ctx, s.clock())
		}
	}
}

// runScheduled writes the report for now's date unless one was already written for it
func (s *SummaryScheduler) runScheduled(ctx context.Context, now time.Time) bool {
	date := now.Format(time.DateOnly)

	s.mu.Lock()
	if s.lastDate == date {
		s.mu.Unlock()
		return false
	}
	s.lastDate = date
	s.mu.Unlock()

	if _, err := s.RunNow(ctx, now); err != nil {
		fmt.Printf("[Scheduler] %v\n", err)
	}
	return true
}

// RunNow writes the report for now's date immediately
func (s *SummaryScheduler) RunNow(ctx context.Context, now time.Time) (string, error) {
	location, err := s.summaryUC.Write(ctx, now)
	if err != nil {
		return "", err
	}
	fmt.Printf("[Scheduler] Daily summary written to %s\n", location)
	return location, nil
}

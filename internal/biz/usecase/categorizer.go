package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

// CategorizerUsecase files each message under a category and keeps the bounded log
type CategorizerUsecase struct {
	store     repo.StateStore
	resources repo.ResourceRepo

	mu  sync.Mutex
	log domain.CategoryLog
	vip domain.VIPList
}

// NewCategorizerUsecase loads the category log and the VIP list
func NewCategorizerUsecase(ctx context.Context, store repo.StateStore, resources repo.ResourceRepo) *CategorizerUsecase {
	log := domain.NewCategoryLog()
	if !loadState(ctx, store, repo.KeyCategories, &log) {
		log = domain.NewCategoryLog()
	}

	uc := &CategorizerUsecase{
		store:     store,
		resources: resources,
		log:       log.Normalize(),
	}
	uc.ReloadVIP(ctx)
	return uc
}

// ReloadVIP re-reads the VIP list; on failure the previous list is kept
func (uc *CategorizerUsecase) ReloadVIP(ctx context.Context) {
	vip, err := uc.resources.VIPList(ctx)
	if err != nil {
		fmt.Printf("[Categorizer] Failed to load VIP contacts: %v\n", err)
		return
	}
	uc.mu.Lock()
	uc.vip = vip
	uc.mu.Unlock()
	if len(vip) > 0 {
		fmt.Printf("[Categorizer] Loaded %d VIP contacts\n", len(vip))
	}
}

// IsVIP checks the sender against the VIP list
func (uc *CategorizerUsecase) IsVIP(sender string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.vip.Matches(sender)
}

// Classification is the outcome of Classify
type Classification struct {
	Category domain.Category
	Keyword  domain.Keyword
}

// Classify detects the keyword, assigns a category, appends to the log and persists.
// The classification is returned even when persisting fails.
func (uc *CategorizerUsecase) Classify(ctx context.Context, sender, message string, now time.Time) (Classification, error) {
	keyword := domain.DetectKeyword(message)

	uc.mu.Lock()
	category := domain.Categorize(keyword, sender, uc.vip.Matches(sender))
	uc.log.Add(category, domain.CategoryEntry{
		Timestamp: now,
		Sender:    sender,
		Message:   message,
		Keyword:   keyword,
	})
	snapshot := uc.snapshotLocked()
	uc.mu.Unlock()

	result := Classification{Category: category, Keyword: keyword}
	if err := uc.store.Save(ctx, repo.KeyCategories, snapshot); err != nil {
		return result, fmt.Errorf("save categories: %w", err)
	}
	return result, nil
}

// Recent returns up to n latest entries of a category
func (uc *CategorizerUsecase) Recent(c domain.Category, n int) []domain.CategoryEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.log.Recent(c, n)
}

// Snapshot returns a deep copy of the log
func (uc *CategorizerUsecase) Snapshot() domain.CategoryLog {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshotLocked()
}

func (uc *CategorizerUsecase) snapshotLocked() domain.CategoryLog {
	out := make(domain.CategoryLog, len(uc.log))
	for c := range uc.log {
		out[c] = uc.log.Recent(c, -1)
	}
	return out
}

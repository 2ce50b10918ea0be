package usecase

import (
	"context"
	"fmt"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

// loadState loads key into v. Missing or unreadable state leaves v untouched,
// so callers pre-fill v with the documented default.
func loadState(ctx context.Context, store repo.StateStore, key string, v any) bool {
	found, err := store.Load(ctx, key, v)
	if err != nil {
		fmt.Printf("[State] Failed to load %s, using defaults: %v\n", key, err)
		return false
	}
	return found
}

package repo

import "context"

// State keys
const (
	KeyConversationHistory = "conversation_history"
	KeyStats               = "bot_stats"
	KeyCategories          = "categorized_messages"
	KeySchedule            = "schedule"
)

// StateStore is a key-value store for JSON-encodable state slices.
// The backing medium (flat files, SQLite) is swappable.
type StateStore interface {
	// Load decodes the value stored under key into v.
	// found is false when nothing has been stored yet.
	Load(ctx context.Context, key string, v any) (found bool, err error)

	// Save replaces the value stored under key
	Save(ctx context.Context, key string, v any) error

	Close() error
}

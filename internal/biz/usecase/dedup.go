package usecase

import "sync"

const (
	// DefaultDedupCapacity is the number of recent message IDs remembered
	DefaultDedupCapacity = 100
	// DefaultDedupEvict is how many of the oldest IDs are dropped on overflow
	DefaultDedupEvict = 50
)

// DedupGuard remembers recently processed message IDs so a redelivered
// event is handled at most once within the recent window
type DedupGuard struct {
	mu       sync.Mutex
	capacity int
	evict    int
	order    []string // insertion order, oldest first
	seen     map[string]struct{}
}

// NewDedupGuard creates a guard holding at most capacity IDs
func NewDedupGuard(capacity, evict int) *DedupGuard {
	if capacity <= 0 {
		capacity = DefaultDedupCapacity
	}
	if evict <= 0 || evict > capacity {
		evict = DefaultDedupEvict
		if evict > capacity {
			evict = capacity
		}
	}
	return &DedupGuard{
		capacity: capacity,
		evict:    evict,
		seen:     make(map[string]struct{}),
	}
}

// AlreadyProcessed checks if the message ID has been marked
func (g *DedupGuard) AlreadyProcessed(msgID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.seen[msgID]
	return ok
}

// MarkProcessed records the message ID, evicting the earliest insertions on overflow
func (g *DedupGuard) MarkProcessed(msgID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markLocked(msgID)
}

// CheckAndMark marks the ID and reports whether it had already been processed
func (g *DedupGuard) CheckAndMark(msgID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen[msgID]; ok {
		return true
	}
	g.markLocked(msgID)
	return false
}

func (g *DedupGuard) markLocked(msgID string) {
	if _, ok := g.seen[msgID]; ok {
		return
	}
	g.seen[msgID] = struct{}{}
	g.order = append(g.order, msgID)

	if len(g.order) > g.capacity {
		for _, id := range g.order[:g.evict] {
			delete(g.seen, id)
		}
		remaining := make([]string, len(g.order)-g.evict, g.capacity)
		copy(remaining, g.order[g.evict:])
		g.order = remaining
	}
}

// Len returns the number of remembered IDs
func (g *DedupGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.order)
}

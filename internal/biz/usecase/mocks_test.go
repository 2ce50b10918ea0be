package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
)

// Mock implementations

type mockStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   map[string]int
	saveErr error
	loadErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte), saves: make(map[string]int)}
}

func (m *mockStore) Load(ctx context.Context, key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return false, m.loadErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (m *mockStore) Save(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.saves[key]++
	return nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) saveCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}

type mockResources struct {
	mu         sync.Mutex
	away       string
	awayErr    error
	vip        domain.VIPList
	transcript []string
	summaries  map[string]string
}

func (m *mockResources) AwayMessage(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.away, m.awayErr
}

func (m *mockResources) SetAwayMessage(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.away = text
	return nil
}

func (m *mockResources) VIPList(ctx context.Context) (domain.VIPList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vip, nil
}

func (m *mockResources) AddVIP(ctx context.Context, entry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vip = append(m.vip, entry)
	return nil
}

func (m *mockResources) AppendTranscript(ctx context.Context, at time.Time, sender, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcript = append(m.transcript, sender+": "+text)
	return nil
}

func (m *mockResources) WriteDailySummary(ctx context.Context, day time.Time, report string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.summaries == nil {
		m.summaries = make(map[string]string)
	}
	name := "daily_summary_" + day.Format("2006-01-02") + ".txt"
	m.summaries[name] = report
	return name, nil
}

type mockGeneration struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	lastMsgs []domain.Turn
}

func (m *mockGeneration) Generate(ctx context.Context, messages []domain.Turn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastMsgs = append([]domain.Turn(nil), messages...)
	return m.reply, m.err
}

var errBoom = errors.New("boom")

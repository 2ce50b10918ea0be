package service

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
	saveErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Load(ctx context.Context, key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
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
	return nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) setSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

type mockResources struct {
	mu         sync.Mutex
	away       string
	vip        domain.VIPList
	transcript []string
	summaries  map[string]string
	writes     int
}

func (m *mockResources) AwayMessage(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.away, nil
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
	m.writes++
	return name, nil
}

func (m *mockResources) summaryWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *mockResources) transcriptLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transcript)
}

type mockGeneration struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (m *mockGeneration) Generate(ctx context.Context, messages []domain.Turn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.reply, m.err
}

type sentReply struct {
	msgID string
	text  string
}

type mockMessageRepo struct {
	mu      sync.Mutex
	replies []sentReply
	errs    []error // returned by successive Reply calls
}

func (m *mockMessageRepo) Reply(ctx context.Context, msg *domain.InboundMessage, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, sentReply{msgID: msg.ID, text: text})
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return err
	}
	return nil
}

func (m *mockMessageRepo) sent() []sentReply {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentReply(nil), m.replies...)
}

var errBoom = errors.New("boom")

package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

func newStores(t *testing.T) map[string]repo.StateStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]repo.StateStore{BackendFile: fs, BackendSQLite: sq}
}

func TestStateStore_MissingKey(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			var stats domain.MessageStats
			found, err := store.Load(context.Background(), repo.KeyStats, &stats)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestStateStore_RoundTripIsStable(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	log := domain.NewCategoryLog()
	log.Add(domain.CategoryWork, domain.CategoryEntry{Timestamp: at, Sender: "ou_a", Message: "deadline", Keyword: domain.KeywordWork})
	log.Add(domain.CategoryUnknown, domain.CategoryEntry{Timestamp: at, Sender: "ou_b", Message: "hey"})

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, repo.KeyCategories, log))

			first := domain.CategoryLog{}
			found, err := store.Load(ctx, repo.KeyCategories, &first)
			require.NoError(t, err)
			require.True(t, found)

			require.NoError(t, store.Save(ctx, repo.KeyCategories, first))
			second := domain.CategoryLog{}
			_, err = store.Load(ctx, repo.KeyCategories, &second)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			require.Len(t, second[domain.CategoryWork], 1)
			assert.Equal(t, domain.KeywordWork, second[domain.CategoryWork][0].Keyword)
			assert.Equal(t, domain.KeywordNone, second[domain.CategoryUnknown][0].Keyword)
			assert.True(t, second[domain.CategoryWork][0].Timestamp.Equal(at))
		})
	}
}

func TestFileStore_PrettyPrintsAndKeepsNullKeyword(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	log := domain.NewCategoryLog()
	log.Add(domain.CategoryPersonal, domain.CategoryEntry{Sender: "ou_mom", Message: "dinner?"})
	require.NoError(t, store.Save(context.Background(), repo.KeyCategories, log))

	raw, err := os.ReadFile(filepath.Join(dir, "categorized_messages.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"personal\": [")
	assert.Contains(t, string(raw), `"keyword": null`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bot_stats.json"), []byte("{broken"), 0o644))

	var stats domain.MessageStats
	found, err := store.Load(context.Background(), repo.KeyStats, &stats)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrDecodeFailed)
}

func TestStateStore_EncodeFailure(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Save(context.Background(), "bad", map[string]any{"ch": make(chan int)})
			assert.ErrorIs(t, err, ErrEncodeFailed)
		})
	}
}

func TestNewRepositories(t *testing.T) {
	dir := t.TempDir()

	r, err := NewRepositories(dir, BackendSQLite)
	require.NoError(t, err)
	require.NoError(t, r.State.Save(context.Background(), repo.KeySchedule, domain.DefaultSchedule()))
	require.NoError(t, r.Close())
	assert.FileExists(t, filepath.Join(dir, "state.db"))

	_, err = NewRepositories(dir, "redis")
	assert.Error(t, err)
}

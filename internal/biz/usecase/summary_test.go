package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
)

func TestBuildDailySummary(t *testing.T) {
	day := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	log := domain.NewCategoryLog()
	long := strings.Repeat("x", 60)
	log.Add(domain.CategoryWork, domain.CategoryEntry{Sender: "ou_a", Message: "project update"})
	log.Add(domain.CategoryPersonal, domain.CategoryEntry{Sender: "ou_mom", Message: long})
	log.Add(domain.CategoryUnknown, domain.CategoryEntry{Sender: "ou_b", Message: "?"})

	got := BuildDailySummary(day, domain.MessageStats{TotalMessages: 7}, log)

	want := "Daily Summary - 2024-03-01\n" +
		"=================================\n" +
		"Total Messages: 7\n" +
		"Work Messages: 1\n" +
		"Personal Messages: 1\n" +
		"Unknown Messages: 1\n" +
		"\nRecent Messages:\n" +
		"- [WORK] ou_a: project update...\n" +
		"- [PERSONAL] ou_mom: " + strings.Repeat("x", 50) + "...\n"
	assert.Equal(t, want, got)
}

func TestBuildDailySummary_LastFivePerCategory(t *testing.T) {
	log := domain.NewCategoryLog()
	for i := 0; i < 8; i++ {
		log.Add(domain.CategoryWork, domain.CategoryEntry{Sender: "s", Message: string(rune('a' + i))})
	}

	got := BuildDailySummary(time.Now(), domain.MessageStats{}, log)
	assert.Equal(t, 5, strings.Count(got, "- [WORK]"))
	assert.NotContains(t, got, "s: c...")
	assert.Contains(t, got, "s: d...")
	assert.Contains(t, got, "s: h...")
}

func TestPreviewTruncatesByRune(t *testing.T) {
	assert.Equal(t, "नमस्", preview("नमस्ते", 4))
	assert.Equal(t, "short", preview("short", 50))
}

func TestSummaryUsecase_Write(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	res := &mockResources{}
	now := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)

	stats := NewStatsUsecase(ctx, store, now)
	_, err := stats.Record(ctx, now)
	require.NoError(t, err)
	cat := NewCategorizerUsecase(ctx, store, res)

	loc, err := NewSummaryUsecase(stats, cat, res).Write(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "daily_summary_2024-03-01.txt", loc)
	assert.Contains(t, res.summaries[loc], "Total Messages: 1")
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

const (
	summaryRecentCount = 5
	summaryPreviewLen  = 50
)

// BuildDailySummary renders the plain-text daily report
func BuildDailySummary(day time.Time, stats domain.MessageStats, log domain.CategoryLog) string {
	date := day.Format("2006-01-02")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Daily Summary - %s\n", date))
	sb.WriteString("=================================\n")
	sb.WriteString(fmt.Sprintf("Total Messages: %d\n", stats.TotalMessages))
	sb.WriteString(fmt.Sprintf("Work Messages: %d\n", len(log[domain.CategoryWork])))
	sb.WriteString(fmt.Sprintf("Personal Messages: %d\n", len(log[domain.CategoryPersonal])))
	sb.WriteString(fmt.Sprintf("Unknown Messages: %d\n", len(log[domain.CategoryUnknown])))
	sb.WriteString("\nRecent Messages:\n")

	for _, c := range []domain.Category{domain.CategoryWork, domain.CategoryPersonal} {
		label := strings.ToUpper(string(c))
		for _, e := range log.Recent(c, summaryRecentCount) {
			sb.WriteString(fmt.Sprintf("- [%s] %s: %s...\n", label, e.Sender, preview(e.Message, summaryPreviewLen)))
		}
	}

	return sb.String()
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// SummaryUsecase writes daily reports from the current stats and category log
type SummaryUsecase struct {
	stats       *StatsUsecase
	categorizer *CategorizerUsecase
	resources   repo.ResourceRepo
}

// NewSummaryUsecase creates a new summary usecase
func NewSummaryUsecase(stats *StatsUsecase, categorizer *CategorizerUsecase, resources repo.ResourceRepo) *SummaryUsecase {
	return &SummaryUsecase{
		stats:       stats,
		categorizer: categorizer,
		resources:   resources,
	}
}

// Write renders and stores the report for the day of now
func (uc *SummaryUsecase) Write(ctx context.Context, now time.Time) (string, error) {
	report := BuildDailySummary(now, uc.stats.Snapshot(), uc.categorizer.Snapshot())
	location, err := uc.resources.WriteDailySummary(ctx, now, report)
	if err != nil {
		return "", fmt.Errorf("write daily summary: %w", err)
	}
	return location, nil
}

package repo

import (
	"context"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
)

// ResourceRepo gives access to the operator-edited text resources
// and the plain-text logs kept alongside the state
type ResourceRepo interface {
	// AwayMessage returns the custom away message, "" when none is configured
	AwayMessage(ctx context.Context) (string, error)
	SetAwayMessage(ctx context.Context, text string) error

	// VIPList returns the VIP contact substrings
	VIPList(ctx context.Context) (domain.VIPList, error)
	AddVIP(ctx context.Context, entry string) error

	// AppendTranscript appends one raw message line to the transcript
	AppendTranscript(ctx context.Context, at time.Time, sender, text string) error

	// WriteDailySummary stores the report for a day, returning its location
	WriteDailySummary(ctx context.Context, day time.Time, report string) (string, error)
}

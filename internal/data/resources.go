package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

const (
	vipFile        = "vip_contacts.txt"
	awayFile       = "away_message.txt"
	transcriptFile = "messages_log.txt"
)

// resourceRepo serves the operator-editable text files in the state directory
type resourceRepo struct {
	dir string

	mu sync.Mutex // serializes appends and read-modify-write of the VIP list
}

// NewResourceRepo creates the text resource repository rooted at dir
func NewResourceRepo(dir string) (repo.ResourceRepo, error) {
	if err := os.MkdirAll(dir, stateDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	return &resourceRepo{dir: dir}, nil
}

func (r *resourceRepo) readOptional(name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(raw), nil
}

// AwayMessage returns the trimmed away message, or "" when none is set
func (r *resourceRepo) AwayMessage(ctx context.Context) (string, error) {
	text, err := r.readOptional(awayFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// SetAwayMessage replaces the away message; empty text clears it
func (r *resourceRepo) SetAwayMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		err := os.Remove(filepath.Join(r.dir, awayFile))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("clear away message: %w", err)
		}
		return nil
	}
	return writeAtomic(filepath.Join(r.dir, awayFile), []byte(text+"\n"))
}

func (r *resourceRepo) VIPList(ctx context.Context) (domain.VIPList, error) {
	text, err := r.readOptional(vipFile)
	if err != nil {
		return nil, err
	}
	return domain.ParseVIPList(text), nil
}

// AddVIP appends an entry unless it is already listed
func (r *resourceRepo) AddVIP(ctx context.Context, entry string) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return fmt.Errorf("empty VIP entry")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.VIPList(ctx)
	if err != nil {
		return err
	}
	for _, existing := range list {
		if existing == entry {
			return nil
		}
	}
	list = append(list, entry)
	return writeAtomic(filepath.Join(r.dir, vipFile), []byte(list.String()))
}

// AppendTranscript adds "[timestamp] sender: message" to the message log
func (r *resourceRepo) AppendTranscript(ctx context.Context, at time.Time, sender, text string) error {
	line := fmt.Sprintf("[%s] %s: %s\n", at.Format(time.RFC3339), sender, text)

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(r.dir, transcriptFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, stateFilePerm)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	return nil
}

// WriteDailySummary stores the report as daily_summary_YYYY-MM-DD.txt and returns its path
func (r *resourceRepo) WriteDailySummary(ctx context.Context, day time.Time, report string) (string, error) {
	path := filepath.Join(r.dir, fmt.Sprintf("daily_summary_%s.txt", day.Format("2006-01-02")))
	if err := writeAtomic(path, []byte(report)); err != nil {
		return "", fmt.Errorf("write daily summary: %w", err)
	}
	return path, nil
}

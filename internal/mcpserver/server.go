package mcpserver

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

const defaultListLimit = 10

// AwayMCPServer exposes operator tools over the bot's state directory.
// State is re-read on every call so changes made by a running bot are visible.
// Stdout may carry the protocol, so nothing here writes to it.
type AwayMCPServer struct {
	server    *mcp.Server
	store     repo.StateStore
	resources repo.ResourceRepo
	clock     func() time.Time
}

// NewServer creates the MCP server and registers its tools
func NewServer(store repo.StateStore, resources repo.ResourceRepo, version string) *AwayMCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "awaybot-tools",
		Version: version,
	}, nil)

	s := &AwayMCPServer{
		server:    server,
		store:     store,
		resources: resources,
		clock:     time.Now,
	}
	s.registerTools()
	return s
}

// Serve speaks MCP over in/out until the client disconnects or ctx is done
func (s *AwayMCPServer) Serve(ctx context.Context, in io.ReadCloser, out io.WriteCloser) error {
	return s.server.Run(ctx, &mcp.IOTransport{Reader: in, Writer: out})
}

// Connect attaches a single session on transport t
func (s *AwayMCPServer) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

// loadStats and loadCategories read persisted state without the usecase
// constructors, which log to stdout
func (s *AwayMCPServer) loadStats(ctx context.Context) domain.MessageStats {
	stats := domain.NewMessageStats(s.clock())
	if _, err := s.store.Load(ctx, repo.KeyStats, &stats); err != nil {
		fmt.Fprintf(os.Stderr, "[MCP] Failed to load %s: %v\n", repo.KeyStats, err)
		return domain.NewMessageStats(s.clock())
	}
	return stats
}

func (s *AwayMCPServer) loadCategories(ctx context.Context) domain.CategoryLog {
	log := domain.NewCategoryLog()
	if _, err := s.store.Load(ctx, repo.KeyCategories, &log); err != nil {
		fmt.Fprintf(os.Stderr, "[MCP] Failed to load %s: %v\n", repo.KeyCategories, err)
		return domain.NewCategoryLog()
	}
	return log.Normalize()
}

func (s *AwayMCPServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "away_get_stats",
		Description: "Get the auto-reply statistics: total messages, first and last message time, and message counts per category.",
	}, s.handleGetStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "away_set_message",
		Description: "Set the custom away message. While set, every accepted message is answered with it instead of a generated reply.",
	}, s.handleSetMessage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "away_clear_message",
		Description: "Clear the custom away message so replies go back to greetings and generated answers.",
	}, s.handleClearMessage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "away_list_category",
		Description: "List the most recent messages filed under a category: work, personal, spam or unknown.",
	}, s.handleListCategory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "away_add_vip",
		Description: "Add a VIP contact. Any sender whose id contains the entry is treated as personal.",
	}, s.handleAddVIP)
}

// GetStatsInput is empty - no input needed
type GetStatsInput struct{}

// GetStatsOutput contains the statistics
type GetStatsOutput struct {
	TotalMessages int            `json:"total_messages"`
	StartDate     string         `json:"start_date"`
	LastMessage   string         `json:"last_message,omitempty"`
	Categories    map[string]int `json:"categories"`
	AwayMessage   string         `json:"away_message,omitempty"`
}

func (s *AwayMCPServer) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input GetStatsInput) (*mcp.CallToolResult, GetStatsOutput, error) {
	stats := s.loadStats(ctx)
	log := s.loadCategories(ctx)

	out := GetStatsOutput{
		TotalMessages: stats.TotalMessages,
		StartDate:     stats.StartDate.Format(time.RFC3339),
		Categories:    make(map[string]int, len(domain.AllCategories)),
	}
	if stats.LastMessage != nil {
		out.LastMessage = stats.LastMessage.Format(time.RFC3339)
	}
	for _, c := range domain.AllCategories {
		out.Categories[string(c)] = len(log[c])
	}
	if away, err := s.resources.AwayMessage(ctx); err == nil {
		out.AwayMessage = away
	}
	return nil, out, nil
}

// SetMessageInput is the input for away_set_message
type SetMessageInput struct {
	Message string `json:"message" jsonschema:"the away message text, sent after the time-of-day emoji"`
}

// SuccessOutput is the output of tools that only change state
type SuccessOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *AwayMCPServer) handleSetMessage(ctx context.Context, req *mcp.CallToolRequest, input SetMessageInput) (*mcp.CallToolResult, SuccessOutput, error) {
	if input.Message == "" {
		return nil, SuccessOutput{Error: "message is required"}, nil
	}
	if err := s.resources.SetAwayMessage(ctx, input.Message); err != nil {
		return nil, SuccessOutput{Error: err.Error()}, nil
	}
	return nil, SuccessOutput{Success: true}, nil
}

// ClearMessageInput is empty - no input needed
type ClearMessageInput struct{}

func (s *AwayMCPServer) handleClearMessage(ctx context.Context, req *mcp.CallToolRequest, input ClearMessageInput) (*mcp.CallToolResult, SuccessOutput, error) {
	if err := s.resources.SetAwayMessage(ctx, ""); err != nil {
		return nil, SuccessOutput{Error: err.Error()}, nil
	}
	return nil, SuccessOutput{Success: true}, nil
}

// ListCategoryInput selects the category and how many entries to return
type ListCategoryInput struct {
	Category string `json:"category" jsonschema:"one of work, personal, spam, unknown"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of entries, newest last (default 10)"`
}

// Entry is one categorized message
type Entry struct {
	Timestamp string `json:"timestamp"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Keyword   string `json:"keyword,omitempty"`
}

// ListCategoryOutput contains the entries
type ListCategoryOutput struct {
	Category string  `json:"category"`
	Entries  []Entry `json:"entries"`
	Error    string  `json:"error,omitempty"`
}

func (s *AwayMCPServer) handleListCategory(ctx context.Context, req *mcp.CallToolRequest, input ListCategoryInput) (*mcp.CallToolResult, ListCategoryOutput, error) {
	category, ok := domain.ParseCategory(input.Category)
	if !ok {
		return nil, ListCategoryOutput{Category: input.Category, Entries: []Entry{}, Error: fmt.Sprintf("unknown category %q", input.Category)}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	recent := s.loadCategories(ctx).Recent(category, limit)
	entries := make([]Entry, 0, len(recent))
	for _, e := range recent {
		entries = append(entries, Entry{
			Timestamp: e.Timestamp.Format(time.RFC3339),
			Sender:    e.Sender,
			Message:   e.Message,
			Keyword:   string(e.Keyword),
		})
	}
	return nil, ListCategoryOutput{Category: string(category), Entries: entries}, nil
}

// AddVIPInput is the input for away_add_vip
type AddVIPInput struct {
	Entry string `json:"entry" jsonschema:"substring of the sender id, for example an open_id"`
}

func (s *AwayMCPServer) handleAddVIP(ctx context.Context, req *mcp.CallToolRequest, input AddVIPInput) (*mcp.CallToolResult, SuccessOutput, error) {
	if input.Entry == "" {
		return nil, SuccessOutput{Error: "entry is required"}, nil
	}
	if err := s.resources.AddVIP(ctx, input.Entry); err != nil {
		return nil, SuccessOutput{Error: err.Error()}, nil
	}
	return nil, SuccessOutput{Success: true}, nil
}

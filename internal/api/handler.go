package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/usecase"
)

// SummaryWriter writes the daily summary on demand
type SummaryWriter interface {
	RunNow(ctx context.Context, now time.Time) (string, error)
}

// Deps groups what the admin API reads and edits
type Deps struct {
	Stats       *usecase.StatsUsecase
	Categorizer *usecase.CategorizerUsecase
	Memory      *usecase.MemoryUsecase
	Schedule    *usecase.ScheduleUsecase
	Resources   repo.ResourceRepo
	Summary     SummaryWriter
}

// Server provides the local status and admin HTTP API
type Server struct {
	statsUC    *usecase.StatsUsecase
	categoryUC *usecase.CategorizerUsecase
	memoryUC   *usecase.MemoryUsecase
	scheduleUC *usecase.ScheduleUsecase
	resources  repo.ResourceRepo
	summary    SummaryWriter

	clock  func() time.Time
	server *http.Server
	port   int
}

// NewServer creates a new API server
func NewServer(deps Deps, port int) *Server {
	return &Server{
		statsUC:    deps.Stats,
		categoryUC: deps.Categorizer,
		memoryUC:   deps.Memory,
		scheduleUC: deps.Schedule,
		resources:  deps.Resources,
		summary:    deps.Summary,
		clock:      time.Now,
		port:       port,
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/categories/", s.handleCategory)
	mux.HandleFunc("/api/away", s.handleAway)
	mux.HandleFunc("/api/vip", s.handleVIP)
	mux.HandleFunc("/api/history/", s.handleHistory)
	mux.HandleFunc("/api/schedule", s.handleSchedule)
	mux.HandleFunc("/api/summary", s.handleSummary)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return mux
}

// Start starts the HTTP server; it blocks until Stop
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	fmt.Printf("[API] Starting HTTP server on port %d\n", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Shutdown(context.Background())
	}
	return nil
}

// ============ Stats ============

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	counts := make(map[domain.Category]int, len(domain.AllCategories))
	log := s.categoryUC.Snapshot()
	for _, c := range domain.AllCategories {
		counts[c] = len(log[c])
	}

	s.writeJSON(w, map[string]interface{}{
		"stats":      s.statsUC.Snapshot(),
		"categories": counts,
		"senders":    len(s.memoryUC.Senders()),
	})
}

// ============ Categories ============

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/categories/")
	category, ok := domain.ParseCategory(name)
	if !ok {
		http.Error(w, "unknown category", http.StatusNotFound)
		return
	}

	limit := -1
	if val := r.URL.Query().Get("limit"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	s.writeJSON(w, map[string]interface{}{
		"category": category,
		"entries":  s.categoryUC.Recent(category, limit),
	})
}

// ============ Away message ============

func (s *Server) handleAway(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		msg, err := s.resources.AwayMessage(ctx)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, map[string]interface{}{"message": msg, "active": msg != ""})

	case http.MethodPut:
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}
		if err := s.resources.SetAwayMessage(ctx, req.Message); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, map[string]interface{}{"success": true})

	case http.MethodDelete:
		if err := s.resources.SetAwayMessage(ctx, ""); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, map[string]interface{}{"success": true})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ============ VIP contacts ============

func (s *Server) handleVIP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		list, err := s.resources.VIPList(ctx)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if list == nil {
			list = domain.VIPList{}
		}
		s.writeJSON(w, map[string]interface{}{"entries": list})

	case http.MethodPost:
		var req struct {
			Entry string `json:"entry"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Entry) == "" {
			http.Error(w, "entry is required", http.StatusBadRequest)
			return
		}
		if err := s.resources.AddVIP(ctx, req.Entry); err != nil {
			s.writeError(w, err)
			return
		}
		s.categoryUC.ReloadVIP(ctx)
		s.writeJSON(w, map[string]interface{}{"success": true})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ============ Conversation history ============

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sender := strings.TrimPrefix(r.URL.Path, "/api/history/")
	if sender == "" {
		s.writeJSON(w, map[string]interface{}{"senders": s.memoryUC.Senders()})
		return
	}

	turns := s.memoryUC.HistoryFor(sender)
	if turns == nil {
		turns = domain.History{}
	}
	s.writeJSON(w, map[string]interface{}{"sender": sender, "turns": turns})
}

// ============ Schedule ============

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, s.scheduleUC.Get())

	case http.MethodPut:
		var req domain.Schedule
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !req.Valid() {
			http.Error(w, "hours must be within 0-23", http.StatusBadRequest)
			return
		}
		if err := s.scheduleUC.Set(r.Context(), req); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, map[string]interface{}{"success": true})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ============ Summary ============

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	location, err := s.summary.RunNow(r.Context(), s.clock())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"success": true, "location": location})
}

// ============ Helpers ============

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

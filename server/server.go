// Package server exposes board analysis over the Battlesnake webhook payload.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rninformatics/battlesnake-utils/analysis"
	"github.com/rninformatics/battlesnake-utils/api"
)

// Info is what GET / reports.
type Info struct {
	Author  string
	Color   string
	Version string
}

// Server holds the analyzer shared by all requests. Analysis is read-only
// per request, so handlers need no locking.
type Server struct {
	analyzer *analysis.Analyzer
	info     Info
	logger   *log.Logger
}

func New(analyzer *analysis.Analyzer, info Info, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{analyzer: analyzer, info: info, logger: logger}
}

// RegisterRoutes sets up all routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/start", s.handleStart)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/end", s.handleEnd)
}

// Handler returns a mux with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

// ListenAndServe serves on addr until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("analysis server listening", "addr", addr)
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, api.InfoResponse{
		APIVersion: "1",
		Author:     s.info.Author,
		Color:      s.info.Color,
		Head:       "default",
		Tail:       "default",
		Version:    s.info.Version,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.logger.Info("game started", "game", req.Game.ID, "turn", req.Turn, "you", req.You.Name)
	w.WriteHeader(http.StatusOK)
}

// handleAnalyze returns the analysis report of the posted snapshot.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	state, err := req.State()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	report := s.analyzer.Analyze(state)
	s.logger.Debug("analyzed", "game", req.Game.ID, "turn", req.Turn, "elapsed", time.Since(start))
	writeJSON(w, report)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	youAlive := false
	for _, snake := range req.Board.Snakes {
		if snake.ID == req.You.ID {
			youAlive = true
			break
		}
	}

	result := "lost"
	if youAlive {
		result = "won"
	} else if len(req.Board.Snakes) == 0 {
		result = "draw"
	}

	s.logger.Info("game ended", "game", req.Game.ID, "turn", req.Turn, "result", result)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*api.GameRequest, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	req, err := api.Decode(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, api.ErrMissingField) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return nil, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

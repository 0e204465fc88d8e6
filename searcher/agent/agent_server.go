package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/matryer/way"
	"github.com/rs/zerolog/log"

	"pursuit/game"
	"pursuit/replay"
	"pursuit/searcher"
)

// ChooseRequest describes a game by its layout, pursuer count, rules and the
// half-moves played so far, and asks for the next action of Agent. Without
// Settings the server plays under its own.
type ChooseRequest struct {
	Layout     string         `json:"layout"`
	Pursuers   int            `json:"pursuers"`
	Seed       uint64         `json:"seed"`
	Settings   *game.Settings `json:"settings,omitempty"`
	History    []game.Move    `json:"history"`
	Agent      int            `json:"agent"`
	Depth      int            `json:"depth"`
	SearchSeed uint64         `json:"searchSeed"`
}

type ChooseResponse struct {
	Action game.Direction `json:"action"`
	Nodes  int            `json:"nodes"`
}

// Server answers action requests with a multimax search.
type Server struct {
	router   *way.Router
	settings game.Settings
	timeout  time.Duration
}

// NewServer creates an agent server playing under settings unless a request
// brings its own. A positive timeout bounds every search;
// when it runs out the fallback action is returned.
func NewServer(settings game.Settings, timeout time.Duration) *Server {
	s := &Server{
		router:   way.NewRouter(),
		settings: settings,
		timeout:  timeout,
	}
	s.router.HandleFunc("POST", "/choose", s.handleChoose)
	s.router.HandleFunc("GET", "/healthz", handleHealth)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	var req ChooseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Depth < 1 || req.Depth > searcher.MaxDepth {
		http.Error(w, "bad request: depth out of range", http.StatusBadRequest)
		return
	}

	settings := s.settings
	if req.Settings != nil {
		settings = *req.Settings
	}
	record := replay.Record{
		GameID:   "request",
		Layout:   req.Layout,
		Pursuers: req.Pursuers,
		Seed:     req.Seed,
		Settings: settings,
		Moves:    req.History,
	}
	initial, err := record.Initial()
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Agent < 0 || req.Agent >= initial.NumAgents() {
		http.Error(w, "bad request: agent index out of range", http.StatusBadRequest)
		return
	}
	state, err := record.Replay(nil)
	if err != nil {
		http.Error(w, "unprocessable history: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if state.IsTerminal() {
		http.Error(w, "unprocessable history: game is over", http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	policy := NewMultimaxAgent(req.Agent, req.Depth, searcher.NewMultimax(searcher.WithSeed(req.SearchSeed), searcher.WithMetrics()))
	action, metric, err := policy.GetAction(ctx, state)
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Msgf("search for agent %d timed out after %s, using fallback", req.Agent, s.timeout)
		action, err = Fallback(state, req.Agent)
	}
	if err != nil {
		http.Error(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ChooseResponse{Action: action, Nodes: metric.Nodes}); err != nil {
		http.Error(w, "failed to encode action: "+err.Error(), http.StatusInternalServerError)
	}
}

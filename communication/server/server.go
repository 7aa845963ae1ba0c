package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mancala/communication"
	"mancala/searcher"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Server exposes the solver and the turn mechanics over HTTP.
type Server struct {
	r         *chi.Mux
	nodeLimit int
}

// New builds the router. /solve refuses positions that are too large to search and
// gives up on any search expanding more than nodeLimit positions.
func New(nodeLimit int) *Server {
	s := &Server{r: chi.NewRouter(), nodeLimit: nodeLimit}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.Recoverer)
	s.r.Use(requestLogger)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Post("/solve", s.handleSolve)
	s.r.Post("/turn", s.handleTurn)

	return s
}

func (s *Server) Start(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadTimeout: 15 * time.Second, WriteTimeout: 15 * time.Second}
	return srv.ListenAndServe()
}

// Router exposes the router for tests.
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var position communication.Position
	if err := json.NewDecoder(r.Body).Decode(&position); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request: %w", err))
		return
	}
	board, session, err := position.Decode()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if session.IsFinished(board) {
		writeError(w, http.StatusUnprocessableEntity, errors.New("game is already finished"))
		return
	}
	if !searcher.Solvable(board) {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("%d stones on %d pits is too large to solve", board.StonesInPits(), board.NumPits()))
		return
	}

	// Solvers keep per-search state, so each request gets its own
	solver := searcher.NewSolver(searcher.WithMetrics(), searcher.WithNodeLimit(s.nodeLimit))
	pit, guaranteed := solver.Solve(board, session)
	if solver.Exceeded() {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("search gave up after %d nodes", s.nodeLimit))
		return
	}
	metric := solver.Metrics()

	writeJSON(w, http.StatusOK, communication.SolveResponse{
		Pit:        pit,
		Guaranteed: guaranteed,
		Stats:      solver.LastStats(),
		Nodes:      metric.Nodes,
		DurationMs: metric.Duration.Milliseconds(),
	})
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req communication.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request: %w", err))
		return
	}
	board, session, err := req.Decode()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	outcome := session.Play(req.Pit, board)
	resp := communication.TurnResponse{
		Outcome: outcome.String(),
		Valid:   outcome.Valid(),
	}
	if winner, finished := session.ResolveWinner(board); finished {
		resp.Finished = true
		resp.Winner = winner.String()
	}
	resp.Position = communication.NewPosition(board, session)

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}

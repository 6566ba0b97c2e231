package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"battlesheep/game"
	"battlesheep/levels"
	"battlesheep/meta"
	"battlesheep/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Server exposes the rules engine and the minimax agent over HTTP.
type Server struct {
	catalog *levels.Catalog
	mu      sync.Mutex
	rng     *rand.Rand // Seeds one agent per turn request
}

func NewServer(catalog *levels.Catalog, seed uint64) *Server {
	if catalog == nil {
		catalog = levels.Builtin()
	}
	return &Server{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Handler returns the router with all endpoints mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/levels", s.handleLevels)
	r.Get("/levels/{key}", s.handleLevel)
	r.Post("/moves", s.handleMoves)
	r.Post("/apply", s.handleApply)
	r.Post("/place", s.handlePlace)
	r.Post("/turn", s.handleTurn)
	r.Post("/outcome", s.handleOutcome)
	return r
}

// ListenAndServe starts an agent server on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("starting agent server on %s...", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Keys())
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	level, err := s.catalog.Load(key)
	if errors.Is(err, levels.ErrUnknownLevel) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	state, err := game.Initialize(level, meta.PLAYERS)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, LevelResponse{
		Name:      level.Name,
		BoardJSON: BoardJSON{Board: state.Board, Width: state.Size.Width, Height: state.Size.Height},
		Phase:     EncodePhase(state.Phase),
	})
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	var req MovesRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Origin < 0 || req.Origin >= len(req.Board) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("origin %d out of bounds", req.Origin))
		return
	}

	destinations := game.MovesFromTile(req.Board, req.Size(), req.Origin)
	writeJSON(w, http.StatusOK, MovesResponse{Destinations: destinations})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if !decode(w, r, &req) {
		return
	}

	board, err := game.ApplyMove(req.Board, req.Size(), req.From, req.To, req.Amount, game.Player(req.Player))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, BoardResponse{Board: board})
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	if !decode(w, r, &req) {
		return
	}

	board, err := game.PlaceStart(req.Board, req.Tile, req.Amount, game.Player(req.Player))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, BoardResponse{Board: board})
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if !decode(w, r, &req) {
		return
	}
	phase, err := req.Phase.Decode()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	player := game.Player(req.Player)
	if !player.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown player %d", req.Player))
		return
	}
	depth := req.Depth
	if depth == 0 {
		depth = meta.DEFAULT_DEPTH
	}
	if depth < 0 || depth > meta.MAX_DEPTH {
		writeError(w, http.StatusBadRequest, fmt.Errorf("depth must be between 1 and %d", meta.MAX_DEPTH))
		return
	}

	a := NewMinimax(
		WithSeed(s.nextSeed()),
		WithSearcher(searcher.NewSearcher(searcher.WithDepth(depth), searcher.WithMetrics())),
	)
	decision, metric, err := a.Decide(r.Context(), req.Board, req.Size(), phase, player)
	if errors.Is(err, game.ErrInvalidMove) {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, TurnResponse{
		Board:   decision.Board,
		Phase:   EncodePhase(decision.Phase),
		Moved:   decision.Moved,
		Score:   decision.Score,
		Metrics: metric,
	})
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	var req OutcomeRequest
	if !decode(w, r, &req) {
		return
	}

	counts := game.TileCounts(req.Board)
	writeJSON(w, http.StatusOK, OutcomeResponse{
		Outcome: EncodeOutcome(game.Status(req.Board, req.Size())),
		Tiles:   counts[:],
	})
}

func (s *Server) nextSeed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint64()
}

type boardRequest interface {
	validate() error
}

// decode reads a JSON body into req and writes a 400 response when it is unusable.
func decode(w http.ResponseWriter, r *http.Request, req boardRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return false
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("handled request")
		}()
		next.ServeHTTP(ww, r)
	})
}

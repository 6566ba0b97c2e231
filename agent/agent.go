package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"battlesheep/experiments/metrics"
	"battlesheep/game"
	"battlesheep/meta"
	"battlesheep/searcher"

	"golang.org/x/exp/rand"
)

// Decision is the result of one AI turn.
type Decision struct {
	Board game.Board
	Phase game.Phase
	Moved bool // false when the returned board is the input board
	Score int  // Search score, zero for start placements
}

type Agent interface {
	// Decide plays one turn for player and returns the new board and phase with search metrics (if collected)
	Decide(ctx context.Context, board game.Board, size game.Size, phase game.Phase, player game.Player) (Decision, metrics.SearchMetric, error)
}

type Option func(m *Minimax)

// Minimax draws a random start tile in the start phase and searches with
// alpha-beta afterwards.
type Minimax struct {
	mu       sync.Mutex
	rng      *rand.Rand
	searcher *searcher.Searcher
}

func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *Minimax) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithSearcher(s *searcher.Searcher) Option {
	return func(m *Minimax) {
		if s != nil {
			m.searcher = s
		}
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		searcher: searcher.NewSearcher(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.searcher.Depth()
}

func (m *Minimax) Decide(ctx context.Context, board game.Board, size game.Size, phase game.Phase, player game.Player) (Decision, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, metrics.SearchMetric{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch phase := phase.(type) {
	case game.SelectingStart:
		if len(phase.StartTiles) == 0 {
			return Decision{Board: board, Phase: game.Playing{}}, metrics.SearchMetric{}, nil
		}
		tile := phase.StartTiles[m.rng.Intn(len(phase.StartTiles))]
		if err := phase.CheckClaim(board, tile, meta.START_SHEEP, player); err != nil {
			return Decision{}, metrics.SearchMetric{}, err
		}
		next, err := game.PlaceStart(board, tile, meta.START_SHEEP, player)
		if err != nil {
			return Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to place start stack: %w", err)
		}
		return Decision{Board: next, Phase: phase.Claim(next, tile), Moved: true}, metrics.SearchMetric{}, nil

	case game.Playing:
		result, metric := m.searcher.Search(board, size, player)
		return Decision{
			Board: result.Board,
			Phase: phase,
			Moved: !result.Board.Same(board),
			Score: result.Score,
		}, metric, nil

	default:
		panic(fmt.Sprintf("Unexpected phase type %T", phase))
	}
}

package searcher

import (
	"fmt"
	"math"

	"battlesheep/experiments/metrics"
	"battlesheep/game"
	"battlesheep/meta"

	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

// Searcher runs a depth-limited minimax search with alpha-beta pruning.
// A Searcher is not safe for concurrent use when it collects metrics.
type Searcher struct {
	depth    int
	evaluate game.Evaluator
	metrics  metrics.Collector
	collect  bool // Counters are only meaningful with a real collector
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth >= 0 {
			s.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluator) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
		s.collect = true
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		depth:    meta.DEFAULT_DEPTH,
		evaluate: game.Evaluate,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Depth() int {
	return s.depth
}

// Search finds the best successor of board for player, who is the maximizing side.
func (s *Searcher) Search(board game.Board, size game.Size, player game.Player) (Result, metrics.SearchMetric) {
	s.metrics.Start(s.depth)
	score, next := s.AlphaBeta(board, size, s.depth, math.MinInt, math.MaxInt, player, true)
	metric := s.metrics.Complete(score)

	event := log.Debug().
		Int("player", int(player)).
		Int("depth", s.depth).
		Int("score", score)
	if s.collect {
		event = event.
			Int("nodes", metric.Nodes).
			Int("cutoffs", metric.Cutoffs).
			Dur("duration", metric.Duration)
	}
	event.Msg("search completed")

	return Result{Score: score, Board: next}, metric
}

// AlphaBeta scores board with player to move and returns the best successor.
// Leaves are evaluated from the perspective of the maximizing player. When
// player has no move, or depth is exhausted, the input board is returned.
func (s *Searcher) AlphaBeta(board game.Board, size game.Size, depth, alpha, beta int, player game.Player, maximizing bool) (int, game.Board) {
	s.metrics.AddNode()

	targets := game.AllMovesForPlayer(board, size, player)
	if len(targets) == 0 {
		s.metrics.AddLeaf()
		if maximizing {
			return BAD - depth, board
		}
		return GOOD + depth, board
	}

	if depth == 0 {
		s.metrics.AddLeaf()
		ai := player
		if !maximizing {
			ai = player.Next()
		}
		return s.evaluate(board, size, ai), board
	}

	var (
		best      int
		bestBoard game.Board
		found     bool
	)
	for _, ply := range Plies(targets) {
		child, err := game.ApplyTarget(board, ply.Target, ply.Amount, player)
		if err != nil {
			panic(fmt.Sprintf("generated split is invalid: %v", err))
		}
		score, _ := s.AlphaBeta(child, size, depth-1, alpha, beta, player.Next(), !maximizing)

		if maximizing {
			if !found || score > best {
				best, bestBoard, found = score, child, true
			}
			if best >= beta {
				s.metrics.AddCutoff()
				break
			}
			alpha = max(alpha, best)
		} else {
			if !found || score < best {
				best, bestBoard, found = score, child, true
			}
			if best <= alpha {
				s.metrics.AddCutoff()
				break
			}
			beta = min(beta, best)
		}
	}

	if !found {
		panic("No candidate evaluated at a node with moves")
	}
	return best, bestBoard
}

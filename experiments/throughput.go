package experiments

import (
	"context"
	"time"

	"battlesheep/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Throughput is the search speed of one depth over all its moves.
type Throughput struct {
	Depth       int
	Moves       int
	Nodes       int
	Cutoffs     int
	Duration    time.Duration
	NodesPerSec float64
}

// RunThroughputExperiment plays each depth against itself, for the same
// playing strength and similar game length, and measures search speed.
func RunThroughputExperiment(ctx context.Context, cfg Config, depths ...int) ([]Throughput, error) {
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range depths {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Seed: cfg.Seed + uint64(i)}
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	log.Info().Msg("starting throughput experiment...")

	level, state, err := loadLevel(cfg.Catalog, cfg.Level)
	if err != nil {
		return nil, err
	}
	log.Info().Msgf("playing on level %s", level.Name)

	throughputs := make([]Throughput, 0, len(matchUps))
	for _, matchup := range matchUps {
		tp := Throughput{Depth: matchup[0].Depth}
		for i := 0; i < cfg.Games; i++ {
			_, _, moveMetrics, err := runGame(ctx, state, matchup, uint64(i))
			if err != nil {
				return throughputs, err
			}
			for _, mm := range moveMetrics {
				if mm.Depth == 0 { // Start placements are not searched
					continue
				}
				tp.Moves++
				tp.Nodes += mm.Nodes
				tp.Cutoffs += mm.Cutoffs
				tp.Duration += mm.Duration
			}
		}
		if tp.Duration > 0 {
			tp.NodesPerSec = float64(tp.Nodes) / tp.Duration.Seconds()
		}
		throughputs = append(throughputs, tp)

		log.Info().Msgf("depth %d: %d moves, %d nodes, %.0f nodes/s", tp.Depth, tp.Moves, tp.Nodes, tp.NodesPerSec)
	}

	log.Info().Msg("completed throughput experiment")
	return throughputs, nil
}

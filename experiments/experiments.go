package experiments

import (
	"context"
	"fmt"

	"battlesheep/agent"
	"battlesheep/engine"
	"battlesheep/experiments/metrics"
	"battlesheep/game"
	"battlesheep/levels"
	"battlesheep/meta"
	"battlesheep/searcher"

	"github.com/rs/zerolog/log"
)

// Config selects where and how long an experiment runs.
type Config struct {
	Catalog *levels.Catalog // Built-in levels when nil
	Level   string
	Games   int // Per match up
	Seed    uint64
	Dir     string // Root directory of the CSV output, nothing is written when empty
}

// Result summarizes the games of one match up.
type Result struct {
	Agent1 metrics.AgentConfig
	Agent2 metrics.AgentConfig
	Wins   [meta.PLAYERS]int // Wins per agent, not per seat
	Ties   int
	Open   int // Games stopped at the turn cap
}

// RunDepthExperiment pairs a baseline depth against every other depth. Agents
// alternate the starting seat between games.
func RunDepthExperiment(ctx context.Context, cfg Config, baseline int, depths ...int) ([]Result, error) {
	base := metrics.AgentConfig{ID: 0, Depth: baseline, Seed: cfg.Seed}
	configs := []metrics.AgentConfig{base}
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range depths {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Seed: cfg.Seed + uint64(i) + 1}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{base, config})
	}

	return runExperiment(ctx, "depth", cfg, configs, matchUps)
}

func runExperiment(ctx context.Context, name string, cfg Config, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) ([]Result, error) {
	_, state, err := loadLevel(cfg.Catalog, cfg.Level)
	if err != nil {
		return nil, err
	}

	// Run a number of games for each matchup
	count := 0
	results := make([]Result, 0, len(matchUps))
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment on level %s...", name, cfg.Level)

	for mi, matchup := range matchUps {
		result := Result{Agent1: matchup[0], Agent2: matchup[1]}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), result.Agent1, result.Agent2)

		for i := 0; i < cfg.Games; i++ {
			// Swap seats every other game
			seats := []metrics.AgentConfig{result.Agent1, result.Agent2}
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}

			outcome, gameMetric, moveMetrics, err := runGame(ctx, state, seats, uint64(i))
			if err != nil {
				return results, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			tally(&result, outcome, seats)

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     seats[0].ID,
				Agent2:     seats[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with outcome: %s", mi+1, len(matchUps), i+1, outcome)
		}
		results = append(results, result)
		log.Info().Msgf("completed matchup %d of %d: %+v", mi+1, len(matchUps), result)
	}

	log.Info().Msgf("completed %s experiment", name)

	if cfg.Dir == "" {
		return results, nil
	}
	return results, store(cfg.Dir, name, configs, gameRecords, moveRecords)
}

func loadLevel(catalog *levels.Catalog, key string) (game.Level, game.State, error) {
	if catalog == nil {
		catalog = levels.Builtin()
	}
	level, err := catalog.Load(key)
	if err != nil {
		return game.Level{}, game.State{}, err
	}
	state, err := game.Initialize(level, meta.PLAYERS)
	if err != nil {
		return game.Level{}, game.State{}, err
	}
	return level, state, nil
}

// runGame plays one game between the agents in seats order.
func runGame(ctx context.Context, state game.State, seats []metrics.AgentConfig, salt uint64) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := make([]agent.Agent, len(seats))
	for i, config := range seats {
		agents[i] = createMinimax(config, salt)
	}
	e := engine.LocalEngine(state, agents...)
	return e.Run(ctx)
}

func createMinimax(config metrics.AgentConfig, salt uint64) *agent.Minimax {
	return agent.NewMinimax(
		agent.WithSeed(config.Seed+salt),
		agent.WithSearcher(searcher.NewSearcher(searcher.WithDepth(config.Depth), searcher.WithMetrics())),
	)
}

func tally(result *Result, outcome game.Outcome, seats []metrics.AgentConfig) {
	switch outcome := outcome.(type) {
	case game.Winner:
		if seats[outcome.Player].ID == result.Agent1.ID {
			result.Wins[0]++
		} else {
			result.Wins[1]++
		}
	case game.Tie:
		result.Ties++
	default:
		result.Open++
	}
}

func store(dir, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	// Store experiment metadata
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

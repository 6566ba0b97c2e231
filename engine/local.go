package engine

import (
	"context"
	"time"

	"battlesheep/agent"
	"battlesheep/experiments/metrics"
	"battlesheep/game"
	"battlesheep/meta"

	"github.com/rs/zerolog/log"
)

// Engine plays a game between AI agents only.
type Engine struct {
	Game         Game
	orchestrator *Orchestrator
	maxTurns     int
}

func LocalEngine(state game.State, agents ...agent.Agent) *Engine {
	for _, a := range agents {
		if a == nil {
			panic("local engine needs an agent for every seat")
		}
	}

	return &Engine{
		Game:         NewGame(state),
		orchestrator: NewOrchestrator(agents...),
		maxTurns:     meta.MAX_TURNS,
	}
}

// Run executes the game loop until there is an outcome or the turn cap is reached.
func (e *Engine) Run(ctx context.Context) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.Game.Player),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %d is starting", e.Game.Player)

	turnCount := 1
	for !e.Game.Over() && turnCount <= e.maxTurns {
		next, turn, err := e.orchestrator.Step(ctx, e.Game)
		if err != nil {
			return e.Game.Outcome, gameMetric, moveMetrics, err
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Player:       int(turn.Player),
			SearchMetric: turn.Metric,
		})

		e.Game = next
		turnCount++
	}

	if !e.Game.Over() {
		log.Info().Msgf("stopped after %d turns without an outcome", e.maxTurns)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = e.Game.Outcome.String()

	return e.Game.Outcome, gameMetric, moveMetrics, nil
}

package engine

import (
	"context"
	"fmt"

	"battlesheep/agent"
	"battlesheep/experiments/metrics"
	"battlesheep/game"
	"battlesheep/meta"

	"github.com/rs/zerolog/log"
)

// Turn records one AI turn.
type Turn struct {
	Player game.Player
	Moved  bool
	Metric metrics.SearchMetric
}

// Orchestrator drives the turns of a game whose seats are AI agents or humans.
type Orchestrator struct {
	seats []agent.Agent // nil seats are human
}

func NewOrchestrator(seats ...agent.Agent) *Orchestrator {
	if len(seats) != meta.PLAYERS {
		panic(fmt.Sprintf("need %d seats, got %d", meta.PLAYERS, len(seats)))
	}
	return &Orchestrator{seats: seats}
}

func (o *Orchestrator) IsAI(player game.Player) bool {
	return player.Valid() && o.seats[player] != nil
}

// RunAiTurn lets the agent of player act once.
func (o *Orchestrator) RunAiTurn(ctx context.Context, board game.Board, size game.Size, phase game.Phase, player game.Player) (agent.Decision, metrics.SearchMetric, error) {
	if !o.IsAI(player) {
		return agent.Decision{}, metrics.SearchMetric{}, fmt.Errorf("%w: player %d", ErrHumanTurn, player)
	}
	return o.seats[player].Decide(ctx, board, size, phase, player)
}

// Step plays one AI turn for the player to act and hands the turn over.
func (o *Orchestrator) Step(ctx context.Context, g Game) (Game, Turn, error) {
	if g.Over() {
		return g, Turn{}, ErrGameOver
	}

	current := g.Player
	decision, metric, err := o.RunAiTurn(ctx, g.Board, g.Size, g.Phase, current)
	if err != nil {
		return g, Turn{}, err
	}

	g.Board = decision.Board
	g.Phase = decision.Phase
	g = passTurn(g, current)

	log.Debug().
		Int("player", int(current)).
		Bool("moved", decision.Moved).
		Int("score", decision.Score).
		Int("next", int(g.Player)).
		Str("outcome", g.Outcome.String()).
		Msg("ai turn")

	return g, Turn{Player: current, Moved: decision.Moved, Metric: metric}, nil
}

// Advance keeps playing AI turns while an AI is to act and the game is
// undecided. Humans without moves are skipped. moved reports whether any AI
// changed the board.
func (o *Orchestrator) Advance(ctx context.Context, g Game) (Game, bool, error) {
	moved := false
	for !g.Over() && o.IsAI(g.Player) {
		next, turn, err := o.Step(ctx, g)
		if err != nil {
			return g, moved, err
		}
		g = next
		moved = moved || turn.Moved
	}
	return g, moved, nil
}

// Claim places the start stack of the player to act on tile.
func (o *Orchestrator) Claim(g Game, tile int) (Game, error) {
	if g.Over() {
		return g, ErrGameOver
	}
	phase, ok := g.Phase.(game.SelectingStart)
	if !ok {
		return g, fmt.Errorf("%w: claim during %T", ErrWrongPhase, g.Phase)
	}
	if err := phase.CheckClaim(g.Board, tile, meta.START_SHEEP, g.Player); err != nil {
		return g, err
	}

	board, err := game.PlaceStart(g.Board, tile, meta.START_SHEEP, g.Player)
	if err != nil {
		return g, err
	}
	g.Board = board
	g.Phase = phase.Claim(board, tile)
	return passTurn(g, g.Player), nil
}

// Split moves amount sheep of the player to act from one tile to another.
func (o *Orchestrator) Split(g Game, from, to, amount int) (Game, error) {
	if g.Over() {
		return g, ErrGameOver
	}
	if _, ok := g.Phase.(game.Playing); !ok {
		return g, fmt.Errorf("%w: split during %T", ErrWrongPhase, g.Phase)
	}

	board, err := game.ApplyMove(g.Board, g.Size, from, to, amount, g.Player)
	if err != nil {
		return g, err
	}
	g.Board = board
	return passTurn(g, g.Player), nil
}

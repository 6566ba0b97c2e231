package engine

import (
	"errors"

	"battlesheep/game"
	"battlesheep/meta"
)

var (
	ErrGameOver   = errors.New("game is over")
	ErrWrongPhase = errors.New("action not allowed in this phase")
	ErrHumanTurn  = errors.New("player to act is not an AI")
)

// Game is the state of a running game between turns.
type Game struct {
	Board   game.Board
	Size    game.Size
	Phase   game.Phase
	Player  game.Player  // Player to act
	Outcome game.Outcome // Undecided until nobody can move
}

// NewGame starts a game from an initialized state. Player 0 acts first, or the
// first player after it that still has to place or, in Playing, has a move.
func NewGame(state game.State) Game {
	g := Game{
		Board:   state.Board,
		Size:    state.Size,
		Phase:   state.Phase,
		Player:  0,
		Outcome: game.Undecided{},
	}
	if phase, ok := g.Phase.(game.SelectingStart); ok {
		g.Player = phase.NextToPlace(g.Board, 0)
		return g
	}
	return settle(g, 0)
}

// Over reports whether the game has an outcome.
func (g Game) Over() bool {
	_, undecided := g.Outcome.(game.Undecided)
	return !undecided
}

// passTurn hands the turn over after current acted.
func passTurn(g Game, current game.Player) Game {
	if phase, ok := g.Phase.(game.SelectingStart); ok {
		g.Player = phase.NextToPlace(g.Board, current.Next())
		return g
	}
	return settle(g, current.Next())
}

// settle picks the first player from start onwards, wrapping around, that has
// a move. When nobody can move the game ends.
func settle(g Game, start game.Player) Game {
	for i := 0; i < meta.PLAYERS; i++ {
		p := game.Player((int(start) + i) % meta.PLAYERS)
		if game.HasMoves(g.Board, g.Size, p) {
			g.Player = p
			return g
		}
	}
	g.Outcome = game.ComputeOutcome(g.Board)
	return g
}

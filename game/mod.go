package game

// Player is a player index. Player 0 moves first in the start phase.
type Player int

const (
	Missing = 0 // No tile at this position
	Empty   = 1 // Tile without sheep

	MaxSheep   = 16 // Sheep per player band in the board encoding
	NumPlayers = 2
)

// Next returns the player acting after p in strict two-player alternation.
func (p Player) Next() Player {
	return (p + 1) % NumPlayers
}

// Valid reports whether p is a participating player index.
func (p Player) Valid() bool {
	return p >= 0 && p < NumPlayers
}

// Evaluator scores a board from the perspective of ai. Positive values favor ai.
type Evaluator func(board Board, size Size, ai Player) int

package game

import (
	"fmt"

	"battlesheep/utils"
)

// Phase is either SelectingStart or Playing.
type Phase interface {
	isPhase()
}

// SelectingStart is the opening where each player claims one tile from a shared set.
type SelectingStart struct {
	StartTiles []int // Remaining legal start tiles
	Players    int   // Participating players
}

// Playing is the split-move phase.
type Playing struct{}

func (SelectingStart) isPhase() {}
func (Playing) isPhase()        {}

// Claim returns the phase following a placement on tile. board must already
// contain the placed stack. The tile leaves a copy of the legal set; once every
// player owns a tile, or no legal tile is left, the game moves to Playing.
func (s SelectingStart) Claim(board Board, tile int) Phase {
	remaining := utils.Remove(s.StartTiles, tile)

	placed := 0
	for _, count := range TileCounts(board) {
		if count > 0 {
			placed++
		}
	}
	if placed >= s.Players || len(remaining) == 0 {
		return Playing{}
	}
	return SelectingStart{StartTiles: remaining, Players: s.Players}
}

// Legal checks if tile is still in the legal start set.
func (s SelectingStart) Legal(tile int) bool {
	return utils.FindIndex(s.StartTiles, tile) >= 0
}

// CheckClaim validates that player may place amount sheep on tile. Every
// player places exactly one start stack.
func (s SelectingStart) CheckClaim(board Board, tile, amount int, player Player) error {
	if !s.Legal(tile) {
		return &InvalidMoveError{From: -1, To: tile, Amount: amount, Reason: "not a legal start tile"}
	}
	if Placed(board, player) {
		return &InvalidMoveError{From: -1, To: tile, Amount: amount, Reason: fmt.Sprintf("player %d already placed a start stack", player)}
	}
	return nil
}

// NextToPlace returns the first player from start onwards, wrapping around,
// that owns no tile yet. start is returned when everybody has placed.
func (s SelectingStart) NextToPlace(board Board, start Player) Player {
	counts := TileCounts(board)
	for i := 0; i < s.Players; i++ {
		p := Player((int(start) + i) % s.Players)
		if p.Valid() && counts[p] == 0 {
			return p
		}
	}
	return start
}

// Placed reports whether player owns at least one tile.
func Placed(board Board, player Player) bool {
	return player.Valid() && TileCounts(board)[player] > 0
}

package searcher

import "battlesheep/game"

// Terminal scores. A side without moves scores BAD for the maximizing player
// and GOOD for the minimizing one, adjusted by the remaining depth so that
// earlier wins and later losses are preferred.
const (
	GOOD = 100000
	BAD  = -100000
)

// Result is the outcome of a root search.
type Result struct {
	Score int
	Board game.Board // Chosen successor, or the input board when the player cannot move
}

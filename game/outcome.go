package game

import "fmt"

// Outcome is Undecided, Tie or Winner.
type Outcome interface {
	isOutcome()
	String() string
}

type Undecided struct{}

type Tie struct{}

type Winner struct {
	Player Player
}

func (Undecided) isOutcome() {}
func (Tie) isOutcome()       {}
func (Winner) isOutcome()    {}

func (Undecided) String() string { return "undecided" }
func (Tie) String() string       { return "tie" }
func (w Winner) String() string  { return fmt.Sprintf("Player%d", w.Player) }

// ComputeOutcome compares controlled tiles: strictly more tiles wins, equal counts tie.
func ComputeOutcome(board Board) Outcome {
	counts := TileCounts(board)
	if counts[0] == counts[1] {
		return Tie{}
	}
	if counts[0] > counts[1] {
		return Winner{Player: 0}
	}
	return Winner{Player: 1}
}

// Status is Undecided while any player can still move, else ComputeOutcome.
func Status(board Board, size Size) Outcome {
	for p := Player(0); p < NumPlayers; p++ {
		if HasMoves(board, size, p) {
			return Undecided{}
		}
	}
	return ComputeOutcome(board)
}

package game

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is matched by every *InvalidMoveError.
var ErrInvalidMove = errors.New("invalid move")

// InvalidMoveError describes a rejected move or placement request.
type InvalidMoveError struct {
	From   int // -1 for placements
	To     int
	Amount int
	Reason string
}

func (e *InvalidMoveError) Error() string {
	if e.From < 0 {
		return fmt.Sprintf("invalid placement of %d sheep on tile %d: %s", e.Amount, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid move of %d sheep from tile %d to tile %d: %s", e.Amount, e.From, e.To, e.Reason)
}

func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

// ApplyMove validates a split move requested by a player and returns the new board.
// The input board is never modified.
func ApplyMove(board Board, size Size, from, to, amount int, player Player) (Board, error) {
	reject := func(reason string) (Board, error) {
		return nil, &InvalidMoveError{From: from, To: to, Amount: amount, Reason: reason}
	}

	if !size.Fits(len(board)) {
		return reject(fmt.Sprintf("board has %d cells, expected %dx%d", len(board), size.Width, size.Height))
	}
	if from < 0 || from >= len(board) || to < 0 || to >= len(board) {
		return reject("tile out of bounds")
	}
	if !HasSheep(board[from]) || OwnerOf(board[from]) != player {
		return reject(fmt.Sprintf("origin is not owned by player %d", player))
	}
	if board[to] != Empty {
		return reject("destination is not an empty tile")
	}
	if !reachable(board, size, from, to) {
		return reject("destination is not reachable in a straight line")
	}

	target := MoveTarget{From: from, To: to, MaxSplit: SheepOf(board[from]) - 1}
	return ApplyTarget(board, target, amount, player)
}

// ApplyTarget splits amount sheep along a generated move target. Only the amount
// and the emptiness of the destination are checked.
func ApplyTarget(board Board, target MoveTarget, amount int, player Player) (Board, error) {
	if amount < 1 || amount > target.MaxSplit {
		return nil, &InvalidMoveError{
			From:   target.From,
			To:     target.To,
			Amount: amount,
			Reason: fmt.Sprintf("amount must be between 1 and %d", target.MaxSplit),
		}
	}
	if board[target.To] != Empty {
		return nil, &InvalidMoveError{From: target.From, To: target.To, Amount: amount, Reason: "destination is not an empty tile"}
	}

	sheep := SheepOf(board[target.From])
	next := board.Copy()
	next[target.From] = Encode(sheep-amount, player)
	next[target.To] = Encode(amount, player)
	return next, nil
}

// PlaceStart puts a player's initial stack on an empty tile and returns the new board.
func PlaceStart(board Board, tile, amount int, player Player) (Board, error) {
	reject := func(reason string) (Board, error) {
		return nil, &InvalidMoveError{From: -1, To: tile, Amount: amount, Reason: reason}
	}

	if tile < 0 || tile >= len(board) {
		return reject("tile out of bounds")
	}
	if board[tile] != Empty {
		return reject("tile is not empty")
	}
	if amount < 1 || amount > MaxSheep {
		return reject(fmt.Sprintf("amount must be between 1 and %d", MaxSheep))
	}
	if !player.Valid() {
		return reject(fmt.Sprintf("unknown player %d", player))
	}

	next := board.Copy()
	next[tile] = Encode(amount, player)
	return next, nil
}

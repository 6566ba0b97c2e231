package searcher

import (
	"iter"

	"battlesheep/game"
)

// Ply is one fully specified split: a move target and the amount to move.
type Ply struct {
	Target game.MoveTarget
	Amount int
}

// SplitOrder yields every amount in [1, maxSplit] exactly once, starting in the
// middle and zig-zagging outwards: m/2, m/2+1, m/2-1, m/2+2, ...
// Amounts that fall outside the range are skipped until both ends are reached.
func SplitOrder(maxSplit int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if maxSplit < 1 {
			return
		}
		center := max(maxSplit/2, 1)
		if !yield(center) {
			return
		}
		for step := 1; center-step >= 1 || center+step <= maxSplit; step++ {
			if up := center + step; up <= maxSplit {
				if !yield(up) {
					return
				}
			}
			if down := center - step; down >= 1 {
				if !yield(down) {
					return
				}
			}
		}
	}
}

// Plies orders the splits of all targets round-robin by rank: the first amount
// of every target, then the second amount of every target, and so on.
func Plies(targets []game.MoveTarget) []Ply {
	orders := make([][]int, len(targets))
	total := 0
	for i, target := range targets {
		for amount := range SplitOrder(target.MaxSplit) {
			orders[i] = append(orders[i], amount)
		}
		total += len(orders[i])
	}

	plies := make([]Ply, 0, total)
	for rank := 0; len(plies) < total; rank++ {
		for i, target := range targets {
			if rank < len(orders[i]) {
				plies = append(plies, Ply{Target: target, Amount: orders[i][rank]})
			}
		}
	}
	return plies
}

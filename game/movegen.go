package game

// Direction is a hex neighbor offset on the (x, y) grid.
type Direction struct {
	DX, DY int
}

// Directions lists the six sliding directions in generation order.
var Directions = [6]Direction{
	{0, 1},   // north
	{1, 0},   // east
	{1, 1},   // south-east
	{0, -1},  // south
	{-1, 0},  // west
	{-1, -1}, // north-west
}

// MoveTarget is a legal split move before the amount is chosen.
type MoveTarget struct {
	From     int `json:"from"`
	To       int `json:"to"`
	MaxSplit int `json:"maxSplit"` // sheep(From) - 1, at least one sheep stays behind
}

// SlideDestination follows dir from origin over empty tiles and returns the last
// empty tile before the slide is blocked by the grid edge, a missing tile or sheep.
func SlideDestination(board Board, size Size, origin int, dir Direction) (int, bool) {
	x, y := size.Coord(origin)
	last := origin
	for {
		x, y = x+dir.DX, y+dir.DY
		if !size.Contains(x, y) {
			break
		}
		next := size.Index(x, y)
		if board[next] != Empty {
			break
		}
		last = next
	}
	if last == origin {
		return 0, false
	}
	return last, true
}

// MovesFromTile returns every slide destination reachable from origin.
func MovesFromTile(board Board, size Size, origin int) []int {
	destinations := make([]int, 0, len(Directions))
	for _, dir := range Directions {
		if to, ok := SlideDestination(board, size, origin, dir); ok {
			destinations = append(destinations, to)
		}
	}
	return destinations
}

// AllMovesForPlayer returns the move targets of every stack of player that can split.
// Tiles are scanned in index order and directions in Directions order.
func AllMovesForPlayer(board Board, size Size, player Player) []MoveTarget {
	var targets []MoveTarget
	for from, value := range board {
		if !HasSheep(value) {
			continue
		}
		owner, sheep := Decode(value)
		if owner != player || sheep < 2 {
			continue
		}
		for _, to := range MovesFromTile(board, size, from) {
			targets = append(targets, MoveTarget{From: from, To: to, MaxSplit: sheep - 1})
		}
	}
	return targets
}

// HasMoves reports whether player has at least one legal split move.
func HasMoves(board Board, size Size, player Player) bool {
	for from, value := range board {
		if !HasSheep(value) {
			continue
		}
		owner, sheep := Decode(value)
		if owner != player || sheep < 2 {
			continue
		}
		for _, dir := range Directions {
			if _, ok := SlideDestination(board, size, from, dir); ok {
				return true
			}
		}
	}
	return false
}

// reachable checks if to is a slide destination of from.
func reachable(board Board, size Size, from, to int) bool {
	for _, dir := range Directions {
		if dest, ok := SlideDestination(board, size, from, dir); ok && dest == to {
			return true
		}
	}
	return false
}

package game

// Evaluate scores board for ai by summing a mobility value per owned tile:
// a tile is worth 1 plus the distance to each slide destination. A stack larger
// than that value is penalized by three times its size, otherwise its size is added.
// Tiles of ai count positive, every other tile negative.
func Evaluate(board Board, size Size, ai Player) int {
	advantage := 0
	for i, cell := range board {
		if !HasSheep(cell) {
			continue
		}

		value := 1
		x, y := size.Coord(i)
		for _, to := range MovesFromTile(board, size, i) {
			tx, ty := size.Coord(to)
			if dx := abs(x - tx); dx > 0 {
				value += dx
			} else {
				value += abs(y - ty)
			}
		}

		owner, sheep := Decode(cell)
		if sheep > value {
			value -= sheep * 3
		} else {
			value += sheep
		}

		if owner == ai {
			advantage += value
		} else {
			advantage -= value
		}
	}
	return advantage
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

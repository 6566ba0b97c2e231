package game

// Board holds one packed cell value per grid position, row by row.
// Boards are values: every operation that changes one returns a new Board.
type Board []int

// Size is the width and height of a level's hex grid.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Len returns the number of cells of a board with this size.
func (s Size) Len() int {
	return s.Width * s.Height
}

// Fits checks that cells values make up a board of exactly this size.
// Division keeps huge dimensions from wrapping around.
func (s Size) Fits(cells int) bool {
	return s.Width > 0 && s.Height > 0 && cells%s.Width == 0 && cells/s.Width == s.Height
}

// Contains checks if (x, y) lies inside the grid.
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// Index returns the board index of (x, y).
func (s Size) Index(x, y int) int {
	return CoordToIndex(x, y, s.Width)
}

// Coord returns the (x, y) coordinate of a board index.
func (s Size) Coord(index int) (int, int) {
	return IndexToCoord(index, s.Width)
}

func CoordToIndex(x, y, width int) int {
	return y*width + x
}

func IndexToCoord(index, width int) (int, int) {
	x := index % width
	y := (index - x) / width
	return x, y
}

// Encode packs a stack of sheep owned by player into a cell value.
// sheep must be in [1, MaxSheep] and player a valid index.
func Encode(sheep int, player Player) int {
	return sheep + int(player)*MaxSheep + 1
}

// Decode unpacks an owned cell value. Only meaningful when HasSheep(value).
func Decode(value int) (Player, int) {
	return OwnerOf(value), SheepOf(value)
}

func OwnerOf(value int) Player {
	return Player((value - 2) / MaxSheep)
}

func SheepOf(value int) int {
	return (value-2)%MaxSheep + 1
}

// HasSheep reports whether value is an owned tile (neither missing nor empty).
func HasSheep(value int) bool {
	return value > Empty
}

// Copy returns a board with its own backing array.
func (b Board) Copy() Board {
	c := make(Board, len(b))
	copy(c, b)
	return c
}

// Same reports whether b and other share a backing array, i.e. one is the
// unchanged result of an operation on the other.
func (b Board) Same(other Board) bool {
	if len(b) == 0 || len(other) == 0 {
		return len(b) == len(other)
	}
	return len(b) == len(other) && &b[0] == &other[0]
}

// TileCounts returns the number of tiles each player controls.
func TileCounts(board Board) [NumPlayers]int {
	var counts [NumPlayers]int
	for _, value := range board {
		if !HasSheep(value) {
			continue
		}
		if owner := OwnerOf(value); owner.Valid() {
			counts[owner]++
		}
	}
	return counts
}

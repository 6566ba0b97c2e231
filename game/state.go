package game

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLevel = errors.New("malformed level")
	ErrPlayerCount    = errors.New("unsupported player count")
)

// Level is static board layout data supplied by a level catalog.
type Level struct {
	Name       string `json:"name" yaml:"name"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Board      []int  `json:"board" yaml:"board"`
	StartTiles []int  `json:"startTiles" yaml:"startTiles"`
	Test       bool   `json:"test,omitempty" yaml:"test"`
}

// State is everything the game loop needs to drive a game.
type State struct {
	Board Board
	Phase Phase
	Size  Size
}

// Initialize checks level for consistency and returns the opening state.
// Start tiles that sit on missing tiles are dropped from the legal set; the
// remaining ones keep their order. A level where every player already owns a
// tile, or where no legal start tile is left, starts in Playing.
func Initialize(level Level, players int) (State, error) {
	if players != NumPlayers {
		return State{}, fmt.Errorf("%w: %d, only %d players are supported", ErrPlayerCount, players, NumPlayers)
	}
	size := Size{Width: level.Width, Height: level.Height}
	if size.Width <= 0 || size.Height <= 0 {
		return State{}, fmt.Errorf("%w %q: size %dx%d", ErrMalformedLevel, level.Name, size.Width, size.Height)
	}
	if !size.Fits(len(level.Board)) {
		return State{}, fmt.Errorf("%w %q: board has %d cells, expected %dx%d",
			ErrMalformedLevel, level.Name, len(level.Board), size.Width, size.Height)
	}

	board := make(Board, len(level.Board))
	placed := 0
	for i, value := range level.Board {
		if value < Missing || (HasSheep(value) && !OwnerOf(value).Valid()) {
			return State{}, fmt.Errorf("%w %q: cell %d has value %d", ErrMalformedLevel, level.Name, i, value)
		}
		board[i] = value
	}
	for _, count := range TileCounts(board) {
		if count > 0 {
			placed++
		}
	}
	if placed >= players {
		return State{Board: board, Phase: Playing{}, Size: size}, nil
	}

	startTiles := make([]int, 0, len(level.StartTiles))
	for _, tile := range level.StartTiles {
		if tile < 0 || tile >= len(board) {
			return State{}, fmt.Errorf("%w %q: start tile %d outside the board", ErrMalformedLevel, level.Name, tile)
		}
		if board[tile] == Empty {
			startTiles = append(startTiles, tile)
		}
	}
	if placed == 0 && len(startTiles) < players {
		return State{}, fmt.Errorf("%w %q: %d legal start tiles for %d players", ErrMalformedLevel, level.Name, len(startTiles), players)
	}
	if len(startTiles) == 0 {
		return State{Board: board, Phase: Playing{}, Size: size}, nil
	}

	return State{
		Board: board,
		Phase: SelectingStart{StartTiles: startTiles, Players: players},
		Size:  size,
	}, nil
}

package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mixedLevel() Level {
	return Level{
		Name:       "Mixed",
		Width:      6,
		Height:     4,
		Board:      mixedBoard.Copy(),
		StartTiles: []int{0, 1, 2, 3, 6, 12, 18, 19, 20, 14, 15, 10, 16, 23},
	}
}

func TestInitialize(t *testing.T) {
	t.Run("empty level starts by selecting start tiles", func(t *testing.T) {
		level := mixedLevel()
		state, err := Initialize(level, 2)
		require.NoError(t, err)

		require.Equal(t, Board(level.Board), state.Board)
		require.Equal(t, Size{Width: 6, Height: 4}, state.Size)
		require.Equal(t, SelectingStart{StartTiles: level.StartTiles, Players: 2}, state.Phase)

		state.Board[0] = 17
		require.Equal(t, 1, level.Board[0], "State should not share the level's board")
	})

	t.Run("level with both players placed is already playing", func(t *testing.T) {
		level := mixedLevel()
		level.Board[0] = 17
		level.Board[3] = 33

		state, err := Initialize(level, 2)
		require.NoError(t, err)
		require.Equal(t, Playing{}, state.Phase)
	})

	t.Run("filled level without free start tiles is playing", func(t *testing.T) {
		level := mixedLevel()
		for i, value := range level.Board {
			if value == Empty {
				level.Board[i] = Encode(1, 0)
			}
		}

		state, err := Initialize(level, 2)
		require.NoError(t, err)
		require.Equal(t, Playing{}, state.Phase)
	})

	t.Run("start tiles on missing tiles are dropped", func(t *testing.T) {
		level := mixedLevel()
		level.StartTiles = []int{4, 0, 5, 1}

		state, err := Initialize(level, 2)
		require.NoError(t, err)
		require.Equal(t, []int{0, 1}, state.Phase.(SelectingStart).StartTiles)
	})

	t.Run("rejects malformed levels", func(t *testing.T) {
		short := mixedLevel()
		short.Board = short.Board[:20]
		_, err := Initialize(short, 2)
		require.ErrorIs(t, err, ErrMalformedLevel)

		outside := mixedLevel()
		outside.StartTiles = append(outside.StartTiles, 24)
		_, err = Initialize(outside, 2)
		require.ErrorIs(t, err, ErrMalformedLevel)

		crowded := mixedLevel()
		crowded.StartTiles = []int{0}
		_, err = Initialize(crowded, 2)
		require.ErrorIs(t, err, ErrMalformedLevel)

		wrapped := Level{Name: "wrapped", Width: 274177, Height: 67280421310721, Board: []int{1}, StartTiles: []int{0}}
		_, err = Initialize(wrapped, 2)
		require.ErrorIs(t, err, ErrMalformedLevel, "Dimensions whose product wraps around should be rejected")

		badCell := mixedLevel()
		badCell.Board[0] = 40
		_, err = Initialize(badCell, 2)
		require.ErrorIs(t, err, ErrMalformedLevel)
	})

	t.Run("rejects other player counts", func(t *testing.T) {
		_, err := Initialize(mixedLevel(), 3)
		require.ErrorIs(t, err, ErrPlayerCount)
	})
}

func TestSelectingStartClaim(t *testing.T) {
	phase := SelectingStart{StartTiles: []int{0, 1, 2}, Players: 2}

	board, err := PlaceStart(mixedBoard, 1, 16, 0)
	require.NoError(t, err)
	next := phase.Claim(board, 1)
	require.Equal(t, SelectingStart{StartTiles: []int{0, 2}, Players: 2}, next)
	require.Equal(t, []int{0, 1, 2}, phase.StartTiles, "Claim should not modify the legal set")
	require.True(t, phase.Legal(1))
	require.False(t, next.(SelectingStart).Legal(1), "Claimed tile should not be legal again")

	board, err = PlaceStart(board, 2, 16, 1)
	require.NoError(t, err)
	require.Equal(t, Playing{}, next.(SelectingStart).Claim(board, 2), "Game should start once both players placed")
}

func TestSelectingStartOneStackEach(t *testing.T) {
	phase := SelectingStart{StartTiles: []int{1, 2, 3}, Players: 2}
	board := Board{17, 1, 1, 1}

	t.Run("next to place skips players on the board", func(t *testing.T) {
		require.Equal(t, Player(1), phase.NextToPlace(board, 0))
		require.Equal(t, Player(1), phase.NextToPlace(board, 1))
		require.Equal(t, Player(0), phase.NextToPlace(Board{1, 1, 1, 1}, 0))
		require.Equal(t, Player(1), phase.NextToPlace(Board{17, 1, 1, 33}, 1), "Start is kept once everybody placed")
	})

	t.Run("claim by a placed player is rejected", func(t *testing.T) {
		err := phase.CheckClaim(board, 2, 16, 0)
		require.ErrorIs(t, err, ErrInvalidMove)
		require.Contains(t, err.Error(), "already placed")

		require.NoError(t, phase.CheckClaim(board, 2, 16, 1))
		require.ErrorIs(t, phase.CheckClaim(board, 0, 16, 1), ErrInvalidMove, "Tile outside the legal set")
	})

	t.Run("partly started level", func(t *testing.T) {
		level := Level{Name: "half", Width: 8, Height: 1, Board: []int{17, 1, 1, 1, 1, 1, 1, 1}, StartTiles: []int{1, 2, 3, 4, 5, 6, 7}}
		state, err := Initialize(level, 2)
		require.NoError(t, err)

		selecting := state.Phase.(SelectingStart)
		require.True(t, Placed(state.Board, 0))
		require.False(t, Placed(state.Board, 1))
		require.Equal(t, Player(1), selecting.NextToPlace(state.Board, 0))
	})
}

func TestOutcome(t *testing.T) {
	t.Run("more tiles wins", func(t *testing.T) {
		board := Board{2, 2, 18, 0}
		require.Equal(t, Winner{Player: 0}, ComputeOutcome(board))
		require.Equal(t, "Player0", ComputeOutcome(board).String())
	})

	t.Run("equal tiles tie", func(t *testing.T) {
		board := Board{17, 1, 1, 33}
		require.Equal(t, Tie{}, ComputeOutcome(board))
	})

	t.Run("undecided while a player can move", func(t *testing.T) {
		size := Size{Width: 4, Height: 1}
		require.Equal(t, Undecided{}, Status(Board{17, 1, 1, 33}, size))
		require.Equal(t, Winner{Player: 1}, Status(Board{18, 18, 2, 1}, size))
	})
}

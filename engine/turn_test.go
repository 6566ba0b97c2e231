package engine

import (
	"context"
	"testing"

	"battlesheep/agent"
	"battlesheep/game"
	"battlesheep/levels"
	"battlesheep/searcher"

	"github.com/stretchr/testify/require"
)

func initialState(t *testing.T, key string) game.State {
	t.Helper()
	level, err := levels.Load(key)
	require.NoError(t, err)
	state, err := game.Initialize(level, 2)
	require.NoError(t, err)
	return state
}

func minimax(depth int, seed uint64) agent.Agent {
	return agent.NewMinimax(agent.WithSeed(seed), agent.WithSearcher(searcher.NewSearcher(searcher.WithDepth(depth))))
}

func requireNoMoves(t *testing.T, g Game) {
	t.Helper()
	for p := game.Player(0); p < game.NumPlayers; p++ {
		require.False(t, game.HasMoves(g.Board, g.Size, p), "Player %d should have no moves at the end", p)
	}
}

func TestNewGame(t *testing.T) {
	t.Run("start phase begins with player 0", func(t *testing.T) {
		g := NewGame(initialState(t, "test"))
		require.Equal(t, game.Player(0), g.Player)
		require.False(t, g.Over())
	})

	t.Run("full board is decided immediately", func(t *testing.T) {
		g := NewGame(initialState(t, "testFull"))
		require.True(t, g.Over())
		require.Equal(t, game.Winner{Player: 0}, g.Outcome)
	})
}

func TestRunAiTurn(t *testing.T) {
	state := initialState(t, "test")
	o := NewOrchestrator(nil, minimax(2, 3))

	decision, _, err := o.RunAiTurn(context.Background(), state.Board, state.Size, state.Phase, 1)
	require.NoError(t, err)
	require.True(t, decision.Moved)
	require.Contains(t, decision.Board, 33)
	require.Len(t, decision.Phase.(game.SelectingStart).StartTiles, 13)

	_, _, err = o.RunAiTurn(context.Background(), state.Board, state.Size, state.Phase, 0)
	require.ErrorIs(t, err, ErrHumanTurn)
}

func TestAdvance(t *testing.T) {
	t.Run("ai keeps moving while the human is stuck", func(t *testing.T) {
		state := initialState(t, "testAlphabeta1")
		o := NewOrchestrator(nil, minimax(2, 1))
		g := Game{Board: state.Board, Size: state.Size, Phase: state.Phase, Player: 1, Outcome: game.Undecided{}}

		g, moved, err := o.Advance(context.Background(), g)
		require.NoError(t, err)
		require.True(t, moved)
		require.True(t, g.Over())
		require.Equal(t, game.Winner{Player: 1}, g.Outcome)
		requireNoMoves(t, g)
	})

	t.Run("stops at the human", func(t *testing.T) {
		o := NewOrchestrator(nil, minimax(2, 5))
		g := NewGame(initialState(t, "test"))

		g, moved, err := o.Advance(context.Background(), g)
		require.NoError(t, err)
		require.False(t, moved, "Human acts first")

		g, err = o.Claim(g, 0)
		require.NoError(t, err)
		require.Equal(t, 17, g.Board[0])
		require.Equal(t, game.Player(1), g.Player)

		g, moved, err = o.Advance(context.Background(), g)
		require.NoError(t, err)
		require.True(t, moved)
		require.Equal(t, game.Playing{}, g.Phase)
		require.Equal(t, game.Player(0), g.Player, "Turn should return to the human")
		require.Equal(t, [game.NumPlayers]int{1, 1}, game.TileCounts(g.Board))
	})

	t.Run("two ais play to the end", func(t *testing.T) {
		o := NewOrchestrator(minimax(1, 1), minimax(1, 2))
		g, moved, err := o.Advance(context.Background(), NewGame(initialState(t, "testOpen")))
		require.NoError(t, err)
		require.True(t, moved)
		require.True(t, g.Over())
		require.Equal(t, game.ComputeOutcome(g.Board), g.Outcome)
		requireNoMoves(t, g)
	})

	t.Run("canceled context stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		o := NewOrchestrator(minimax(1, 1), minimax(1, 2))
		_, _, err := o.Advance(ctx, NewGame(initialState(t, "testStarted")))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStep(t *testing.T) {
	o := NewOrchestrator(nil, minimax(1, 1))

	_, _, err := o.Step(context.Background(), NewGame(initialState(t, "testStarted")))
	require.ErrorIs(t, err, ErrHumanTurn)

	_, _, err = o.Step(context.Background(), NewGame(initialState(t, "testFull")))
	require.ErrorIs(t, err, ErrGameOver)
}

func halfStarted(t *testing.T) game.State {
	t.Helper()
	level := game.Level{Name: "half", Width: 8, Height: 1, Board: []int{17, 1, 1, 1, 1, 1, 1, 1}, StartTiles: []int{1, 2, 3, 4, 5, 6, 7}}
	state, err := game.Initialize(level, 2)
	require.NoError(t, err)
	return state
}

func TestPartlyStartedLevel(t *testing.T) {
	t.Run("player without a stack places first", func(t *testing.T) {
		o := NewOrchestrator(nil, nil)
		g := NewGame(halfStarted(t))
		require.Equal(t, game.Player(1), g.Player)

		g, err := o.Claim(g, 3)
		require.NoError(t, err)
		require.Equal(t, 33, g.Board[3])
		require.Equal(t, game.Playing{}, g.Phase)
		require.Equal(t, [game.NumPlayers]int{1, 1}, game.TileCounts(g.Board))
		require.Equal(t, game.Player(0), g.Player)
	})

	t.Run("second stack is rejected", func(t *testing.T) {
		o := NewOrchestrator(nil, nil)
		g := NewGame(halfStarted(t))
		g.Player = 0

		_, err := o.Claim(g, 3)
		require.ErrorIs(t, err, game.ErrInvalidMove)
	})

	t.Run("ai places once for the missing player", func(t *testing.T) {
		o := NewOrchestrator(minimax(1, 1), minimax(1, 2))
		g, _, err := o.Step(context.Background(), NewGame(halfStarted(t)))
		require.NoError(t, err)
		require.Equal(t, game.Playing{}, g.Phase)
		require.Equal(t, [game.NumPlayers]int{1, 1}, game.TileCounts(g.Board))
	})
}

func TestHumanActions(t *testing.T) {
	o := NewOrchestrator(nil, nil)

	t.Run("claim", func(t *testing.T) {
		g := NewGame(initialState(t, "test"))

		_, err := o.Claim(g, 4)
		require.ErrorIs(t, err, game.ErrInvalidMove, "Missing tile is not a start tile")

		g, err = o.Claim(g, 23)
		require.NoError(t, err)
		g, err = o.Claim(g, 0)
		require.NoError(t, err)
		require.Equal(t, game.Playing{}, g.Phase)
		require.Equal(t, 17, g.Board[23])
		require.Equal(t, 33, g.Board[0])

		_, err = o.Claim(g, 1)
		require.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("split", func(t *testing.T) {
		g := NewGame(initialState(t, "testStarted"))
		require.Equal(t, game.Player(0), g.Player)

		_, err := o.Split(g, 0, 1, 8)
		require.ErrorIs(t, err, game.ErrInvalidMove)

		next, err := o.Split(g, 0, 2, 8)
		require.NoError(t, err)
		require.Equal(t, 9, next.Board[0])
		require.Equal(t, 9, next.Board[2])
		require.Equal(t, game.Player(1), next.Player)
		require.Equal(t, 17, g.Board[0], "Previous game state should not change")

		_, err = o.Split(NewGame(initialState(t, "test")), 0, 2, 8)
		require.ErrorIs(t, err, ErrWrongPhase)
	})
}

package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"battlesheep/levels"

	"github.com/stretchr/testify/require"
)

func TestRunDepthExperiment(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Level: "testOpenStarted", Games: 2, Seed: 1, Dir: dir}

	results, err := RunDepthExperiment(context.Background(), cfg, 1, 2)
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	require.Equal(t, 1, result.Agent1.Depth)
	require.Equal(t, 2, result.Agent2.Depth)
	require.Equal(t, cfg.Games, result.Wins[0]+result.Wins[1]+result.Ties+result.Open, "Every game should be counted once")

	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		matches, err := filepath.Glob(filepath.Join(dir, "depth", "*", name))
		require.NoError(t, err)
		require.Len(t, matches, 1, "Should write %s", name)
	}
}

func TestRunDepthExperimentUnknownLevel(t *testing.T) {
	_, err := RunDepthExperiment(context.Background(), Config{Level: "nope", Games: 1}, 1, 2)
	require.ErrorIs(t, err, levels.ErrUnknownLevel)
}

func TestRunDepthExperimentCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
levels:
  - key: corridor
    name: Corridor
    width: 4
    height: 1
    board: [17, 1, 1, 33]
`), 0o644))
	catalog, err := levels.ParseFile(path)
	require.NoError(t, err)

	cfg := Config{Catalog: catalog, Level: "corridor", Games: 2, Seed: 1}
	results, err := RunDepthExperiment(context.Background(), cfg, 1, 2)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, cfg.Games, results[0].Wins[0]+results[0].Wins[1]+results[0].Ties+results[0].Open)

	_, err = RunDepthExperiment(context.Background(), Config{Catalog: catalog, Level: "mixed", Games: 1}, 1, 2)
	require.ErrorIs(t, err, levels.ErrUnknownLevel, "Built-in levels should not leak into a custom catalog")
}

func TestRunThroughputExperiment(t *testing.T) {
	cfg := Config{Level: "testOpenStarted", Games: 1, Seed: 3}

	throughputs, err := RunThroughputExperiment(context.Background(), cfg, 1, 2)
	require.NoError(t, err)
	require.Len(t, throughputs, 2)

	for i, tp := range throughputs {
		require.Equal(t, i+1, tp.Depth)
		require.Positive(t, tp.Moves)
		require.GreaterOrEqual(t, tp.Nodes, tp.Moves, "Every search visits at least its root")
	}
}

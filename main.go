package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"battlesheep/agent"
	"battlesheep/engine"
	"battlesheep/experiments"
	"battlesheep/game"
	"battlesheep/levels"
	"battlesheep/meta"
	"battlesheep/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "selfplay", "selfplay, experiment, throughput or serve")
	level := flag.String("level", "mixed", "Level key")
	levelsFile := flag.String("levels", "", "YAML level catalog replacing the built-in levels")
	depth := flag.Int("depth", meta.DEFAULT_DEPTH, "Search depth of player 0")
	opponentDepth := flag.Int("opponent-depth", meta.DEFAULT_DEPTH, "Search depth of player 1")
	games := flag.Int("games", 10, "Games per match up")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed for start tiles")
	addr := flag.String("addr", ":8080", "Listen address of the agent server")
	remote := flag.String("remote", "", "Agent server URL playing player 1 in self-play")
	out := flag.String("out", "experiments", "Directory for experiment CSV files")
	debug := flag.Bool("debug", false, "Log every turn and search")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	catalog := levels.Builtin()
	if *levelsFile != "" {
		var err error
		catalog, err = levels.ParseFile(*levelsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load levels")
		}
		log.Info().Msgf("loaded %d levels from %s", len(catalog.Keys()), *levelsFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *mode {
	case "selfplay":
		err = runSelfPlay(ctx, catalog, *level, *depth, *opponentDepth, *seed, *remote)
	case "experiment":
		cfg := experiments.Config{Catalog: catalog, Level: *level, Games: *games, Seed: *seed, Dir: *out}
		_, err = experiments.RunDepthExperiment(ctx, cfg, *depth, *opponentDepth)
	case "throughput":
		cfg := experiments.Config{Catalog: catalog, Level: *level, Games: *games, Seed: *seed}
		_, err = experiments.RunThroughputExperiment(ctx, cfg, *depth, *opponentDepth)
	case "serve":
		err = agent.NewServer(catalog, *seed).ListenAndServe(*addr)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func runSelfPlay(ctx context.Context, catalog *levels.Catalog, key string, depth, opponentDepth int, seed uint64, remote string) error {
	lvl, err := catalog.Load(key)
	if err != nil {
		return err
	}
	state, err := game.Initialize(lvl, meta.PLAYERS)
	if err != nil {
		return err
	}

	var opponent agent.Agent = agent.NewMinimax(
		agent.WithSeed(seed+1),
		agent.WithSearcher(searcher.NewSearcher(searcher.WithDepth(opponentDepth), searcher.WithMetrics())),
	)
	if remote != "" {
		opponent = agent.NewRemote(remote, opponentDepth)
	}
	e := engine.LocalEngine(state,
		agent.NewMinimax(
			agent.WithSeed(seed),
			agent.WithSearcher(searcher.NewSearcher(searcher.WithDepth(depth), searcher.WithMetrics())),
		),
		opponent,
	)

	log.Info().Msgf("starting %s with depth %d against depth %d...", lvl.Name, depth, opponentDepth)
	outcome, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	counts := game.TileCounts(e.Game.Board)
	log.Info().Msgf("game over after %d moves in %s: %s (tiles %v)", gameMetric.TotalMoves, gameMetric.Duration, outcome, counts)
	return nil
}

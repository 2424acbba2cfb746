package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-maze-chase/internal/viewer"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "path to a JSON configuration, defaults are used when empty")
	seed := flag.Int64("seed", -1, "maze and spawn seed, overrides the configuration when >= 0")
	debug := flag.Bool("debug", false, "log actor system debug messages")
	flag.Parse()

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			logger.Fatalf("config: %v", err)
		}
	}
	if *seed >= 0 {
		cfg.Seed = uint64(*seed)
		cfg.Maze.Seed = uint64(*seed)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("MazeChase",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		logger.Fatalf("actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		logger.Fatalf("actor system start: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	game, err := viewer.NewGame(ctx, cfg, system, logger)
	if err != nil {
		logger.Fatalf("viewer: %v", err)
	}
	ebiten.SetWindowSize(game.Layout(0, 0))
	ebiten.SetWindowTitle("Maze Chase: feed yourself, dodge the bees")
	if err := ebiten.RunGame(game); err != nil {
		logger.Errorf("game: %v", err)
	}
}

// Command headless runs a scripted maze chase without a window and prints
// the outcome. It is handy for tuning configurations.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/simulation"
	"github.com/pkg/errors"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

var errUnexpectedReply = errors.New("unexpected reply to state query")

func main() {
	configFile := flag.String("config", "", "path to a JSON configuration, defaults are used when empty")
	seed := flag.Int64("seed", -1, "maze and spawn seed, overrides the configuration when >= 0")
	duration := flag.Duration("duration", 2*time.Minute, "simulated time to run")
	step := flag.Duration("step", time.Second/60, "simulated time per tick")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stdout)
	if *step <= 0 {
		logger.Fatalf("step must be positive, got %s", *step)
	}

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

	// wander the maze in a square until the game ends
	script := simulation.NewScriptedController(true,
		simulation.ScriptStep{Direction: geometry.NewPlanar(1, 0), Duration: 3},
		simulation.ScriptStep{Direction: geometry.NewPlanar(0, 1), Duration: 3},
		simulation.ScriptStep{Direction: geometry.NewPlanar(-1, 0), Duration: 3},
		simulation.ScriptStep{Direction: geometry.NewPlanar(0, -1), Duration: 3},
		simulation.ScriptStep{Duration: 1},
	)

	ctx := context.Background()
	system, err := actor.NewActorSystem("MazeChaseHeadless",
		actor.WithLogger(golog.DiscardLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		logger.Fatalf("actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		logger.Fatalf("actor system start: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	pid, err := system.Spawn(ctx, "world", simulation.NewWorldActor(cfg, script, nil))
	if err != nil {
		logger.Fatalf("spawn world: %v", err)
	}

	var state *structpb.Struct
	ticks := int(*duration / *step)
	for i := 0; i < ticks; i++ {
		if err := actor.Tell(ctx, pid, simulation.TickMessage(*step)); err != nil {
			logger.Fatalf("tick %d: %v", i, err)
		}
		if i%600 != 599 && i != ticks-1 {
			continue
		}
		if state, err = queryState(ctx, pid); err != nil {
			logger.Fatalf("state: %v", err)
		}
		fields := state.GetFields()
		player := fields["player"].GetStructValue().GetFields()
		logger.Infof("t=%6.1fs status=%s health=%.0f",
			fields["elapsed"].GetNumberValue(),
			fields["status"].GetStringValue(),
			player["health"].GetNumberValue())
		if fields["status"].GetStringValue() != simulation.Running.String() {
			break
		}
	}
	if state == nil {
		logger.Warn("no tick was run")
		return
	}
	logger.Infof("run %s ended %s", state.GetFields()["runId"].GetStringValue(), state.GetFields()["status"].GetStringValue())
}

func queryState(ctx context.Context, pid *actor.PID) (*structpb.Struct, error) {
	reply, err := actor.Ask(ctx, pid, simulation.StateQuery(), 5*time.Second)
	if err != nil {
		return nil, errors.Wrap(err, "ask world")
	}
	state, ok := reply.(*structpb.Struct)
	if !ok {
		return nil, errors.Wrapf(errUnexpectedReply, "%T", reply)
	}
	return state, nil
}

package simulation

import (
	"time"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/pkg/errors"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	commandInput = "input"
	commandTune  = "tune"
)

// TickMessage asks the world to advance by dt.
func TickMessage(dt time.Duration) *durationpb.Duration { return durationpb.New(dt) }

// StateQuery is answered with the current snapshot as a *structpb.Struct.
func StateQuery() *emptypb.Empty { return &emptypb.Empty{} }

// RestartMessage rebuilds the world on a maze generated from seed.
func RestartMessage(seed int64) *wrapperspb.Int64Value { return wrapperspb.Int64(seed) }

// InputMessage latches a movement direction, zero to stop.
func InputMessage(direction geometry.Vector3D) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"type": structpb.NewStringValue(commandInput),
		"dx":   structpb.NewNumberValue(direction.X),
		"dz":   structpb.NewNumberValue(direction.Z),
	}}
}

// TuneMessage changes a live steering parameter, see World.Tune.
func TuneMessage(name string, value float64) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"type":  structpb.NewStringValue(commandTune),
		"name":  structpb.NewStringValue(name),
		"value": structpb.NewNumberValue(value),
	}}
}

// WorldActor hosts a World. Its mailbox serialises input, ticks, restarts and
// queries so the simulation itself stays single threaded.
type WorldActor struct {
	cfg        *Config
	world      *World
	controller Controller
	manual     *ManualController
	snapshotCh chan<- *Snapshot
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world logic unit. With a nil controller the
// player is driven by input messages. snapshotCh may be nil; when set it
// receives a snapshot after every tick, dropped if the reader is busy.
func NewWorldActor(cfg *Config, ctrl Controller, snapshotCh chan<- *Snapshot) *WorldActor {
	w := &WorldActor{cfg: cfg, controller: ctrl, snapshotCh: snapshotCh}
	if ctrl == nil {
		w.manual = NewManualController()
		w.controller = w.manual
	}
	return w
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is building the maze...")
	return w.cfg.Validate()
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	w.running(ctx)
}

// running is the behaviour while the game is on.
func (w *WorldActor) running(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		if err := w.build(ctx.Logger(), w.cfg); err != nil {
			ctx.Logger().Errorf("world build failed: %v", err)
			ctx.Err(err)
		}

	case *durationpb.Duration:
		if w.world == nil {
			return
		}
		status := w.world.Tick(msg.AsDuration().Seconds())
		w.pushSnapshot()
		if status != Running {
			ctx.Logger().Infof("World %s finished: %s", w.world.RunID, status)
			ctx.Become(w.finished)
		}

	case *structpb.Struct:
		w.handleCommand(ctx, msg)

	case *emptypb.Empty:
		w.respondState(ctx)

	case *wrapperspb.Int64Value:
		w.restart(ctx, msg.GetValue())

	default:
		ctx.Unhandled()
	}
}

// finished ignores ticks and input until a restart.
func (w *WorldActor) finished(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *durationpb.Duration, *structpb.Struct:
		// game over, the world is frozen

	case *emptypb.Empty:
		w.respondState(ctx)

	case *wrapperspb.Int64Value:
		w.restart(ctx, msg.GetValue())
		ctx.Become(w.running)

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) build(logger golog.Logger, cfg *Config) error {
	world, err := NewWorld(cfg, nil, w.controller, logger)
	if err != nil {
		return err
	}
	w.world = world
	if w.manual != nil {
		w.manual.Set(geometry.Zero)
	}
	w.pushSnapshot()
	return nil
}

func (w *WorldActor) restart(ctx *actor.ReceiveContext, seed int64) {
	cfg := *w.cfg
	cfg.Maze.Seed = uint64(seed)
	cfg.Seed = uint64(seed)
	if err := w.build(ctx.Logger(), &cfg); err != nil {
		ctx.Logger().Errorf("restart with seed %d failed: %v", seed, err)
		return
	}
	ctx.Logger().Infof("World restarted with seed %d as %s", seed, w.world.RunID)
}

func (w *WorldActor) handleCommand(ctx *actor.ReceiveContext, msg *structpb.Struct) {
	fields := msg.GetFields()
	switch kind := fields["type"].GetStringValue(); kind {
	case commandInput:
		if w.manual == nil {
			return // scripted runs ignore live input
		}
		w.manual.Set(geometry.NewPlanar(fields["dx"].GetNumberValue(), fields["dz"].GetNumberValue()))
	case commandTune:
		if w.world == nil {
			return
		}
		if err := w.world.Tune(fields["name"].GetStringValue(), fields["value"].GetNumberValue()); err != nil {
			ctx.Logger().Warnf("tune: %v", err)
		}
	default:
		ctx.Logger().Warnf("unknown command %q", kind)
	}
}

func (w *WorldActor) respondState(ctx *actor.ReceiveContext) {
	if w.world == nil {
		ctx.Err(errors.New("world not built"))
		return
	}
	state, err := w.world.Snapshot().ToProto()
	if err != nil {
		ctx.Err(errors.Wrap(err, "encode snapshot"))
		return
	}
	ctx.Response(state)
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil || w.world == nil {
		return
	}
	select {
	case w.snapshotCh <- w.world.Snapshot():
	default:
		// UI busy, skip frame
	}
}

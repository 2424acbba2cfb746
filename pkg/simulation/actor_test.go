package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

func startWorldActor(t *testing.T, cfg *Config, ctrl Controller, snapshots chan<- *Snapshot) (context.Context, *actor.PID) {
	t.Helper()
	ctx := context.Background()
	system, err := actor.NewActorSystem("MazeChaseTest",
		actor.WithLogger(golog.DiscardLogger),
		actor.WithActorInitMaxRetries(3))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })

	pid, err := system.Spawn(ctx, "world", NewWorldActor(cfg, ctrl, snapshots))
	require.NoError(t, err)
	return ctx, pid
}

func askState(t *testing.T, ctx context.Context, pid *actor.PID) *structpb.Struct {
	t.Helper()
	resp, err := actor.Ask(ctx, pid, StateQuery(), time.Second)
	require.NoError(t, err)
	state, ok := resp.(*structpb.Struct)
	require.True(t, ok, "unexpected reply %T", resp)
	return state
}

func TestWorldActor_TickAndQuery(t *testing.T) {
	snapshots := make(chan *Snapshot, 64)
	ctx, pid := startWorldActor(t, quietConfig(), nil, snapshots)

	for i := 0; i < 10; i++ {
		require.NoError(t, actor.Tell(ctx, pid, TickMessage(time.Second/60)))
	}
	state := askState(t, ctx, pid)
	fields := state.GetFields()
	assert.Equal(t, 10.0, fields["tick"].GetNumberValue())
	assert.Equal(t, "running", fields["status"].GetStringValue())
	assert.Len(t, fields["bees"].GetListValue().GetValues(), 15)

	var last *Snapshot
	require.Eventually(t, func() bool {
		for {
			select {
			case s := <-snapshots:
				last = s
			default:
				return last != nil && last.Tick == 10
			}
		}
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, fields["runId"].GetStringValue(), last.RunID)
}

func TestWorldActor_InputMovesPlayer(t *testing.T) {
	cfg := quietConfig()
	cfg.HiveCount = 0
	ctx, pid := startWorldActor(t, cfg, nil, nil)

	require.NoError(t, actor.Tell(ctx, pid, InputMessage(geometry.Vector3D{X: 1})))
	for i := 0; i < 5; i++ {
		require.NoError(t, actor.Tell(ctx, pid, TickMessage(100*time.Millisecond)))
	}
	player := askState(t, ctx, pid).GetFields()["player"].GetStructValue().GetFields()
	assert.Equal(t, StateMoving, player["state"].GetStringValue())

	require.NoError(t, actor.Tell(ctx, pid, InputMessage(geometry.Zero)))
	require.NoError(t, actor.Tell(ctx, pid, TickMessage(100*time.Millisecond)))
	player = askState(t, ctx, pid).GetFields()["player"].GetStructValue().GetFields()
	assert.Equal(t, StateIdle, player["state"].GetStringValue())
}

func TestWorldActor_GameOverAndRestart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HungerInterval = 1
	cfg.HungerPenalty = 100
	ctx, pid := startWorldActor(t, cfg, nil, nil)

	require.NoError(t, actor.Tell(ctx, pid, TickMessage(time.Second)))
	state := askState(t, ctx, pid).GetFields()
	assert.Equal(t, "lost", state["status"].GetStringValue())
	runID := state["runId"].GetStringValue()

	// frozen until restart
	require.NoError(t, actor.Tell(ctx, pid, TickMessage(time.Second)))
	assert.Equal(t, 1.0, askState(t, ctx, pid).GetFields()["tick"].GetNumberValue())

	require.NoError(t, actor.Tell(ctx, pid, RestartMessage(7)))
	state = askState(t, ctx, pid).GetFields()
	assert.Equal(t, "running", state["status"].GetStringValue())
	assert.Equal(t, 0.0, state["tick"].GetNumberValue())
	assert.NotEqual(t, runID, state["runId"].GetStringValue())

	require.NoError(t, actor.Tell(ctx, pid, TickMessage(100*time.Millisecond)))
	assert.Equal(t, 1.0, askState(t, ctx, pid).GetFields()["tick"].GetNumberValue())
}

func TestWorldActor_Tune(t *testing.T) {
	ctx, pid := startWorldActor(t, quietConfig(), nil, nil)
	require.NoError(t, actor.Tell(ctx, pid, TuneMessage("separationWeight", 5)))
	require.NoError(t, actor.Tell(ctx, pid, TuneMessage("unknown", 5)))
	// the actor keeps serving after a bad command
	assert.Equal(t, "running", askState(t, ctx, pid).GetFields()["status"].GetStringValue())
}

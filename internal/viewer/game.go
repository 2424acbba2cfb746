// Package viewer renders a running maze chase with ebiten and forwards
// keyboard and panel input to the world actor.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/ui"
	"github.com/pkg/errors"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
)

const (
	pixelsPerTile = 64.0
	panelWidth    = 280.0
	minHeight     = 480
)

type tuneWidget struct {
	name   string
	slider *ui.Slider
}

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	logger     golog.Logger

	cfg  *simulation.Config
	seed int64

	panel         *ui.Panel
	restartButton *ui.Button
	tunes         []tuneWidget
	showHeatmap   *ui.Checkbox
	showHives     *ui.Checkbox
	lastInput     geometry.Vector3D

	width, height int

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame spawns the world actor on system and builds the control panel.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem, logger golog.Logger) (*Game, error) {
	snapshotCh := make(chan *simulation.Snapshot, 10)
	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(cfg, nil, snapshotCh))
	if err != nil {
		return nil, errors.Wrap(err, "spawn world")
	}

	mazeH := int(float64(cfg.Rows) * pixelsPerTile)
	g := &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		logger:     logger,
		cfg:        cfg,
		seed:       int64(cfg.Maze.Seed),
		width:      int(panelWidth + float64(cfg.Cols)*pixelsPerTile),
		height:     max(mazeH, minHeight),
	}

	panel := ui.NewPanel(10, 10, panelWidth-20, float64(g.height)-70)
	panel.AddSection("Flocking")
	g.tunes = append(g.tunes,
		tuneWidget{"separationWeight", panel.AddSlider("Separation", 0, 10, cfg.SeparationWeight)},
		tuneWidget{"alignmentWeight", panel.AddSlider("Alignment", 0, 10, cfg.AlignmentWeight)},
		tuneWidget{"cohesionWeight", panel.AddSlider("Cohesion", 0, 10, cfg.CohesionWeight)},
	)

	panel.AddSection("Chase")
	g.tunes = append(g.tunes,
		tuneWidget{"chaseForceScale", panel.AddSlider("Chase Force", 0, 20, cfg.ChaseForceScale)},
		tuneWidget{"giveUpCost", panel.AddSlider("Give Up Cost", 1, 200, cfg.GiveUpCost)},
		tuneWidget{"pushForce", panel.AddSlider("Push Force", 0, 200, cfg.PushForce)},
	)

	panel.AddSection("Visualization")
	g.showHeatmap = panel.AddCheckbox("Show Heatmap", false)
	g.showHives = panel.AddCheckbox("Show Hive Counters", true)
	g.panel = panel

	g.restartButton = ui.NewButton(10, float64(g.height)-50, panelWidth-20, 36, "Restart (R)", g.restart)
	return g, nil
}

func (g *Game) tell(msg proto.Message) {
	if err := actor.Tell(g.ctx, g.worldPID, msg); err != nil {
		g.logger.Warnf("tell world: %v", err)
	}
}

func (g *Game) restart() {
	g.seed++
	g.tell(simulation.RestartMessage(g.seed))
	// a rebuilt world starts from the loaded config, re-apply the panel
	for _, t := range g.tunes {
		g.tell(simulation.TuneMessage(t.name, t.slider.Value))
	}
	g.lastInput = geometry.Zero
}

// keyboardDirection maps arrows and WASD on the x/z plane, +z pointing down the screen.
func keyboardDirection() geometry.Vector3D {
	var dx, dz float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dz--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dz++
	}
	return geometry.NewPlanar(dx, dz)
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	g.restartButton.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	// drain to the newest snapshot
	for drained := false; !drained; {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			drained = true
		}
	}

	for _, t := range g.tunes {
		if t.slider.Changed() {
			g.tell(simulation.TuneMessage(t.name, t.slider.Value))
		}
	}

	if dir := keyboardDirection(); !dir.Eq(g.lastInput) {
		g.lastInput = dir
		g.tell(simulation.InputMessage(dir))
	}

	// the world freezes on its final state until a restart
	if g.lastState == nil || g.lastState.Status == simulation.Running {
		g.tell(simulation.TickMessage(time.Second / time.Duration(ebiten.TPS())))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.RGBA{R: 20, G: 20, B: 24, A: 255})
	if s := g.lastState; s != nil {
		g.drawMaze(screen, s)
		g.drawAgents(screen, s)
		g.drawHealthBar(screen, s)
		if s.Status != simulation.Running {
			msg := "GAME OVER\nThe bees got you\nPress R to restart"
			if s.Status == simulation.Won {
				msg = "WELL FED\nYou won !\nPress R to restart"
			}
			ebitenutil.DebugPrintAt(screen, msg, int(panelWidth)+(g.width-int(panelWidth))/2-50, g.height/2)
		}
	}

	g.panel.Draw(screen)
	g.restartButton.Draw(screen)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, g.width-120, g.height-70)
}

func (g *Game) Layout(w, h int) (int, int) { return g.width, g.height }

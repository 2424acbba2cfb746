package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/simulation"
)

// Pre-rendered sprites for fast batched drawing
var (
	beeSprite    *ebiten.Image
	playerSprite *ebiten.Image
)

var (
	wallColor  = color.RGBA{R: 210, G: 210, B: 220, A: 255}
	floorColor = color.RGBA{R: 40, G: 60, B: 40, A: 255}
	goalColor  = color.RGBA{R: 70, G: 110, B: 70, A: 255}
	hiveColor  = color.RGBA{R: 150, G: 90, B: 30, A: 255}
)

var beeTint = map[string]color.RGBA{
	simulation.StateInitial:    {R: 160, G: 160, B: 100, A: 255},
	simulation.StateChasing:    {R: 255, G: 220, B: 0, A: 255},
	simulation.StateTransition: {R: 255, G: 120, B: 0, A: 255},
}

// toScreen maps an x/z world position onto the maze area right of the panel.
func toScreen(s *simulation.Snapshot, p geometry.Vector3D) (float32, float32) {
	x := panelWidth + (p.X-s.Origin.X)/s.TileSize*pixelsPerTile
	y := (p.Z - s.Origin.Z) / s.TileSize * pixelsPerTile
	return float32(x), float32(y)
}

// heatColor fades from green at the goal to red at the far end of the maze.
func heatColor(cost, highest float64) color.RGBA {
	if cost < 0 {
		return color.RGBA{R: 20, G: 20, B: 20, A: 255}
	}
	r := 0.0
	if highest > 0 {
		r = cost / highest
	}
	return color.RGBA{R: uint8(40 + 200*r), G: uint8(200 - 160*r), B: 40, A: 255}
}

func (g *Game) drawMaze(screen *ebiten.Image, s *simulation.Snapshot) {
	highest := 0.0
	for _, c := range s.Heatmap {
		highest = max(highest, c)
	}
	goals := make(map[int]bool, len(s.Goals))
	for _, id := range s.Goals {
		goals[id] = true
	}

	const px = float32(pixelsPerTile)
	for id, open := range s.Openings {
		tx, tz := id%s.Cols, id/s.Cols
		x := float32(panelWidth) + float32(tx)*px
		y := float32(tz) * px

		fill := floorColor
		switch {
		case g.showHeatmap.Value && id < len(s.Heatmap):
			fill = heatColor(s.Heatmap[id], highest)
		case goals[id]:
			fill = goalColor
		}
		vector.FillRect(screen, x, y, px, px, fill, false)
		if g.showHeatmap.Value && id < len(s.Heatmap) && s.Heatmap[id] >= 0 {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f", s.Heatmap[id]), int(x)+4, int(y)+4)
		}

		if open&simulation.OpenWest == 0 {
			vector.StrokeLine(screen, x, y, x, y+px, 3, wallColor, true)
		}
		if open&simulation.OpenEast == 0 {
			vector.StrokeLine(screen, x+px, y, x+px, y+px, 3, wallColor, true)
		}
		if open&simulation.OpenNorth == 0 {
			vector.StrokeLine(screen, x, y, x+px, y, 3, wallColor, true)
		}
		if open&simulation.OpenSouth == 0 {
			vector.StrokeLine(screen, x, y+px, x+px, y+px, 3, wallColor, true)
		}
	}
}

func drawSprite(screen, sprite *ebiten.Image, s *simulation.Snapshot, a simulation.AgentSnapshot, tint color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	// sprites face up, velocity heading is measured from +x
	if !a.Velocity.Planar().IsZero() {
		op.GeoM.Rotate(a.Velocity.Heading() + math.Pi/2)
	}
	op.GeoM.Scale(2, 2)
	x, y := toScreen(s, a.Position)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(tint)
	screen.DrawImage(sprite, op)
}

func (g *Game) drawAgents(screen *ebiten.Image, s *simulation.Snapshot) {
	const half = float32(pixelsPerTile / 4)
	for _, h := range s.Hives {
		x, y := toScreen(s, h.Position)
		clr := hiveColor
		if h.IsPickedUp {
			clr.A = 110
		}
		vector.FillRect(screen, x-half, y-half, 2*half, 2*half, clr, true)
		if g.showHives.Value {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d", h.Count, h.Relocations), int(x-half), int(y+half))
		}
	}

	for _, b := range s.Bees {
		drawSprite(screen, beeSprite, s, b, beeTint[b.State])
	}
	drawSprite(screen, playerSprite, s, s.Player, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func (g *Game) drawHealthBar(screen *ebiten.Image, s *simulation.Snapshot) {
	if s.MaxHealth <= 0 {
		return
	}
	barWidth := float32(200.0)
	barHeight := float32(20.0)
	x := float32(screen.Bounds().Dx()) - barWidth - 10
	y := float32(10.0)

	ratio := float32(s.Player.Health / s.MaxHealth)
	ratio = min(max(ratio, 0), 1)
	vector.FillRect(screen, x, y, barWidth, barHeight, color.RGBA{R: 60, G: 20, B: 20, A: 255}, true)
	vector.FillRect(screen, x, y, barWidth*ratio, barHeight, color.RGBA{R: 50, G: 220, B: 80, A: 255}, true)

	msg := fmt.Sprintf("Health %.0f / %.0f   %.1fs", s.Player.Health, s.MaxHealth, s.Elapsed)
	ebitenutil.DebugPrintAt(screen, msg, int(x), int(y+barHeight+5))
}

func init() {
	// Legend:
	// . = Transparent
	// Y = Body, tinted per state
	// K = Stripes
	// W = Wings
	beeDesign := []string{
		"..W...W..",
		".WWW.WWW.",
		"..WYYYW..",
		"...KKK...",
		"..YYYYY..",
		"..KKKKK..",
		"...YYY...",
		"....K....",
	}
	beePalette := map[rune]color.RGBA{
		'Y': {R: 255, G: 255, B: 255, A: 255},
		'K': {R: 30, G: 30, B: 30, A: 255},
		'W': {R: 200, G: 230, B: 255, A: 180},
	}
	beeSprite = generateSprite(beeDesign, beePalette)

	playerDesign := []string{
		"....C....",
		"...CBC...",
		"..CBBBC..",
		".CBBWBBC.",
		".CBBBBBC.",
		"..CBBBC..",
		"...C.C...",
	}
	playerPalette := map[rune]color.RGBA{
		'C': {R: 0, G: 200, B: 255, A: 255},
		'B': {R: 0, G: 100, B: 255, A: 255},
		'W': {R: 255, G: 255, B: 255, A: 255},
	}
	playerSprite = generateSprite(playerDesign, playerPalette)
}

// generateSprite converts an ASCII grid into an Ebiten image
func generateSprite(design []string, palette map[rune]color.RGBA) *ebiten.Image {
	h := len(design)
	w := 0
	for _, row := range design {
		w = max(w, len(row))
	}
	img := ebiten.NewImage(w, h)

	for y, row := range design {
		for x, char := range row {
			if col, ok := palette[char]; ok {
				img.Set(x, y, col)
			}
		}
	}
	return img
}

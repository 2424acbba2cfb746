package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
)

// Widget is anything the panel can stack vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// height is the vertical space taken below the label
	height() float64
	top() float64
	moveTo(y float64)
}

func (s *Slider) height() float64 { return s.H + 20 }
func (s *Slider) top() float64 { return s.Y }
func (s *Slider) moveTo(y float64) { s.Y = y }

func (c *Checkbox) height() float64 { return c.Size + 5 }
func (c *Checkbox) top() float64 { return c.Y }
func (c *Checkbox) moveTo(y float64) { c.Y = y }

type panelRow struct {
	section string // set on section headers only
	label   string
	widget  Widget
}

// Panel is a scrollable column of labelled widgets grouped in sections.
type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	ScrollOffset  float64

	BGColor      color.RGBA
	BorderColor  color.RGBA
	SectionColor color.RGBA

	rows []panelRow
}

func NewPanel(x, y, width, height float64) *Panel {
	return &Panel{
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		Title:        "Configuration",
		BGColor:      color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor:  color.RGBA{R: 100, G: 100, B: 110, A: 255},
		SectionColor: color.RGBA{R: 60, G: 60, B: 70, A: 255},
	}
}

// AddSection starts a new group of widgets under a header.
func (p *Panel) AddSection(title string) {
	p.rows = append(p.rows, panelRow{section: title})
}

func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, 0, p.Width-20, label, min, max, value)
	p.rows = append(p.rows, panelRow{label: label, widget: s})
	p.layout()
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, 0, label, value)
	p.rows = append(p.rows, panelRow{label: label, widget: c})
	p.layout()
	return c
}

// layout places every widget for the current scroll offset.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		if r.widget == nil {
			y += sectionHeight
			continue
		}
		r.widget.moveTo(y + labelHeight)
		y += labelHeight + r.widget.height()
	}
}

func (p *Panel) contentHeight() float64 {
	h := titleHeight
	for _, r := range p.rows {
		if r.widget == nil {
			h += sectionHeight
			continue
		}
		h += labelHeight + r.widget.height()
	}
	return h
}

func (p *Panel) visible(y float64) bool {
	return y >= p.Y+titleHeight-5 && y <= p.Y+p.Height-10
}

func (p *Panel) Update() {
	if _, dy := ebiten.Wheel(); dy != 0 && hovered(p.X, p.Y, p.Width, p.Height) {
		maxScroll := max(p.contentHeight()-p.Height+40, 0)
		p.ScrollOffset = min(max(p.ScrollOffset-dy*20, 0), maxScroll)
		p.layout()
	}

	for _, r := range p.rows {
		if r.widget != nil && p.visible(r.widget.top()) {
			r.widget.Update()
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		if r.widget == nil {
			if p.visible(y) {
				vector.FillRect(screen,
					float32(p.X+5), float32(y),
					float32(p.Width-10), 20,
					p.SectionColor, true)
				ebitenutil.DebugPrintAt(screen, r.section, int(p.X+10), int(y+3))
			}
			y += sectionHeight
			continue
		}
		if p.visible(y) {
			ebitenutil.DebugPrintAt(screen, r.label, int(p.X+10), int(y))
			r.widget.Draw(screen)
		}
		y += labelHeight + r.widget.height()
	}
}

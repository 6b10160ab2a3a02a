package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/steer-engine/engine/core"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// HUDLineHeight is the pixel distance between HUD lines
const HUDLineHeight = 16

// HUD is the status overlay in the top-left corner
type HUD struct {
	Paused   bool
	Avoid    bool
	Order    core.OrderKind
	Selected core.EntityID
	Tick     uint64
	TPS      float64
}

// Lines returns the overlay text, one entry per line
func (h HUD) Lines(w *core.World) []string {
	state := "running"
	if h.Paused {
		state = "paused"
	}
	avoid := "off"
	if h.Avoid {
		avoid = "on"
	}
	lines := []string{
		fmt.Sprintf("tick %d  %.0f tps  %s", h.Tick, h.TPS, state),
		fmt.Sprintf("order [1-6]: %s   avoidance [A]: %s", h.Order, avoid),
	}
	if h.Selected == 0 {
		return append(lines, "no vehicle selected [Tab]")
	}
	lines = append(lines, fmt.Sprintf("vehicle #%d", h.Selected))
	if body, ok := w.Get(h.Selected, core.CompBody).(*core.Body); ok {
		lines = append(lines, fmt.Sprintf("pos %s  speed %.1f", body.Pos, body.Speed()))
	}
	if pilot, ok := w.Get(h.Selected, core.CompPilot).(*core.Pilot); ok {
		lines = append(lines, pilot.Command.String())
	}
	return lines
}

// Draw renders the overlay
func (h HUD) Draw(screen *ebiten.Image, w *core.World) {
	lines := h.Lines(w)
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	vector.DrawFilledRect(screen, 4, 4, float32(width*7+12), float32(len(lines)*HUDLineHeight+8), color.RGBA{0, 0, 0, 160}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 8)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = HUDLineHeight
	text.Draw(screen, strings.Join(lines, "\n"), hudFace, op)
}

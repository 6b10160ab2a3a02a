package render

import (
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/steer-engine/engine/core"
	"github.com/1siamBot/steer-engine/engine/vmath"
)

var (
	backgroundColor = color.RGBA{18, 22, 28, 255}
	gridColor       = color.RGBA{40, 48, 58, 255}
	obstacleColor   = color.RGBA{90, 96, 110, 255}
	obstacleEdge    = color.RGBA{150, 156, 170, 255}
	vehicleColor    = color.RGBA{60, 170, 255, 255}
	selectedColor   = color.RGBA{255, 210, 60, 255}
	avoidingColor   = color.RGBA{255, 90, 70, 255}
	headingColor    = color.RGBA{120, 255, 140, 200}
	targetColor     = color.RGBA{255, 255, 255, 160}
)

// GridSpacing is the world distance between background grid lines
const GridSpacing = 100

// Renderer draws the steering world top-down
type Renderer struct {
	Camera *Camera
	// ShowDebug draws desired headings and targets
	ShowDebug bool
}

// NewRenderer creates a renderer for the given camera
func NewRenderer(cam *Camera) *Renderer {
	return &Renderer{Camera: cam, ShowDebug: true}
}

// Draw renders obstacles, then vehicles with their steering overlays
func (r *Renderer) Draw(screen *ebiten.Image, w *core.World) {
	screen.Fill(backgroundColor)
	r.drawGrid(screen)

	for _, id := range w.Query(core.CompObstacle) {
		o := w.Get(id, core.CompObstacle).(*core.Obstacle)
		x, y := r.Camera.WorldToScreen(o.Pos)
		radius := float32(o.R * r.Camera.Zoom)
		vector.DrawFilledCircle(screen, x, y, radius, obstacleColor, true)
		vector.StrokeCircle(screen, x, y, radius, 1, obstacleEdge, true)
	}

	for _, id := range w.Query(core.CompBody, core.CompDrive) {
		body := w.Get(id, core.CompBody).(*core.Body)
		pilot, _ := w.Get(id, core.CompPilot).(*core.Pilot)
		selected := false
		if sel, ok := w.Get(id, core.CompSelectable).(*core.Selectable); ok {
			selected = sel.Selected
		}

		clr := vehicleColor
		if pilot != nil && pilot.Avoiding {
			clr = avoidingColor
		}
		r.drawVehicle(screen, body, clr)
		if selected {
			x, y := r.Camera.WorldToScreen(body.Pos)
			vector.StrokeCircle(screen, x, y, float32((body.Radius+4)*r.Camera.Zoom), 1, selectedColor, true)
		}
		if r.ShowDebug && pilot != nil {
			r.drawPilot(screen, body, pilot)
		}
	}
}

func (r *Renderer) drawGrid(screen *ebiten.Image) {
	view := r.Camera.Visible()
	for x := float64(int(view.X.Lo/GridSpacing)) * GridSpacing; x <= view.X.Hi; x += GridSpacing {
		x0, y0 := r.Camera.WorldToScreen(r2.Point{X: x, Y: view.Y.Lo})
		x1, y1 := r.Camera.WorldToScreen(r2.Point{X: x, Y: view.Y.Hi})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, gridColor, false)
	}
	for y := float64(int(view.Y.Lo/GridSpacing)) * GridSpacing; y <= view.Y.Hi; y += GridSpacing {
		x0, y0 := r.Camera.WorldToScreen(r2.Point{X: view.X.Lo, Y: y})
		x1, y1 := r.Camera.WorldToScreen(r2.Point{X: view.X.Hi, Y: y})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, gridColor, false)
	}
}

// drawVehicle outlines a triangle pointing along the body's facing
func (r *Renderer) drawVehicle(screen *ebiten.Image, body *core.Body, clr color.Color) {
	pts := VehicleOutline(body)
	for i := range pts {
		x0, y0 := r.Camera.WorldToScreen(pts[i])
		x1, y1 := r.Camera.WorldToScreen(pts[(i+1)%len(pts)])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}
}

func (r *Renderer) drawPilot(screen *ebiten.Image, body *core.Body, pilot *core.Pilot) {
	cmd := pilot.Command
	if !cmd.Valid() {
		return
	}
	x0, y0 := r.Camera.WorldToScreen(body.Pos)
	if vmath.IsFinite(cmd.Heading) && cmd.Heading.Norm() > 0 {
		tip := body.Pos.Add(cmd.Heading.Mul(body.Radius * 3))
		x1, y1 := r.Camera.WorldToScreen(tip)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, headingColor, true)
	}
	if cmd.HasTarget && vmath.IsFinite(cmd.Target) {
		tx, ty := r.Camera.WorldToScreen(cmd.Target)
		vector.StrokeLine(screen, tx-4, ty-4, tx+4, ty+4, 1, targetColor, true)
		vector.StrokeLine(screen, tx-4, ty+4, tx+4, ty-4, 1, targetColor, true)
	}
}

// VehicleOutline returns the triangle drawn for body in world coordinates: the
// nose one radius ahead and the tail corners at ±140° from the facing.
func VehicleOutline(body *core.Body) [3]r2.Point {
	dir := body.Dir.Normalize()
	if dir.Norm() == 0 {
		dir = r2.Point{X: 1}
	}
	nose := body.Pos.Add(dir.Mul(body.Radius))
	left := body.Pos.Add(vmath.Rotate(dir, vmath.Rad(140)).Mul(body.Radius))
	right := body.Pos.Add(vmath.Rotate(dir, vmath.Rad(-140)).Mul(body.Radius))
	return [3]r2.Point{nose, left, right}
}

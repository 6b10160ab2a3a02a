package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a demo command bound to a key
type Action uint8

const (
	ActionNone Action = iota
	ActionOrderSeek
	ActionOrderArrive
	ActionOrderPursue
	ActionOrderEvade
	ActionOrderIntercept
	ActionOrderFlee
	ActionNextVehicle
	ActionToggleAvoid
	ActionTogglePause
	ActionToggleDebug
	ActionQuit
)

// Bindings maps keys to actions
var Bindings = map[ebiten.Key]Action{
	ebiten.Key1:      ActionOrderSeek,
	ebiten.Key2:      ActionOrderArrive,
	ebiten.Key3:      ActionOrderPursue,
	ebiten.Key4:      ActionOrderEvade,
	ebiten.Key5:      ActionOrderIntercept,
	ebiten.Key6:      ActionOrderFlee,
	ebiten.KeyTab:    ActionNextVehicle,
	ebiten.KeyA:      ActionToggleAvoid,
	ebiten.KeySpace:  ActionTogglePause,
	ebiten.KeyH:      ActionToggleDebug,
	ebiten.KeyEscape: ActionQuit,
}

// panKeys are held down to move the camera
var panKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY    int
	MouseDX, MouseDY  int // delta since last frame
	prevMouseX        int
	prevMouseY        int
	LeftPressed       bool
	RightPressed      bool
	LeftJustPressed   bool
	RightJustPressed  bool
	LeftJustReleased  bool
	RightJustReleased bool
	ScrollY           float64

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int
	releasedDrag           bool

	// Keyboard
	KeysPressed map[ebiten.Key]bool
	Actions     []Action // triggered this frame
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
		KeysPressed:   make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	// Mouse position
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	// Mouse buttons
	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	rightDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)
	s.LeftPressed = leftDown
	s.RightPressed = rightDown

	// Scroll
	_, scrollY := ebiten.Wheel()
	s.ScrollY = scrollY

	// Drag tracking
	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if leftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	s.releasedDrag = s.LeftJustReleased && s.Dragging
	if !leftDown {
		s.Dragging = false
	}

	for _, k := range panKeys {
		s.KeysPressed[k] = ebiten.IsKeyPressed(k)
	}

	s.Actions = s.Actions[:0]
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a, ok := Bindings[k]; ok {
			s.Actions = append(s.Actions, a)
		}
	}
}

// Clicked reports a left click that was not the end of a drag
func (s *InputState) Clicked() bool {
	return s.LeftJustReleased && !s.releasedDrag
}

// PanDelta returns the camera pan direction from held keys, each axis in [-1, 1]
func (s *InputState) PanDelta() (dx, dy float64) {
	if s.KeysPressed[ebiten.KeyLeft] {
		dx--
	}
	if s.KeysPressed[ebiten.KeyRight] || s.KeysPressed[ebiten.KeyD] {
		dx++
	}
	if s.KeysPressed[ebiten.KeyUp] || s.KeysPressed[ebiten.KeyW] {
		dy--
	}
	if s.KeysPressed[ebiten.KeyDown] || s.KeysPressed[ebiten.KeyS] {
		dy++
	}
	return dx, dy
}

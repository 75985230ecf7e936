package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Frame is the raw pointer and keyboard state of one ebiten frame
type Frame struct {
	MouseX, MouseY int
	LeftDown       bool
	LeftPressed    bool
	LeftReleased   bool
	RightPressed   bool
	ScrollY        float64
	Shift, Ctrl    bool
	PanX, PanY     int // arrow keys held, -1..1

	// Keys pressed this frame
	Keys []ebiten.Key
}

// Poll reads the current frame from ebiten. Call it once per Update.
func Poll() Frame {
	f := Frame{
		LeftDown:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		LeftPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		RightPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Shift:        ebiten.IsKeyPressed(ebiten.KeyShift),
		Ctrl:         ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		Keys:         inpututil.AppendJustPressedKeys(nil),
	}
	f.MouseX, f.MouseY = ebiten.CursorPosition()
	_, f.ScrollY = ebiten.Wheel()
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		f.PanX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		f.PanX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		f.PanY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		f.PanY++
	}
	return f
}

// Kind is what the player asked for
type Kind uint8

const (
	SelectBox Kind = iota + 1
	SelectClick
	Smart // right click: harvest, attack or move depending on what is under the cursor
	AttackMove
	Patrol
	Stop
	Hold
	SetGroup
	RecallGroup
	SelectArmy
	CopyReport
	TogglePause
)

// Intent is one player request in world coordinates
type Intent struct {
	Kind       Kind
	X, Y, W, H float64
	Additive   bool // shift-select
	Queue      bool // shift-order
	Group      int
}

var digits = [10]ebiten.Key{
	ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// State turns frames into intents. It tracks box-drag and the pending
// targeted order armed by A or P.
type State struct {
	DragThreshold int

	dragStartX, dragStartY int
	dragging               bool
	armed                  Kind
	last                   Frame
}

func NewState() *State {
	return &State{DragThreshold: 5}
}

// Armed reports the targeted order waiting for a left click, or 0
func (s *State) Armed() Kind { return s.armed }

// DragRect returns the selection rectangle in screen pixels while dragging
func (s *State) DragRect() (x1, y1, x2, y2 int, active bool) {
	if !s.dragging {
		return 0, 0, 0, 0, false
	}
	return s.dragStartX, s.dragStartY, s.last.MouseX, s.last.MouseY, true
}

// ToWorld maps a screen pixel to world coordinates
type ToWorld func(sx, sy int) (float64, float64)

// Apply consumes one frame and returns the intents it completes
func (s *State) Apply(f Frame, toWorld ToWorld) []Intent {
	s.last = f
	var out []Intent

	for _, k := range f.Keys {
		if n, ok := digitOf(k); ok {
			kind := RecallGroup
			if f.Ctrl {
				kind = SetGroup
			}
			out = append(out, Intent{Kind: kind, Group: n})
			continue
		}
		switch k {
		case ebiten.KeyA:
			s.armed = AttackMove
		case ebiten.KeyP:
			s.armed = Patrol
		case ebiten.KeyS:
			out = append(out, Intent{Kind: Stop})
		case ebiten.KeyH:
			out = append(out, Intent{Kind: Hold})
		case ebiten.KeyEscape:
			s.armed = 0
		case ebiten.KeyF2:
			out = append(out, Intent{Kind: SelectArmy})
		case ebiten.KeyF9:
			out = append(out, Intent{Kind: CopyReport})
		case ebiten.KeySpace:
			out = append(out, Intent{Kind: TogglePause})
		}
	}

	wx, wy := toWorld(f.MouseX, f.MouseY)

	if f.LeftPressed {
		s.dragStartX, s.dragStartY = f.MouseX, f.MouseY
		s.dragging = false
	}
	if f.LeftDown && !s.dragging && s.armed == 0 {
		dx, dy := f.MouseX-s.dragStartX, f.MouseY-s.dragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.dragging = true
		}
	}
	if f.LeftReleased {
		switch {
		case s.armed != 0:
			out = append(out, Intent{Kind: s.armed, X: wx, Y: wy, Queue: f.Shift})
			s.armed = 0
		case s.dragging:
			x0, y0 := toWorld(min(s.dragStartX, f.MouseX), min(s.dragStartY, f.MouseY))
			x1, y1 := toWorld(max(s.dragStartX, f.MouseX), max(s.dragStartY, f.MouseY))
			out = append(out, Intent{Kind: SelectBox, X: x0, Y: y0, W: x1 - x0, H: y1 - y0, Additive: f.Shift})
		default:
			out = append(out, Intent{Kind: SelectClick, X: wx, Y: wy, Additive: f.Shift})
		}
		s.dragging = false
	}

	if f.RightPressed {
		if s.armed != 0 {
			s.armed = 0
		} else {
			out = append(out, Intent{Kind: Smart, X: wx, Y: wy, Queue: f.Shift})
		}
	}
	return out
}

func digitOf(k ebiten.Key) (int, bool) {
	for i, d := range digits {
		if k == d {
			return i, true
		}
	}
	return 0, false
}

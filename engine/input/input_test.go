package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func offset(dx, dy float64) ToWorld {
	return func(sx, sy int) (float64, float64) { return float64(sx) + dx, float64(sy) + dy }
}

var screen = offset(0, 0)

func only(t *testing.T, got []Intent) Intent {
	t.Helper()
	if len(got) != 1 {
		t.Fatalf("expected one intent, got %+v", got)
	}
	return got[0]
}

func TestDragProducesWorldBox(t *testing.T) {
	s := NewState()
	s.Apply(Frame{MouseX: 100, MouseY: 80, LeftDown: true, LeftPressed: true}, screen)
	s.Apply(Frame{MouseX: 40, MouseY: 200, LeftDown: true}, screen)
	if _, _, _, _, active := s.DragRect(); !active {
		t.Fatal("expected an active drag")
	}

	in := only(t, s.Apply(Frame{MouseX: 40, MouseY: 200, LeftReleased: true, Shift: true}, offset(500, 300)))
	if in.Kind != SelectBox || !in.Additive {
		t.Fatalf("expected additive box select, got %+v", in)
	}
	if in.X != 540 || in.Y != 380 || in.W != 60 || in.H != 120 {
		t.Fatalf("unexpected box %+v", in)
	}
}

func TestSmallMovementIsAClick(t *testing.T) {
	s := NewState()
	s.Apply(Frame{MouseX: 10, MouseY: 10, LeftDown: true, LeftPressed: true}, screen)
	s.Apply(Frame{MouseX: 12, MouseY: 13, LeftDown: true}, screen)
	in := only(t, s.Apply(Frame{MouseX: 12, MouseY: 13, LeftReleased: true}, offset(100, 0)))
	if in.Kind != SelectClick || in.X != 112 || in.Y != 13 {
		t.Fatalf("expected click at (112,13), got %+v", in)
	}
}

func TestArmedOrderFiresOnClick(t *testing.T) {
	s := NewState()
	if got := s.Apply(Frame{Keys: []ebiten.Key{ebiten.KeyA}}, screen); len(got) != 0 {
		t.Fatalf("expected arming to be silent, got %+v", got)
	}
	if s.Armed() != AttackMove {
		t.Fatalf("expected attack-move armed, got %v", s.Armed())
	}
	s.Apply(Frame{MouseX: 50, MouseY: 60, LeftDown: true, LeftPressed: true}, screen)
	in := only(t, s.Apply(Frame{MouseX: 300, MouseY: 60, LeftReleased: true, Shift: true}, screen))
	if in.Kind != AttackMove || in.X != 300 || !in.Queue {
		t.Fatalf("expected queued attack-move at 300, got %+v", in)
	}
	if s.Armed() != 0 {
		t.Fatal("expected the order to disarm")
	}
}

func TestRightClickCancelsArmedOrder(t *testing.T) {
	s := NewState()
	s.Apply(Frame{Keys: []ebiten.Key{ebiten.KeyP}}, screen)
	if got := s.Apply(Frame{RightPressed: true}, screen); len(got) != 0 {
		t.Fatalf("expected cancel without an order, got %+v", got)
	}
	in := only(t, s.Apply(Frame{MouseX: 5, MouseY: 6, RightPressed: true, Shift: true}, screen))
	if in.Kind != Smart || !in.Queue {
		t.Fatalf("expected queued smart command, got %+v", in)
	}
}

func TestControlGroupKeys(t *testing.T) {
	s := NewState()
	in := only(t, s.Apply(Frame{Ctrl: true, Keys: []ebiten.Key{ebiten.Key3}}, screen))
	if in.Kind != SetGroup || in.Group != 3 {
		t.Fatalf("expected set group 3, got %+v", in)
	}
	in = only(t, s.Apply(Frame{Keys: []ebiten.Key{ebiten.Key0}}, screen))
	if in.Kind != RecallGroup || in.Group != 0 {
		t.Fatalf("expected recall group 0, got %+v", in)
	}
	got := s.Apply(Frame{Keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyH, ebiten.KeyF9}}, screen)
	if len(got) != 3 || got[0].Kind != Stop || got[1].Kind != Hold || got[2].Kind != CopyReport {
		t.Fatalf("unexpected intents %+v", got)
	}
}

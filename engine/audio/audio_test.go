package audio

import (
	"math"
	"testing"

	"github.com/1siamBot/rts-sim/engine/core"
)

func TestPositionalCueFadesWithDistance(t *testing.T) {
	rec := &Recorder{}
	am := NewManager(rec)
	am.SetCameraPos(100, 100)

	am.Handle(core.SoundCue{Sound: core.SndAttack, X: 100, Y: 100, Positional: true})
	am.Handle(core.SoundCue{Sound: core.SndAttack, X: 100 + 15*32, Y: 100, Positional: true})
	am.Handle(core.SoundCue{Sound: core.SndAttack, X: 100 + 40*32, Y: 100, Positional: true})

	if len(rec.Played) != 2 {
		t.Fatalf("expected the far cue to be dropped, got %d plays", len(rec.Played))
	}
	if math.Abs(rec.Volumes[0]-0.8) > 1e-9 {
		t.Fatalf("expected full effect volume at the camera, got %g", rec.Volumes[0])
	}
	if math.Abs(rec.Volumes[1]-0.4) > 1e-9 {
		t.Fatalf("expected half volume at 15 tiles, got %g", rec.Volumes[1])
	}
}

func TestAttachPlaysOnDispatch(t *testing.T) {
	rec := &Recorder{}
	am := NewManager(rec)
	bus := core.NewEventBus()
	am.Attach(bus)

	bus.Emit(core.Event{Type: core.EvtSound, Payload: core.SoundCue{Sound: core.SndError}})
	bus.Emit(core.Event{Type: core.EvtMessage, Payload: "ignored"})
	if len(rec.Played) != 0 {
		t.Fatal("expected nothing before dispatch")
	}
	bus.Dispatch()
	if len(rec.Played) != 1 || rec.Played[0] != core.SndError {
		t.Fatalf("expected one error cue, got %v", rec.Played)
	}
}

func TestMuteAndVolumeClamp(t *testing.T) {
	rec := &Recorder{}
	am := NewManager(rec)
	am.SetVolume(3)
	if am.MasterVolume != 1 {
		t.Fatalf("expected master volume clamped to 1, got %g", am.MasterVolume)
	}
	am.Muted = true
	am.Handle(core.SoundCue{Sound: core.SndSelect})
	if len(rec.Played) != 0 {
		t.Fatal("expected muted manager to stay silent")
	}
}

package core

import (
	"testing"
	"time"
)

func TestClockCapsAndPauses(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClockWith(50*time.Millisecond, func() time.Time { return now })

	now = now.Add(16 * time.Millisecond)
	if dt := c.Tick(); dt != 16 {
		t.Fatalf("expected 16ms, got %g", dt)
	}
	now = now.Add(2 * time.Second)
	if dt := c.Tick(); dt != 50 {
		t.Fatalf("expected a hitch capped to 50ms, got %g", dt)
	}

	c.Pause()
	now = now.Add(30 * time.Millisecond)
	if dt := c.Tick(); dt != 0 {
		t.Fatalf("expected a paused clock to report 0, got %g", dt)
	}
	now = now.Add(time.Second)
	c.Resume()
	now = now.Add(10 * time.Millisecond)
	if dt := c.Tick(); dt != 10 {
		t.Fatalf("expected time since resume only, got %g", dt)
	}
}

func TestEventBusQueuesUntilDispatch(t *testing.T) {
	bus := NewEventBus()
	var got []Sound
	bus.On(EvtSound, func(e Event) { got = append(got, e.Payload.(SoundCue).Sound) })

	bus.Emit(Event{Type: EvtSound, Payload: SoundCue{Sound: SndMove}})
	bus.Emit(Event{Type: EvtEntityDied})
	bus.Emit(Event{Type: EvtSound, Payload: SoundCue{Sound: SndDeath}})
	if len(got) != 0 || len(bus.Pending()) != 3 {
		t.Fatalf("expected 3 pending events and no deliveries, got %d/%d", len(bus.Pending()), len(got))
	}

	bus.Dispatch()
	if len(got) != 2 || got[0] != SndMove || got[1] != SndDeath {
		t.Fatalf("expected move then death, got %v", got)
	}
	if len(bus.Pending()) != 0 {
		t.Fatal("expected the queue to be empty after dispatch")
	}
}

func TestResourceTakeNeverGoesNegative(t *testing.T) {
	r := &Resource{Amount: 7}
	if n := r.Take(5); n != 5 || r.Amount != 2 {
		t.Fatalf("expected to take 5 leaving 2, got %g leaving %g", n, r.Amount)
	}
	if n := r.Take(5); n != 2 || !r.Depleted() {
		t.Fatalf("expected the last 2 and depletion, got %g leaving %g", n, r.Amount)
	}

	r.Assign(1)
	r.Assign(1)
	r.Assign(2)
	r.Unassign(1)
	if len(r.Workers) != 1 || r.Workers[0] != 2 {
		t.Fatalf("unexpected workers %v", r.Workers)
	}
}

func TestSupplyFreeAtCap(t *testing.T) {
	r := Resources{Supply: 14, MaxSupply: 15}
	if !r.SupplyFree(1) {
		t.Fatal("expected one supply to fit exactly")
	}
	if r.SupplyFree(2) {
		t.Fatal("expected two supply to exceed the cap")
	}
	if _, err := ParseDifficulty("Brutal"); err == nil {
		t.Fatal("expected an unknown difficulty to fail")
	}
	if d, _ := ParseDifficulty(" HARD "); d != Hard {
		t.Fatalf("expected hard, got %v", d)
	}
}

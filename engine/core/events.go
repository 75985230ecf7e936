package core

// Event represents a simulation event
type Event struct {
	Type    EventType
	Time    float64 // simulation ms
	Payload interface{}
}

type EventType uint16

const (
	EvtSound EventType = iota
	EvtMessage
	EvtEntitySpawned
	EvtEntityDied
	EvtBuildingComplete
	EvtProductionComplete
	EvtMatchEnd
)

// Sound is a named audio cue
type Sound string

const (
	SndSelect   Sound = "select"
	SndMove     Sound = "move"
	SndAttack   Sound = "attack"
	SndLaser    Sound = "laser"
	SndDeath    Sound = "death"
	SndBuild    Sound = "build"
	SndComplete Sound = "complete"
	SndError    Sound = "error"
)

// SoundCue is the payload of EvtSound. Positional cues carry a world position.
type SoundCue struct {
	Sound      Sound
	X, Y       float64
	Positional bool
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the queued, not yet dispatched events
func (eb *EventBus) Pending() []Event {
	return eb.queue
}

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
	eb.queue = eb.queue[:0]
}

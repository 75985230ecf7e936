package audio

import (
	"log"
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/maplib"
)

// hearingTiles is how far from the camera a positional cue is still audible
const hearingTiles = 30.0

// Player renders a cue at a volume in [0, 1]
type Player interface {
	Play(s core.Sound, volume float64)
}

// Manager turns engine sound cues into volume-scaled calls on a Player.
// Positional cues fade with distance from the camera, UI cues play at full
// effect volume.
type Manager struct {
	MasterVolume float64
	SFXVolume    float64
	Muted        bool
	CameraX      float64
	CameraY      float64

	out Player
}

func NewManager(out Player) *Manager {
	return &Manager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		out:          out,
	}
}

// Attach subscribes the manager to sound events on bus
func (am *Manager) Attach(bus *core.EventBus) {
	bus.On(core.EvtSound, func(ev core.Event) {
		if cue, ok := ev.Payload.(core.SoundCue); ok {
			am.Handle(cue)
		}
	})
}

// SetCameraPos updates the listener position for positional audio
func (am *Manager) SetCameraPos(x, y float64) {
	am.CameraX = x
	am.CameraY = y
}

// Handle plays one cue. Inaudible cues are dropped.
func (am *Manager) Handle(cue core.SoundCue) {
	if am.Muted || am.out == nil {
		return
	}
	vol := am.SFXVolume * am.MasterVolume
	if cue.Positional {
		vol = am.calcVolume(cue.X, cue.Y)
	}
	if vol <= 0 {
		return
	}
	am.out.Play(cue.Sound, vol)
}

// calcVolume computes volume based on distance from camera
func (am *Manager) calcVolume(wx, wy float64) float64 {
	dist := math.Hypot(wx-am.CameraX, wy-am.CameraY)
	maxDist := hearingTiles * maplib.TileSize
	if dist >= maxDist {
		return 0
	}
	return (1.0 - dist/maxDist) * am.SFXVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *Manager) SetVolume(v float64) {
	am.MasterVolume = min(1, max(0, v))
}

// LogPlayer writes cues to a logger. The headless server uses it in verbose
// mode.
type LogPlayer struct {
	Log *log.Logger
}

func (p LogPlayer) Play(s core.Sound, volume float64) {
	p.Log.Printf("sound %s vol=%.2f", s, volume)
}

// Recorder keeps every cue it is asked to play
type Recorder struct {
	Played  []core.Sound
	Volumes []float64
}

func (r *Recorder) Play(s core.Sound, volume float64) {
	r.Played = append(r.Played, s)
	r.Volumes = append(r.Volumes, volume)
}

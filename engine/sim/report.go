package sim

import (
	"fmt"
	"strings"

	"github.com/1siamBot/rts-sim/engine/core"
)

// EntityView is a flat copy of an entity for external readers
type EntityView struct {
	ID        core.EntityID `json:"id"`
	Type      string        `json:"type"`
	Side      string        `json:"side"`
	Building  bool          `json:"building,omitempty"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Size      float64       `json:"size"`
	HP        float64       `json:"hp"`
	MaxHP     float64       `json:"max_hp"`
	Shield    float64       `json:"shield,omitempty"`
	MaxShield float64       `json:"max_shield,omitempty"`
	Energy    float64       `json:"energy,omitempty"`
	Built     float64       `json:"built"`
	Selected  bool          `json:"selected,omitempty"`
	Sieged    bool          `json:"sieged,omitempty"`
	Carrying  float64       `json:"carrying,omitempty"`
	Target    core.EntityID `json:"target,omitempty"`
	HasTarget bool          `json:"has_target,omitempty"`
	Producing string        `json:"producing,omitempty"`
	Queue     []string      `json:"queue,omitempty"`
	Progress  float64       `json:"progress,omitempty"`
	Waypoints int           `json:"waypoints,omitempty"`
}

// ResourceView is a mineral patch or geyser
type ResourceView struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Amount   float64 `json:"amount"`
	Geyser   bool    `json:"geyser,omitempty"`
	Occupied bool    `json:"occupied,omitempty"`
	Workers  int     `json:"workers"`
}

// BuildView is a pending build order
type BuildView struct {
	Worker core.EntityID `json:"worker"`
	Type   string        `json:"type"`
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
}

// Snapshot is a read-only copy of the match for observers. It holds no
// pointers into engine state.
type Snapshot struct {
	Tick        uint64            `json:"tick"`
	Time        float64           `json:"time"`
	Result      string            `json:"result,omitempty"`
	Factions    [2]string         `json:"factions"`
	Resources   [2]core.Resources `json:"resources"`
	Entities    []EntityView      `json:"entities"`
	Minerals    []ResourceView    `json:"minerals"`
	Geysers     []ResourceView    `json:"geysers"`
	BuildQueues [2][]BuildView    `json:"build_queues"`
	Projectiles int               `json:"projectiles"`
	Explored    []uint8           `json:"explored"`
	Visible     []uint8           `json:"visible"`
	Messages    []Message         `json:"messages"`
}

// Snapshot copies the current state
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        e.ticks,
		Time:        e.now,
		Result:      e.result.String(),
		Resources:   e.resources,
		Projectiles: len(e.fx.Projectiles),
		Explored:    append([]uint8(nil), e.fog.Explored...),
		Visible:     append([]uint8(nil), e.fog.Visible...),
		Messages:    append([]Message(nil), e.messages...),
	}
	for _, side := range core.Sides {
		if f := e.factions[side]; f != nil {
			s.Factions[side] = f.ID
		}
		for _, b := range e.buildQueues[side] {
			s.BuildQueues[side] = append(s.BuildQueues[side], BuildView{Worker: b.Worker, Type: b.Type, X: b.X, Y: b.Y})
		}
	}
	s.Entities = make([]EntityView, 0, len(e.entities))
	for _, ent := range e.entities {
		if !ent.Alive() {
			continue
		}
		v := EntityView{
			ID:        ent.ID,
			Type:      ent.Type,
			Side:      ent.Side.String(),
			Building:  ent.IsBuilding,
			X:         ent.X,
			Y:         ent.Y,
			Size:      ent.Size,
			HP:        ent.HP,
			MaxHP:     ent.MaxHP,
			Shield:    ent.Shield,
			MaxShield: ent.MaxShield,
			Energy:    ent.Energy,
			Built:     ent.Built,
			Selected:  ent.Selected,
			Sieged:    ent.Sieged,
			Carrying:  ent.Carrying,
			Producing: ent.Producing,
			Queue:     append([]string(nil), ent.ProductionQueue...),
			Waypoints: len(ent.Path) - ent.PathIndex,
		}
		if ent.Target.Alive() {
			v.Target, v.HasTarget = ent.Target.ID, true
		}
		if ent.Producing != "" {
			total := e.tt.MustUnit(ent.Producing).BuildTime * 1000
			v.Progress = min(1, max(0, 1-(ent.ProductionEnd-e.now)/total))
		}
		s.Entities = append(s.Entities, v)
	}
	s.Minerals = resourceViews(e.m.Minerals)
	s.Geysers = resourceViews(e.m.Geysers)
	return s
}

func resourceViews(rs []*core.Resource) []ResourceView {
	out := make([]ResourceView, 0, len(rs))
	for _, r := range rs {
		out = append(out, ResourceView{X: r.X, Y: r.Y, Amount: r.Amount, Geyser: r.IsGeyser, Occupied: r.Occupied, Workers: len(r.Workers)})
	}
	return out
}

// Report is a short summary of the match
type Report struct {
	Time         float64
	Ticks        uint64
	Result       Result
	Factions     [2]string
	Resources    [2]core.Resources
	Units        [2]int
	Buildings    [2]int
	MineralsLeft float64
}

// Report summarizes the match
func (e *Engine) Report() Report {
	r := Report{Time: e.now, Ticks: e.ticks, Result: e.result, Resources: e.resources}
	for _, side := range core.Sides {
		if f := e.factions[side]; f != nil {
			r.Factions[side] = f.ID
		}
	}
	for _, ent := range e.entities {
		if !ent.Alive() {
			continue
		}
		if ent.IsBuilding {
			r.Buildings[ent.Side]++
		} else {
			r.Units[ent.Side]++
		}
	}
	for _, m := range e.m.Minerals {
		r.MineralsLeft += m.Amount
	}
	return r
}

func (r Report) String() string {
	var b strings.Builder
	result := r.Result.String()
	if result == "" {
		result = "in progress"
	}
	fmt.Fprintf(&b, "match %s after %.1fs (%d ticks)\n", result, r.Time/1000, r.Ticks)
	for _, side := range core.Sides {
		res := r.Resources[side]
		fmt.Fprintf(&b, "%-6s %-8s minerals %.0f gas %.0f supply %g/%g units %d buildings %d\n",
			side, r.Factions[side], res.Minerals, res.Gas, res.Supply, res.MaxSupply, r.Units[side], r.Buildings[side])
	}
	fmt.Fprintf(&b, "minerals remaining on map %.0f", r.MineralsLeft)
	return b.String()
}

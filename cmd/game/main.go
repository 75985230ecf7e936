package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/1siamBot/rts-sim/engine/ai"
	"github.com/1siamBot/rts-sim/engine/audio"
	"github.com/1siamBot/rts-sim/engine/config"
	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/input"
	"github.com/1siamBot/rts-sim/engine/maplib"
	"github.com/1siamBot/rts-sim/engine/render"
	"github.com/1siamBot/rts-sim/engine/sim"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	minimapSize  = 160
)

// Game implements ebiten.Game interface
type Game struct {
	engine   *sim.Engine
	clock    *core.Clock
	input    *input.State
	renderer *render.Renderer
	sounds   *audio.Manager
	cues     *cueLog
	log      *log.Logger

	result sim.Result
}

// cueLog shows the latest sound cue in the HUD in place of real playback
type cueLog struct {
	last  core.Sound
	since time.Time
}

func (c *cueLog) Play(s core.Sound, _ float64) {
	c.last = s
	c.since = time.Now()
}

func NewGame(cfg config.Match, logger *log.Logger) (*Game, error) {
	m := maplib.Generate(cfg.Map.Width, cfg.Map.Height, cfg.Seed)
	e := sim.New(m,
		sim.WithLogger(logger),
		sim.WithSeed(cfg.Seed),
		sim.WithOpponent(ai.NewController(cfg.Level())),
		sim.WithOpponentFaction(cfg.OpponentFaction),
		sim.WithMaxStep(cfg.MaxStepMs),
		sim.WithVerbose(cfg.Verbose),
	)
	if err := e.Init(cfg.Faction, cfg.Level()); err != nil {
		return nil, err
	}

	g := &Game{
		engine:   e,
		clock:    core.NewClock(cfg.MaxStep()),
		input:    input.NewState(),
		renderer: render.NewRenderer(ScreenWidth, ScreenHeight),
		cues:     &cueLog{},
		log:      logger,
	}
	g.sounds = audio.NewManager(g.cues)
	g.sounds.Attach(e.Events())

	cam := g.renderer.Camera
	cam.SetMapBounds(m.Width, m.Height)
	bp := m.Base(core.Player)
	cam.CenterOn(bp.X, bp.Y)
	return g, nil
}

func (g *Game) minimapOrigin() (int, int) {
	return ScreenWidth - minimapSize - 10, ScreenHeight - minimapSize - 10
}

func (g *Game) Update() error {
	f := input.Poll()
	dt := g.clock.Tick()
	cam := g.renderer.Camera

	step := cam.Speed / float64(ebiten.TPS())
	cam.Pan(float64(f.PanX)*step, float64(f.PanY)*step)
	if cam.EdgeScroll {
		switch {
		case f.MouseX < cam.EdgeSize:
			cam.Pan(-step, 0)
		case f.MouseX > ScreenWidth-cam.EdgeSize:
			cam.Pan(step, 0)
		}
		switch {
		case f.MouseY < cam.EdgeSize:
			cam.Pan(0, -step)
		case f.MouseY > ScreenHeight-cam.EdgeSize:
			cam.Pan(0, step)
		}
	}
	if f.ScrollY != 0 {
		cam.ZoomAt(f.ScrollY*0.1, f.MouseX, f.MouseY)
	}

	mx, my := g.minimapOrigin()
	if f.LeftPressed && g.input.Armed() == 0 {
		if wx, wy, ok := render.MinimapToWorld(g.engine.Map(), mx, my, minimapSize, f.MouseX, f.MouseY); ok {
			cam.CenterOn(wx, wy)
			f.LeftPressed, f.LeftReleased, f.LeftDown = false, false, false
		}
	}

	for _, in := range g.input.Apply(f, cam.ScreenToWorld) {
		g.handle(in)
	}

	if g.result == sim.None && !g.clock.Paused() {
		g.result = g.engine.Update(dt)
	}
	g.sounds.SetCameraPos(cam.Listener())
	return nil
}

func (g *Game) handle(in input.Intent) {
	e := g.engine
	var err error
	switch in.Kind {
	case input.SelectBox:
		e.Select(in.X, in.Y, in.W, in.H, in.Additive, sim.SelectBox)
	case input.SelectClick:
		e.Select(in.X, in.Y, 0, 0, in.Additive, sim.SelectClick)
	case input.Smart:
		err = e.IssueCommand(g.smartCommand(in.X, in.Y), in.Queue)
	case input.AttackMove:
		err = e.IssueCommand(core.AttackMoveCommand{X: in.X, Y: in.Y}, in.Queue)
	case input.Patrol:
		err = e.IssueCommand(core.PatrolCommand{X: in.X, Y: in.Y}, in.Queue)
	case input.Stop:
		err = e.IssueCommand(core.StopCommand{}, false)
	case input.Hold:
		err = e.IssueCommand(core.HoldCommand{}, false)
	case input.SetGroup:
		e.SetControlGroup(in.Group)
	case input.RecallGroup:
		if p, recenter := e.SelectControlGroup(in.Group); recenter {
			g.renderer.Camera.CenterOn(p.X, p.Y)
		}
	case input.SelectArmy:
		e.SelectArmy()
	case input.CopyReport:
		if err := clipboard.WriteAll(e.Report().String()); err != nil {
			g.log.Printf("clipboard: %v", err)
		}
	case input.TogglePause:
		if g.clock.Paused() {
			g.clock.Resume()
		} else {
			g.clock.Pause()
		}
	}
	if err != nil && !errors.Is(err, sim.ErrNoSelection) {
		g.log.Printf("order rejected: %v", err)
	}
}

// smartCommand picks harvest, attack or move for a right click
func (g *Game) smartCommand(x, y float64) core.Command {
	t := g.engine.GetClickTarget(x, y)
	switch t.Kind {
	case sim.ClickMineral, sim.ClickGeyser:
		for _, ent := range g.engine.Selected() {
			if ent.CanHarvest {
				return core.HarvestCommand{Resource: t.Resource}
			}
		}
	case sim.ClickEntity:
		if t.Entity.Side != core.Player {
			return core.AttackCommand{Target: t.Entity}
		}
	}
	return core.MoveCommand{X: x, Y: y}
}

func (g *Game) Draw(screen *ebiten.Image) {
	e := g.engine
	r := g.renderer

	r.DrawMap(screen, e.Map())
	r.DrawEntities(screen, e.Entities(), e.Fog())
	r.DrawEffects(screen, e.Effects(), e.Now())
	r.DrawFog(screen, e.Fog())
	if x1, y1, x2, y2, active := g.input.DragRect(); active {
		r.DrawSelectionBox(screen, x1, y1, x2, y2)
	}
	mx, my := g.minimapOrigin()
	r.DrawMinimap(screen, e.Map(), e.Entities(), e.Fog(), mx, my, minimapSize)

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	e := g.engine
	res := e.Resources(core.Player)

	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s | %s | FPS %.0f | t=%.0fs\n",
		e.Faction(core.Player).Name, e.Faction(core.Opponent).Name, e.Difficulty(), ebiten.ActualFPS(), e.Now()/1000)
	fmt.Fprintf(&b, "Minerals %.0f  Gas %.0f  Supply %g/%g\n", res.Minerals, res.Gas, res.Supply, res.MaxSupply)
	fmt.Fprintf(&b, "Selected %d", len(e.Selected()))
	for _, a := range e.Abilities() {
		state := "ready"
		if !a.Ready {
			state = fmt.Sprintf("%.1fs", a.Remaining/1000)
		}
		fmt.Fprintf(&b, " | [%s] %s %s", a.Hotkey, a.Name, state)
	}
	b.WriteString("\n")
	if g.input.Armed() != 0 {
		b.WriteString("Click a target (Esc or right click cancels)\n")
	}
	if g.cues.last != "" && time.Since(g.cues.since) < time.Second {
		fmt.Fprintf(&b, "sound: %s\n", g.cues.last)
	}
	for _, msg := range e.Messages() {
		if e.Now()-msg.Time < 5000 {
			b.WriteString(msg.Text + "\n")
		}
	}
	if g.clock.Paused() {
		b.WriteString("PAUSED\n")
	}
	if g.result != sim.None {
		fmt.Fprintf(&b, "%s! (F9 copies the report)\n", strings.ToUpper(g.result.String()))
	}
	b.WriteString("[Drag/Click] Select [RClick] Smart [A] Attack [P] Patrol [S] Stop [H] Hold [Ctrl+#] Group [F2] Army [Space] Pause")
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	var (
		configPath = flag.String("config", "", "match config yaml (optional)")
		faction    = flag.String("faction", "", "player faction: terran, protoss or zerg")
		difficulty = flag.String("difficulty", "", "easy, normal, hard or insane")
		seed       = flag.Int64("seed", 0, "map seed (0 picks one)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[game] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *faction != "" {
		cfg.Faction = *faction
	}
	if *difficulty != "" {
		cfg.Difficulty = *difficulty
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Fatalf("new game: %v", err)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("RTS Sim")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/1siamBot/rts-sim/engine/ai"
	"github.com/1siamBot/rts-sim/engine/audio"
	"github.com/1siamBot/rts-sim/engine/config"
	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/maplib"
	"github.com/1siamBot/rts-sim/engine/observer"
	"github.com/1siamBot/rts-sim/engine/sim"
)

func main() {
	var (
		configPath = flag.String("config", "", "match config yaml (optional)")
		faction    = flag.String("faction", "", "player faction: terran, protoss or zerg")
		opponent   = flag.String("opponent", "", "opponent faction (default: random other faction)")
		difficulty = flag.String("difficulty", "", "easy, normal, hard or insane")
		seed       = flag.Int64("seed", 0, "map seed (0 picks one)")
		addr       = flag.String("observer", "", "observer websocket listen address, loopback only (empty to disable)")
		verbose    = flag.Bool("verbose", false, "log deaths and sound cues")
		autoplay   = flag.Bool("autoplay", true, "let a second controller play the player side")
		limit      = flag.Duration("limit", 30*time.Minute, "stop after this much game time")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "faction":
			cfg.Faction = *faction
		case "opponent":
			cfg.OpponentFaction = *opponent
		case "difficulty":
			cfg.Difficulty = *difficulty
		case "seed":
			cfg.Seed = *seed
		case "observer":
			cfg.Observer.Addr = *addr
		case "verbose":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	matchID := uuid.NewString()
	logger.SetPrefix("[server " + matchID[:8] + "] ")

	m := maplib.Generate(cfg.Map.Width, cfg.Map.Height, cfg.Seed)
	opp := ai.NewController(cfg.Level())
	e := sim.New(m,
		sim.WithLogger(logger),
		sim.WithSeed(cfg.Seed),
		sim.WithOpponent(opp),
		sim.WithOpponentFaction(cfg.OpponentFaction),
		sim.WithMaxStep(cfg.MaxStepMs),
		sim.WithVerbose(cfg.Verbose),
	)
	if err := e.Init(cfg.Faction, cfg.Level()); err != nil {
		logger.Fatalf("init: %v", err)
	}

	var self *ai.Controller
	if *autoplay {
		self = ai.NewController(cfg.Level())
		self.Side = core.Player
	}

	if cfg.Verbose {
		sounds := audio.NewManager(audio.LogPlayer{Log: logger})
		bp := m.Base(core.Player)
		sounds.SetCameraPos(bp.X, bp.Y)
		sounds.Attach(e.Events())
	}
	e.Events().On(core.EvtMessage, func(ev core.Event) {
		if msg, ok := ev.Payload.(sim.Message); ok {
			logger.Printf("message: %s", msg.Text)
		}
	})

	ctx, cancel := signalContext()
	defer cancel()

	var obs *observer.Server
	if cfg.Observer.Addr != "" {
		obs = newObserver(e, matchID, logger)
		srv := &http.Server{
			Addr:              cfg.Observer.Addr,
			Handler:           obs,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			<-ctx.Done()
			obs.Close()
			ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel2()
			_ = srv.Shutdown(ctx2)
		}()
		go func() {
			logger.Printf("observer listening on %s (match %s)", cfg.Observer.Addr, obs.MatchID)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Printf("observer: %v", err)
			}
		}()
	}

	clock := core.NewClock(cfg.MaxStep())
	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	result := sim.None
loop:
	for result == sim.None {
		select {
		case <-ctx.Done():
			logger.Printf("interrupted")
			break loop
		case <-ticker.C:
		}
		dt := clock.Tick()
		if self != nil {
			self.Update(e, dt)
		}
		result = e.Update(dt)
		if obs != nil && e.Ticks()%uint64(cfg.Observer.EveryTicks) == 0 {
			obs.Publish(e.Snapshot())
		}
		if time.Duration(e.Now()*float64(time.Millisecond)) >= *limit {
			logger.Printf("game time limit %v reached", *limit)
			break
		}
	}
	if obs != nil {
		obs.Publish(e.Snapshot())
	}
	logger.Printf("report:\n%s", e.Report())
}

// newObserver builds the feed for e under the match id used in the logs
func newObserver(e *sim.Engine, matchID string, logger *log.Logger) *observer.Server {
	obs := observer.NewServer(e.Map(), e.Fog(), logger)
	obs.MatchID = matchID
	return obs
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

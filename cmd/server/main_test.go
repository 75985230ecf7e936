package main

import (
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/maplib"
	"github.com/1siamBot/rts-sim/engine/observer"
	"github.com/1siamBot/rts-sim/engine/sim"
	"github.com/1siamBot/rts-sim/engine/techtree"
)

func TestObserverSharesLogMatchID(t *testing.T) {
	e := sim.New(maplib.NewMap(960, 640), sim.WithSeed(5), sim.WithOpponentFaction(techtree.Zerg))
	if err := e.Init(techtree.Terran, core.Normal); err != nil {
		t.Fatalf("init: %v", err)
	}
	matchID := uuid.NewString()
	obs := newObserver(e, matchID, log.New(io.Discard, "", 0))
	if obs.MatchID != matchID {
		t.Fatalf("expected match id %s, got %s", matchID, obs.MatchID)
	}

	ts := httptest.NewServer(obs)
	defer ts.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello observer.Hello
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.MatchID != matchID {
		t.Fatalf("expected hello match_id %s, got %s", matchID, hello.MatchID)
	}
}

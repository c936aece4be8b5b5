package engine

import (
	"testing"
	"time"

	"github.com/vovakirdan/mio-arcade/internal/mio"
)

func recordEvents(p *Player) *[]Event {
	var events []Event
	p.Listen(func(ev Event) { events = append(events, ev) })
	return &events
}

func shortGame() *mio.GameScript {
	return &mio.GameScript{Name: "TEST", Length: mio.LengthShort}
}

func TestPlayerLoadEvents(t *testing.T) {
	p := NewPlayer(Config{})
	events := recordEvents(p)

	id := p.Load(shortGame())
	if id == 0 || id != p.Session() {
		t.Errorf("expected live non-zero session, got %d", id)
	}
	if other := NewPlayer(Config{}).Load(shortGame()); other == id {
		t.Errorf("expected players to get distinct sessions, both got %d", id)
	}
	if len(*events) != 2 || (*events)[0].Kind != EventLoaded || (*events)[1].Kind != EventPlaying {
		t.Fatalf("expected loaded and playing events, got %+v", *events)
	}
	for _, ev := range *events {
		if ev.Session != id {
			t.Errorf("event %v: session = %d, expected %d", ev.Kind, ev.Session, id)
		}
	}
}

func TestPlayerIgnoresStaleSession(t *testing.T) {
	p := NewPlayer(Config{})
	old := p.Load(shortGame())
	cur := p.Load(shortGame())

	if p.Tick(old, time.Second, idle) {
		t.Error("expected stale tick to be ignored")
	}
	if !p.Tick(cur, 20*time.Millisecond, idle) {
		t.Error("expected current tick to advance")
	}

	p.Stop()
	if p.Tick(cur, 20*time.Millisecond, idle) {
		t.Error("expected tick after stop to be ignored")
	}
	if p.Engine() != nil {
		t.Error("expected no engine after stop")
	}
}

func TestPlayerClockPacing(t *testing.T) {
	p := NewPlayer(Config{})
	id := p.Load(shortGame())
	e := p.Engine()

	steps := []struct {
		delta    time.Duration
		advanced bool
		frame    int
	}{
		{0, false, 0},
		{10 * time.Millisecond, true, 1},
		{5 * time.Millisecond, false, 1},
		{time.Hour, true, 2}, // clamped to 50ms
		{0, true, 3},         // behind schedule, one frame per tick
		{0, true, 4},
		{0, false, 4},
	}
	for i, s := range steps {
		if got := p.Tick(id, s.delta, idle); got != s.advanced {
			t.Errorf("tick %d: advanced = %v, expected %v", i, got, s.advanced)
		}
		if e.Frame() != s.frame {
			t.Errorf("tick %d: frame = %d, expected %d", i, e.Frame(), s.frame)
		}
	}
}

func TestPlayerEndsOnceAfterTimeout(t *testing.T) {
	p := NewPlayer(Config{})
	events := recordEvents(p)
	id := p.Load(shortGame())

	for range 300 {
		p.Tick(id, 20*time.Millisecond, idle)
	}

	var lost, ended, updates int
	for _, ev := range *events {
		switch ev.Kind {
		case EventLost:
			lost++
			if ev.Frame != 240 {
				t.Errorf("expected loss on frame 240, got %d", ev.Frame)
			}
		case EventEnded:
			ended++
		case EventFrameUpdate:
			updates++
			if ev.EndFrame != 240 {
				t.Errorf("expected end frame 240, got %d", ev.EndFrame)
			}
		}
	}
	if lost != 1 || ended != 1 {
		t.Errorf("expected one lost and one ended event, got %d and %d", lost, ended)
	}
	if updates != 241 {
		t.Errorf("expected 241 frame updates, got %d", updates)
	}
	if !p.Paused() {
		t.Error("expected player to be paused")
	}
	if p.Engine().Frame() != 241 {
		t.Errorf("expected to stop on frame 241, got %d", p.Engine().Frame())
	}
}

func TestPlayerInfiniteNeverEnds(t *testing.T) {
	p := NewPlayer(Config{Infinite: true})
	events := recordEvents(p)
	id := p.Load(shortGame())

	for range 600 {
		p.Tick(id, 20*time.Millisecond, idle)
	}
	for _, ev := range *events {
		if ev.Kind == EventEnded {
			t.Fatal("expected no ended event in infinite mode")
		}
	}
	if p.Engine().Frame() != 600 {
		t.Errorf("expected 600 frames, got %d", p.Engine().Frame())
	}
}

func TestPlayerBossEndsOnBoundary(t *testing.T) {
	script := &mio.GameScript{Length: mio.LengthBoss}
	script.Objects[0] = object(at(50, 50), rule(mio.TimeExact{When: 1}, mio.Lose{}))

	p := NewPlayer(Config{Rasterizer: solid{}})
	events := recordEvents(p)
	id := p.Load(script)
	for range 600 {
		p.Tick(id, 20*time.Millisecond, idle)
	}

	for _, ev := range *events {
		if ev.Kind == EventEnded && ev.Frame != 240 {
			t.Errorf("expected boss game to end on frame 240, got %d", ev.Frame)
		}
	}
	if p.Engine().Frame() != 240 {
		t.Errorf("expected to hold on frame 240, got %d", p.Engine().Frame())
	}
}

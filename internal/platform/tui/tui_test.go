package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mio-arcade/internal/catalog"
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/engine"
	"github.com/vovakirdan/mio-arcade/internal/mio"
	"github.com/vovakirdan/mio-arcade/internal/storage"
	"github.com/vovakirdan/mio-arcade/internal/trace"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// tapGame plays the "spring" sound whenever the pointer is pressed.
func tapGame() Game {
	s := &mio.GameScript{Name: "TAP", Length: mio.LengthShort}
	def := &mio.ObjectDefinition{Size: 16}
	def.Art[0] = &mio.ArtDefinition{Bank: []int{0}}
	def.Program.Start.Location = mio.StartAtPosition{Position: mio.Point{X: 96, Y: 64}}
	def.Program.Instructions[0] = &mio.Instruction{
		Triggers: [mio.TriggerCount]mio.Trigger{mio.TapAnywhere{}},
		Actions:  [mio.ActionCount]mio.Action{mio.SoundEffect{Effect: 3}},
	}
	s.Objects[0] = def
	return Game{Title: "TAP", Hash: "abc123", Script: s}
}

// engineSnapshot places one 16px object showing frame 0 at (x, y).
func engineSnapshot(x, y float64) engine.Snapshot {
	return engine.Snapshot{Objects: []engine.ObjectFrame{{X: x, Y: y, Size: 16}}}
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	return cfg
}

// tick sends one clock tick at t and returns the updated model.
func tick(t *testing.T, m Model, at time.Time) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg{Session: m.play.player.Session(), Time: at})
	return next.(Model), cmd
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want PlayerAction
	}{
		{"quit q", runes("q"), PlayerActionQuit},
		{"quit ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, PlayerActionQuit},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, PlayerActionUp},
		{"wasd left", runes("a"), PlayerActionLeft},
		{"vim right", runes("l"), PlayerActionRight},
		{"space taps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, PlayerActionTap},
		{"enter taps", tea.KeyMsg{Type: tea.KeyEnter}, PlayerActionTap},
		{"restart", runes("r"), PlayerActionRestart},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, PlayerActionBack},
		{"unbound", runes("x"), PlayerActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}

	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionResults {
		t.Errorf("expected tab to open results, got %v", got)
	}
	if dx, dy := PlayerActionDown.Move(); dx != 0 || dy != cursorStep {
		t.Errorf("expected down to move (0,%d), got (%d,%d)", cursorStep, dx, dy)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		cols, rows int
		want       Viewport
	}{
		{192, 64, Viewport{X: 0, Y: 0, Width: 192, Height: 128}},
		{80, 23, Viewport{X: 5, Y: 0, Width: 69, Height: 46}},
		{100, 100, Viewport{X: 0, Y: 33, Width: 100, Height: 66}},
	}
	for _, tt := range tests {
		if got := Fit(tt.cols, tt.rows); got != tt.want {
			t.Errorf("Fit(%d, %d) = %+v, expected %+v", tt.cols, tt.rows, got, tt.want)
		}
	}
}

func TestViewportMapping(t *testing.T) {
	v := Fit(192, 64)
	x, y, ok := v.ToCanvas(10, 5)
	if !ok || x != 10 || y != 10 {
		t.Errorf("ToCanvas(10, 5) = (%d, %d, %v), expected (10, 10, true)", x, y, ok)
	}
	if _, _, ok := v.ToCanvas(-1, 0); ok {
		t.Error("expected cell left of the canvas to be outside")
	}
	if cx, cy := v.ToCell(10, 10); cx != 10 || cy != 5 {
		t.Errorf("ToCell(10, 10) = (%d, %d), expected (10, 5)", cx, cy)
	}

	half := Viewport{X: 4, Y: 2, Width: 96, Height: 64}
	x, y, ok = half.ToCanvas(4+48, 2+16)
	if !ok || x != 96 || y != 64 {
		t.Errorf("expected centre cell to map to (96, 64), got (%d, %d, %v)", x, y, ok)
	}
}

func TestCanvasPaint(t *testing.T) {
	data := make([]byte, mio.SaveSize)
	data[0x3104] = 0x05 // first pixel of frame 0 is red, the next transparent
	script := mio.Decode(data)
	c := NewCanvas(script)

	img := c.Paint(engineSnapshot(8, 8), false)
	if got := img.RGBAAt(0, 0); got != mio.Palette[5] {
		t.Errorf("expected sprite pixel %v, got %v", mio.Palette[5], got)
	}
	if got := img.RGBAAt(1, 0); got != backdrop {
		t.Errorf("expected transparent pixel to show backdrop, got %v", got)
	}

	frozen := engineSnapshot(8, 8)
	frozen.Frozen = true
	img = c.Paint(frozen, false)
	if got := img.RGBAAt(1, 0); got.R != 255-backdrop.R || got.G != 255-backdrop.G {
		t.Errorf("expected inverted backdrop, got %v", got)
	}

	img = c.Paint(engineSnapshot(8, 8), true)
	if got := img.RGBAAt(1, 0); got == backdrop {
		t.Error("expected paused canvas to be dimmed")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.Color{R: 255})
	s.DrawText(2, 0, "cd", core.Color{G: 255})

	out := RenderScreen(lipgloss.NewRenderer(io.Discard), s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("expected text runs in output, got %q", out)
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("expected 1 newline, got %d", n)
	}
}

func TestModelTapReachesEngine(t *testing.T) {
	m := NewModel(tapGame(), Options{}, testConfig())
	start := time.Unix(0, 0)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)

	// The first tick only starts the clock.
	m, _ = tick(t, m, start)
	if got := m.play.player.Engine().Frame(); got != 0 {
		t.Fatalf("expected no frame on the first tick, got %d", got)
	}
	m, cmd := tick(t, m, start.Add(20*time.Millisecond))
	if got := m.play.player.Engine().Frame(); got != 1 {
		t.Fatalf("expected frame 1, got %d", got)
	}
	if m.play.sound != "spring" {
		t.Errorf("expected tap to play spring, got %q", m.play.sound)
	}
	if cmd == nil {
		t.Error("expected the clock to keep ticking")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m := NewModel(tapGame(), Options{}, testConfig())
	stale := m.play.player.Session()

	next, _ := m.Update(runes("b"))
	m = next.(Model)
	if !m.BackToMenu() {
		t.Fatal("expected back to menu")
	}

	_, cmd := m.Update(TickMsg{Session: stale, Time: time.Now()})
	if cmd != nil {
		t.Error("expected stale tick not to reschedule")
	}
}

func TestModelRecordsResultAndTrace(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "mio.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	traceDir := filepath.Join(dir, "traces")
	m := NewModel(tapGame(), Options{Store: store, TraceDir: traceDir, Player: "alice"}, testConfig())

	now := time.Unix(0, 0)
	var cmd tea.Cmd
	for i := 0; i < 400; i++ {
		m, cmd = tick(t, m, now)
		now = now.Add(time.Second)
		if _, ended := m.Outcome(); ended {
			break
		}
	}
	outcome, ended := m.Outcome()
	if !ended {
		t.Fatal("expected the game to end")
	}
	if outcome != "lost" {
		t.Errorf("expected timeout loss, got %s", outcome)
	}
	if cmd != nil {
		t.Error("expected the clock to stop after the game ended")
	}

	results, err := store.RecentResults("abc123", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Outcome != "lost" || r.Frames != 241 || r.Seed != 7 || r.Player != "alice" {
		t.Errorf("unexpected result %+v", r)
	}

	files, err := filepath.Glob(filepath.Join(traceDir, "*"+trace.Ext))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected 1 trace file, got %v (%v)", files, err)
	}
	rd, err := trace.Open(files[0])
	if err != nil {
		t.Fatalf("trace.Open() failed: %v", err)
	}
	defer rd.Close()
	if h := rd.Header(); h.Game != "TAP" || h.SaveHash != "abc123" || h.Seed != 7 {
		t.Errorf("unexpected trace header %+v", h)
	}

	// Replay starts a fresh session.
	old := m.play.player.Session()
	next, cmd := m.Update(runes("r"))
	m = next.(Model)
	if cmd == nil || m.play.player.Session() == old {
		t.Error("expected restart to start a new ticking session")
	}
	m.Close()
}

type fakeLibrary struct {
	game Game
}

func (l fakeLibrary) List() []catalog.Entry {
	return []catalog.Entry{{ID: "tap", Title: l.game.Title, Hash: l.game.Hash, Length: mio.LengthShort}}
}

func (l fakeLibrary) Open(id string) (*mio.GameScript, error) {
	if id != "tap" {
		return nil, catalog.ErrNotFound
	}
	return l.game.Script, nil
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(fakeLibrary{game: tapGame()}, Options{}, testConfig())

	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := m.Update(msg)
		m = next.(SessionModel)
		return cmd
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("expected the player clock to start")
	}
	if m.screen != screenPlayer {
		t.Fatalf("expected player screen, got %v", m.screen)
	}
	if !strings.Contains(m.View(), "TAP") {
		t.Error("expected status line with the game title")
	}

	step(runes("b"))
	if m.screen != screenMenu {
		t.Fatalf("expected menu after back, got %v", m.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenResults {
		t.Fatalf("expected results board, got %v", m.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("expected menu after leaving results, got %v", m.screen)
	}

	if cmd := step(runes("q")); cmd == nil {
		t.Error("expected quit command")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

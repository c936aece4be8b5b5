package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mio-arcade/internal/catalog"
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/engine"
	"github.com/vovakirdan/mio-arcade/internal/mio"
	"github.com/vovakirdan/mio-arcade/internal/storage"
	"github.com/vovakirdan/mio-arcade/internal/stream"
	"github.com/vovakirdan/mio-arcade/internal/trace"
)

// Screen effect durations in frames.
const (
	flashFrames = 6
	shakeFrames = engine.QuarterFrames
)

var (
	cursorColor = core.Color{R: 255, G: 0, B: 0}
	statusColor = core.Color{R: 198, G: 198, B: 198}
	wonColor    = core.Color{R: 115, G: 214, B: 57}
	lostColor   = core.Color{R: 255, G: 0, B: 0}
	flashTint   = mio.Palette[14]
)

// Game is a decoded game ready to play.
type Game struct {
	Title  string
	Hash   string
	Script *mio.GameScript
}

// Options wires a player screen to its collaborators. Nil collaborators are
// skipped.
type Options struct {
	Engine   engine.Config
	Store    *storage.Store
	Stream   *stream.Broadcaster
	TraceDir string
	Player   string // Recorded with results; the SSH user
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
}

// play is one session of the player. Model copies share it.
type play struct {
	game    Game
	opts    Options
	log     *log.Logger
	player  *engine.Player
	canvas  *Canvas
	tracker core.PointerTracker
	down    bool
	seed    int64
	last    time.Time
	writer  *trace.Writer
	rec     *trace.Recorder

	frame    int
	endFrame int
	won      bool
	lost     bool
	ended    bool
	sound    string
	effect   string
	effectAt int
}

// newPlay creates a player for game wired to the collaborators in opts and
// starts its first session.
func newPlay(game Game, opts Options, logger *log.Logger, seed int64) *play {
	p := &play{
		game:   game,
		opts:   opts,
		log:    logger,
		player: engine.NewPlayer(opts.Engine),
		canvas: NewCanvas(game.Script),
	}
	if opts.Stream != nil {
		opts.Stream.Attach(p.player)
	}
	p.player.Listen(p.handle)
	p.begin(seed)
	return p
}

// begin loads the game into a new session. A zero seed is replaced by the
// current time. Ticks of the previous session become stale.
func (p *play) begin(seed int64) {
	p.finish()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p.seed = seed
	p.tracker.Reset()
	p.down = false
	p.last = time.Time{}
	p.frame, p.endFrame = 0, 0
	p.won, p.lost, p.ended = false, false, false
	p.sound, p.effect, p.effectAt = "", "", 0

	p.player.Reseed(seed)
	p.player.Load(p.game.Script)
	if p.opts.TraceDir != "" {
		p.startTrace()
	}
}

func (p *play) startTrace() {
	now := time.Now()
	name := fmt.Sprintf("%s-%s%s", catalog.Slug(p.game.Title), now.Format("20060102-150405"), trace.Ext)
	w, err := trace.Create(filepath.Join(p.opts.TraceDir, name), trace.Header{
		Game:     p.game.Title,
		SaveHash: p.game.Hash,
		Length:   p.game.Script.Length.String(),
		Seed:     p.seed,
		Started:  now,
	})
	if err != nil {
		p.log.Warn("trace disabled", "error", err)
		return
	}
	p.writer = w
	p.rec = trace.Record(w, p.player)
}

// handle runs synchronously inside Player.Tick.
func (p *play) handle(ev engine.Event) {
	if ev.Session != p.player.Session() {
		return
	}
	switch ev.Kind {
	case engine.EventFrameUpdate:
		p.frame, p.endFrame = ev.Frame, ev.EndFrame
	case engine.EventWon:
		p.won = true
	case engine.EventLost:
		p.lost = true
	case engine.EventSound:
		p.sound = ev.Sound
	case engine.EventScreenEffect:
		p.effect, p.effectAt = ev.Effect, ev.Frame
	case engine.EventEnded:
		p.ended = true
		p.saveResult(ev.Frame)
		p.finish()
	}
}

// outcome returns "won" or "lost" for a finished session.
func (p *play) outcome() string {
	if p.won {
		return "won"
	}
	return "lost"
}

func (p *play) saveResult(frames int) {
	if p.opts.Store == nil {
		return
	}
	_, err := p.opts.Store.SaveResult(storage.Result{
		SaveHash: p.game.Hash,
		GameName: p.game.Title,
		Outcome:  p.outcome(),
		Frames:   frames,
		Seed:     p.seed,
		Player:   p.opts.Player,
	})
	if err != nil {
		p.log.Warn("could not save result", "error", err)
	}
}

// finish closes the trace of the session.
func (p *play) finish() {
	if p.writer == nil {
		return
	}
	if err := p.rec.Err(); err != nil {
		p.log.Warn("trace incomplete", "error", err)
	}
	if err := p.writer.Close(); err != nil {
		p.log.Warn("could not close trace", "error", err)
	}
	p.writer, p.rec = nil, nil
}

// Model is the Bubble Tea model for playing one game.
type Model struct {
	game       Game
	opts       Options
	config     core.RuntimeConfig
	log        *log.Logger
	play       *play
	screen     *core.Screen
	view       Viewport
	cursorX    int
	cursorY    int
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
}

// NewModel creates a player for game and starts its first session.
func NewModel(game Game, opts Options, cfg core.RuntimeConfig) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		game:      game,
		opts:      opts,
		config:    cfg,
		log:       logger,
		play:      newPlay(game, opts, logger, cfg.Seed),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		view:      Fit(cfg.ScreenW, cfg.ScreenH-1),
		cursorX:   engine.CanvasWidth / 2,
		cursorY:   engine.CanvasHeight / 2,
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameRate, m.play.player.Session())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKey(msg)
	switch action {
	case PlayerActionQuit:
		m.Close()
		m.quitting = true
		return m, tea.Quit

	case PlayerActionBack:
		m.Close()
		m.backToMenu = true
		return m, nil

	case PlayerActionRestart:
		if !m.play.ended {
			return m, nil
		}
		m.play.begin(m.config.Seed)
		return m, tickCmd(m.config.FrameRate, m.play.player.Session())

	case PlayerActionTap:
		p := m.play
		p.tracker.Observe(core.PointerSample{X: m.cursorX, Y: m.cursorY, Down: true})
		p.tracker.Observe(core.PointerSample{X: m.cursorX, Y: m.cursorY, Down: p.down})
		return m, nil
	}

	if dx, dy := action.Move(); dx != 0 || dy != 0 {
		m.cursorX = min(max(m.cursorX+dx, 0), engine.CanvasWidth-1)
		m.cursorY = min(max(m.cursorY+dy, 0), engine.CanvasHeight-1)
		m.play.tracker.Observe(core.PointerSample{X: m.cursorX, Y: m.cursorY, Down: m.play.down})
	}
	return m, nil
}

// handleMouse turns terminal mouse events into pointer samples. Events
// outside the canvas only release the button.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := m.play
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		p.down = true
	case tea.MouseActionRelease:
		p.down = false
	}

	x, y, ok := m.view.ToCanvas(msg.X, msg.Y)
	if !ok {
		if !p.down {
			p.tracker.Observe(core.PointerSample{X: m.cursorX, Y: m.cursorY})
		}
		return
	}
	m.cursorX, m.cursorY = x, y
	p.tracker.Observe(core.PointerSample{X: x, Y: y, Down: p.down})
}

// handleResize processes window resize events. The game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.view = Fit(msg.Width, msg.Height-1)
	return m, nil
}

// handleTick feeds the clock. The pointer state machine only advances when
// a frame was actually simulated, so a press is never lost between frames.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	p := m.play
	if msg.Session != p.player.Session() {
		return m, nil
	}

	var delta time.Duration
	if !p.last.IsZero() {
		delta = msg.Time.Sub(p.last)
	}
	p.last = msg.Time

	next := p.tracker
	if p.player.Tick(msg.Session, delta, next.Frame()) {
		p.tracker = next
	}

	if p.ended {
		return m, nil
	}
	return m, tickCmd(m.config.FrameRate, msg.Session)
}

// Close abandons the running session and closes its trace.
func (m Model) Close() {
	m.play.player.Stop()
	m.play.finish()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	e := m.play.player.Engine()
	if e == nil {
		return ""
	}

	m.screen.Clear()
	img := m.play.canvas.Paint(e.Snapshot(), m.play.ended)
	view := m.view
	if effect, ok := m.activeEffect(); ok {
		switch effect {
		case mio.EffectFlash:
			tint(img, flashTint)
		case mio.EffectShake:
			if m.play.frame%2 == 0 {
				view.X++
			}
		}
	}
	view.Draw(m.screen, img)

	cx, cy := m.view.ToCell(m.cursorX, m.cursorY)
	under := m.screen.Get(cx, cy)
	m.screen.Set(cx, cy, core.Cell{Rune: '+', Fg: cursorColor, Bg: under.Bg})

	m.drawStatus(e)
	return RenderScreen(m.opts.Renderer, m.screen)
}

// activeEffect returns the flash or shake still showing.
func (m Model) activeEffect() (mio.ScreenEffectKind, bool) {
	p := m.play
	age := p.frame - p.effectAt
	switch {
	case p.effect == mio.EffectFlash.String() && age < flashFrames:
		return mio.EffectFlash, true
	case p.effect == mio.EffectShake.String() && age < shakeFrames:
		return mio.EffectShake, true
	}
	return 0, false
}

// drawStatus fills the bottom row: title, timer, outcome and hints.
func (m Model) drawStatus(e *engine.Engine) {
	p := m.play
	y := m.screen.Height() - 1

	timer := "BOSS"
	switch {
	case m.opts.Engine.Infinite:
		timer = "ENDLESS"
	case p.endFrame > 0:
		left := max(p.endFrame-p.frame, 0)
		timer = fmt.Sprintf("%4.1fs", float64(left)/float64(engine.DefaultConfig().FrameRate))
	}
	m.screen.DrawText(1, y, fmt.Sprintf("%s  %s  #%d", m.game.Title, timer, e.Frame()), statusColor)

	var outcome string
	var color core.Color
	switch {
	case p.won:
		outcome, color = "WON!", wonColor
	case p.lost:
		outcome, color = "LOST", lostColor
	}
	hint := "arrows: aim  space: tap  b: menu  q: quit"
	if p.ended {
		hint = "r: replay  b: menu  q: quit"
	}
	if p.sound != "" && !p.ended {
		hint = "♪ " + p.sound + "  " + hint
	}
	x := max(m.screen.Width()-len([]rune(hint))-1, 0)
	m.screen.DrawText(x, y, hint, statusColor)
	if outcome != "" {
		m.screen.DrawTextCentered(y, outcome, color)
	}
}

// Outcome reports how the session ended, if it has.
func (m Model) Outcome() (outcome string, ended bool) {
	return m.play.outcome(), m.play.ended
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game Game, opts Options, cfg core.RuntimeConfig) error {
	model := NewModel(game, opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drives the pointer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.Close()
	}
	return err
}

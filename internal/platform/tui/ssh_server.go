package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/engine"
	"github.com/vovakirdan/mio-arcade/internal/storage"
	"github.com/vovakirdan/mio-arcade/internal/stream"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.mio/ssh_host_ed25519.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Engine is the simulation config of every session.
	Engine engine.Config

	// TraceDir receives a frame trace per play when non-empty.
	TraceDir string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.mio/mio.db",
		IdleTimeout: 30 * time.Minute,
		Engine:      engine.DefaultConfig(),
	}
}

// SSHServer serves the game picker and player to SSH clients.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	library Library
	store   *storage.Store
	stream  *stream.Broadcaster
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server over library. Every play is
// published to broadcaster when it is non-nil.
func NewSSHServer(cfg SSHServerConfig, library Library, broadcaster *stream.Broadcaster) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mio-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:  cfg,
		library: library,
		store:   store,
		stream:  broadcaster,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".mio", "ssh_host_ed25519")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	opts := Options{
		Engine:   s.config.Engine,
		Store:    s.store,
		Stream:   s.stream,
		TraceDir: s.config.TraceDir,
		Player:   sshSession.User(),
		Logger:   s.logger.With("user", sshSession.User()),
		Renderer: bubbletea.MakeRenderer(sshSession),
	}
	model := NewSessionModel(s.library, opts, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenPlayer
	screenResults
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the results board one key away. It is the top-level model used for SSH
// sessions.
type SessionModel struct {
	library  Library
	opts     Options
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	player   Model
	results  ResultsModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(library Library, opts Options, cfg core.RuntimeConfig) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		library: library,
		opts:    opts,
		config:  cfg,
		menu:    NewMenuModel(library, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlayer:
		return m.updatePlayer(msg)
	case screenResults:
		return m.updateResults(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode. The menu's own quit
// command is dropped when it hands over to another screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsResults() {
		m.results = NewResultsModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenResults
		m.menu = NewMenuModel(m.library, m.config)
		return m, m.results.Init()
	}

	if m.menu.Selected() != nil {
		game, err := m.menu.Open()
		if err != nil {
			m.opts.Logger.Warn("could not open game", "error", err)
			m.menu = m.menu.WithError(err)
			return m, nil
		}
		m.player = NewModel(game, m.opts, m.config)
		m.screen = screenPlayer
		return m, m.player.Init()
	}

	return m, cmd
}

// updatePlayer handles updates when in game mode.
func (m SessionModel) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.player.Update(msg)
	if playerModel, ok := newModel.(Model); ok {
		m.player = playerModel
	}

	if m.player.BackToMenu() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.library, m.config)
		return m, m.menu.Init()
	}

	if m.player.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateResults handles updates when the results board is shown.
func (m SessionModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.results.Update(msg)
	if resultsModel, ok := newModel.(ResultsModel); ok {
		m.results = resultsModel
	}

	if m.results.IsGoingBack() {
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	if m.results.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlayer:
		return m.player.View()
	case screenResults:
		return m.results.View()
	}
	return m.menu.View()
}

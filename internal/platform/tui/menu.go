package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mio-arcade/internal/catalog"
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// Library lists the games a picker offers. *catalog.Catalog implements it.
type Library interface {
	List() []catalog.Entry
	Open(id string) (*mio.GameScript, error)
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	library     Library
	items       []catalog.Entry
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *catalog.Entry // Set when user selects a game
	openResults bool           // True if user pressed Tab for results
	err         error
}

// NewMenuModel creates a new menu model.
func NewMenuModel(library Library, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		library:   library,
		items:     library.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionResults:
		m.openResults = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  M I O   A R C A D E  ", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No games found. Import a save with 'mio import'.", m.width))
		b.WriteString("\n")
	} else {
		b.WriteString(centerText("Select a game", m.width))
		b.WriteString("\n\n")
	}

	for i, item := range m.visibleItems() {
		cursor := "  "
		if i+m.offset() == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-20s %-5s %2d obj", cursor, truncate(item.Title, 20), item.Length, item.Objects)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(centerText("Error: "+m.err.Error(), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Results  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// pageSize is how many games fit between the header and the footer.
func (m MenuModel) pageSize() int {
	return max(m.height-10, 1)
}

// offset is the index of the first visible item, keeping the cursor in view.
func (m MenuModel) offset() int {
	return max(m.cursor-m.pageSize()+1, 0)
}

func (m MenuModel) visibleItems() []catalog.Entry {
	start := m.offset()
	end := min(start+m.pageSize(), len(m.items))
	return m.items[start:end]
}

// Open decodes the selected game.
func (m MenuModel) Open() (Game, error) {
	if m.selected == nil {
		return Game{}, errors.New("no game selected")
	}
	script, err := m.library.Open(m.selected.ID)
	if err != nil {
		return Game{}, err
	}
	return Game{Title: m.selected.Title, Hash: m.selected.Hash, Script: script}, nil
}

// WithError clears the selection and shows err, e.g. after a failed Open.
func (m MenuModel) WithError(err error) MenuModel {
	m.selected = nil
	m.err = err
	return m
}

// Selected returns the selected entry, or nil if none selected.
func (m MenuModel) Selected() *catalog.Entry {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsResults returns true if user requested the results board.
func (m MenuModel) WantsResults() bool {
	return m.openResults
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Game         Game
	Config       core.RuntimeConfig
	WantsResults bool
	Quit         bool
	OpenErr      error // The selected save could not be opened
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(library Library, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(library, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsResults() {
		result.WantsResults = true
		return result, nil
	}

	if m.IsQuitting() || m.Selected() == nil {
		result.Quit = true
		return result, nil
	}

	result.Game, result.OpenErr = m.Open()
	return result, nil
}

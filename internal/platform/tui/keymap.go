package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// cursorStep is how far one arrow key press moves the keyboard pointer,
// in canvas pixels.
const cursorStep = 4

// PlayerAction is a player-screen action derived from a key.
type PlayerAction int

const (
	PlayerActionNone PlayerAction = iota
	PlayerActionUp
	PlayerActionDown
	PlayerActionLeft
	PlayerActionRight
	PlayerActionTap
	PlayerActionRestart
	PlayerActionBack
	PlayerActionQuit
)

// KeyMapper translates Bubble Tea key messages to player and menu actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message on the player screen.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) PlayerAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return PlayerActionQuit
	case "w", "up", "k":
		return PlayerActionUp
	case "s", "down", "j":
		return PlayerActionDown
	case "a", "left", "h":
		return PlayerActionLeft
	case "d", "right", "l":
		return PlayerActionRight
	case " ", "enter":
		return PlayerActionTap
	case "r":
		return PlayerActionRestart
	case "b", "esc":
		return PlayerActionBack
	}
	return PlayerActionNone
}

// Move returns the cursor displacement of a directional action.
func (a PlayerAction) Move() (dx, dy int) {
	switch a {
	case PlayerActionUp:
		return 0, -cursorStep
	case PlayerActionDown:
		return 0, cursorStep
	case PlayerActionLeft:
		return -cursorStep, 0
	case PlayerActionRight:
		return cursorStep, 0
	}
	return 0, 0
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionResults
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionResults
	}
	return MenuActionNone
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Simulation controls
	Start Key
	Reset Key
	Debug Key
	Seed  Key

	// Transplanting
	Transplant Key
	Pond1      Key
	Pond2      Key
	Pond3      Key

	// Navigation
	Up   Key
	Down Key
	Back Key
	Help Key
	Quit Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: Key{
			Keys:    []string{"s"},
			Help:    "start",
			Enabled: true,
		},
		Reset: Key{
			Keys:    []string{"r"},
			Help:    "reset",
			Enabled: true,
		},
		Debug: Key{
			Keys:    []string{"d"},
			Help:    "debug",
			Enabled: true,
		},
		Seed: Key{
			Keys:    []string{"n"},
			Help:    "seed tray",
			Enabled: true,
		},
		Transplant: Key{
			Keys:    []string{"t", "enter"},
			Help:    "transplant",
			Enabled: true,
		},
		Pond1: Key{
			Keys:    []string{"1"},
			Help:    "transplant to pond 1",
			Enabled: true,
		},
		Pond2: Key{
			Keys:    []string{"2"},
			Help:    "transplant to pond 2",
			Enabled: true,
		},
		Pond3: Key{
			Keys:    []string{"3"},
			Help:    "transplant to pond 3",
			Enabled: true,
		},
		Up: Key{
			Keys:    []string{"up", "k"},
			Help:    "previous pond",
			Enabled: true,
		},
		Down: Key{
			Keys:    []string{"down", "j"},
			Help:    "next pond",
			Enabled: true,
		},
		Back: Key{
			Keys:    []string{"esc"},
			Help:    "back",
			Enabled: true,
		},
		Help: Key{
			Keys:    []string{"?", "f1"},
			Help:    "help",
			Enabled: true,
		},
		Quit: Key{
			Keys:    []string{"q", "ctrl+c"},
			Help:    "quit",
			Enabled: true,
		},
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// PondIndex returns the pond addressed by a direct pond key, or -1.
func (km KeyMap) PondIndex(msg tea.KeyMsg) int {
	switch {
	case km.Pond1.Matches(msg):
		return 0
	case km.Pond2.Matches(msg):
		return 1
	case km.Pond3.Matches(msg):
		return 2
	default:
		return -1
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp(compact bool) string {
	if compact {
		return "s:Start r:Reset n:Seed 1-3:Plant ?:Help q:Quit"
	}
	return "[s]Start [r]Reset [d]Debug [n]Seed [1-3]Transplant [↑↓]Pond [t]Transplant [?]Help [q]Quit"
}

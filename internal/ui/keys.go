// Package ui provides terminal user interface components for pomo.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and user customization.
package ui

import (
	"strings"

	"pomo/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed == "space" {
			trimmed = " "
		}
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// helpKey is the label shown for a binding: its first key.
func helpKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	if keys[0] == " " {
		return "space"
	}
	return keys[0]
}

func newBinding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey(keys), desc),
	)
}

// KeyMap defines the timer's key bindings.
type KeyMap struct {
	Pause  key.Binding
	Resume key.Binding
	Toggle key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(&config.KeysConfig{})
}

// NewKeyMap creates key bindings from config.
func NewKeyMap(cfg *config.KeysConfig) KeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return KeyMap{
		Pause:  newBinding(parseKeys(cfg.Pause, "p"), "pause"),
		Resume: newBinding(parseKeys(cfg.Resume, "r"), "resume"),
		Toggle: newBinding(parseKeys(cfg.Toggle, " "), "pause/resume"),
		Quit:   newBinding(parseKeys(cfg.Quit, "q", "ctrl+c"), "quit"),
		Help:   newBinding(parseKeys(cfg.Help, "?"), "help"),
	}
}

// SetPaused enables whichever of pause/resume applies to the current state
// so that only meaningful keys match and appear in the help bar.
func (k *KeyMap) SetPaused(paused bool) {
	k.Pause.SetEnabled(!paused)
	k.Resume.SetEnabled(paused)
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Resume, k.Toggle},
		{k.Quit, k.Help},
	}
}

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "enter", " "),
			key.WithHelp("esc", "close"),
		),
	}
}

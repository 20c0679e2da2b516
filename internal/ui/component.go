// Package ui hosts the bubbletea program loop that wraps the core state
// engine (§4.1, §9): the root tea.Model, the component router, the keymap,
// and overlay precedence. Grounded on ted/tui.go's top-level App struct,
// restructured around bubbletea's Init/Update/View instead of tview's
// input-capture callbacks.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehfeng/querycrafter/internal/config"
)

// Component is the capability set §4.2/§9 ask every component to expose,
// layered on top of bubbletea's own tea.Model (Init/Update/View). HandleKey
// is the contextual per-focus handler; RegisterConfig exists so a component
// can be handed the resolved configuration once at startup, matching the
// spec's register_config_handler hook.
type Component interface {
	tea.Model

	// HandleKey handles one key event while this component has focus (or
	// is the active overlay), returning a follow-up Cmd if any.
	HandleKey(msg tea.KeyMsg) tea.Cmd

	// RegisterConfig hands the component its resolved configuration once,
	// at startup.
	RegisterConfig(cfg *config.Config)
}

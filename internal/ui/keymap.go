package ui

import (
	"time"

	"github.com/ehfeng/querycrafter/internal/action"
)

// Keymap is the two-pass table §4.2 describes: a global table (applies
// whenever no text-input context is active) and a per-focus contextual
// table, both expressed as data — sequence-of-keys to action.Kind — rather
// than ted/tui_keybindings.go's hardcoded switch-on-key, since §6 requires
// keybindings to be a configuration surface.
type Keymap struct {
	Global map[string]action.Kind
	Focus  map[action.Focus]map[string]action.Kind
}

// DefaultKeymap is the built-in table; a loaded config.Config.Keybindings
// overrides entries with the same focus/sequence, per-key, leaving the
// rest of the defaults in place.
func DefaultKeymap() Keymap {
	return Keymap{
		Global: map[string]action.Kind{
			"q": action.KindQuit,
			"?": action.KindHelp,
			"1": action.KindFocusHome,
			"2": action.KindFocusQuery,
			"3": action.KindFocusResults,
		},
		Focus: map[action.Focus]map[string]action.Kind{
			action.FocusHome: {
				"enter": action.KindLoadSelected,
				"c":     action.KindViewColumns,
				"s":     action.KindViewSchema,
				"j":     action.KindTableMoveDown,
				"k":     action.KindTableMoveUp,
				"g":     action.KindJumpTop,
				"G":     action.KindJumpBottom,
			},
			action.FocusQuery: {
				"ctrl+enter": action.KindExecuteQuery,
				"t":          action.KindSwitchTab,
				"ctrl+space": action.KindTriggerComplete,
			},
			action.FocusResults: {
				"e":      action.KindToggleExplain,
				"E":      action.KindToggleAnalyze,
				"ctrl+e": action.KindCopyExplain,
				"x":      action.KindExportCSV,
				" ":      action.KindOpenPreview,
				"enter":  action.KindOpenPreview,
				"p":      action.KindOpenPreview,
				"v":      action.KindEnterCell,
				"j":      action.KindRowMoveDown,
				"k":      action.KindRowMoveUp,
				"h":      action.KindScrollLeft,
				"l":      action.KindScrollRight,
				"esc":    action.KindBack,
				"g":      action.KindJumpTop,
				"G":      action.KindJumpBottom,
				"ctrl+d": action.KindPageDown,
				"ctrl+u": action.KindPageUp,
				"y":      action.KindCopyRow,
				"/":      action.KindStartFilter,
			},
		},
	}
}

// Merge layers overrides on top of the receiver, per sequence, without
// discarding the rest of the defaults.
func (k Keymap) Merge(overrides map[string]map[string]action.Kind) Keymap {
	for focusName, bindings := range overrides {
		f, ok := focusFromConfigName(focusName)
		if !ok {
			continue
		}
		if k.Focus[f] == nil {
			k.Focus[f] = map[string]action.Kind{}
		}
		for seq, kind := range bindings {
			k.Focus[f][seq] = kind
		}
	}
	return k
}

func focusFromConfigName(name string) (action.Focus, bool) {
	switch name {
	case "home":
		return action.FocusHome, true
	case "query":
		return action.FocusQuery, true
	case "results":
		return action.FocusResults, true
	default:
		return 0, false
	}
}

// Resolve looks up seq (a key sequence, e.g. "g", "gg", "==") for focus,
// checking the contextual table first, then the global table. App.handleKey
// passes one key at a time, so only single-key bindings resolve there, and
// DefaultKeymap has no multi-key entries.
// textInputActive suppresses the global table entirely (§4.2: "applies
// only when no text-input context is active").
func (k Keymap) Resolve(focus action.Focus, seq string, textInputActive bool) (action.Kind, bool) {
	if bindings, ok := k.Focus[focus]; ok {
		if kind, ok := bindings[seq]; ok {
			return kind, true
		}
	}
	if textInputActive {
		return "", false
	}
	kind, ok := k.Global[seq]
	return kind, ok
}

// SequenceBuffer accumulates keys for multi-key bindings (gg, ==, =G),
// mirroring ted/tui_core.go's lastGPress field generalized to an arbitrary
// pending-rune buffer, cleared by the first Tick that arrives after the last
// key was appended (§4.2). App clears it on every Tick but never pushes a key
// into it; the editor handles gg, == and =G in its own state machine.
type SequenceBuffer struct {
	buf       string
	lastKeyAt time.Time
}

// Push appends key to the buffer and returns the buffer's current content.
func (s *SequenceBuffer) Push(key string) string {
	s.buf += key
	s.lastKeyAt = time.Now()
	return s.buf
}

// Reset clears the buffer, e.g. after a match or an explicit Esc.
func (s *SequenceBuffer) Reset() { s.buf = "" }

// String returns the buffer's current content.
func (s *SequenceBuffer) String() string { return s.buf }

// ClearOnTick clears a non-empty buffer when tickTime is later than the last
// Push, so the first Tick after the last key acts as the timeout for an
// unmatched multi-key sequence.
func (s *SequenceBuffer) ClearOnTick(tickTime time.Time) {
	if s.buf != "" && tickTime.After(s.lastKeyAt) {
		s.buf = ""
	}
}

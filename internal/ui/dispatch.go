package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehfeng/querycrafter/internal/editor"
)

// teaKeyToEditorKey translates a bubbletea key event into the
// editor-package's backend-agnostic Key (§9: "the editor package stays
// dependency-free"). Returns ok=false for keys the editor doesn't model
// (function keys, mouse, etc).
func teaKeyToEditorKey(msg tea.KeyMsg) (editor.Key, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return editor.Key{Type: editor.KeyEsc}, true
	case tea.KeyEnter:
		return editor.Key{Type: editor.KeyEnter}, true
	case tea.KeyBackspace:
		return editor.Key{Type: editor.KeyBackspace}, true
	case tea.KeyTab:
		return editor.Key{Type: editor.KeyTab}, true
	case tea.KeyLeft:
		return editor.Key{Type: editor.KeyLeft}, true
	case tea.KeyRight:
		return editor.Key{Type: editor.KeyRight}, true
	case tea.KeyUp:
		return editor.Key{Type: editor.KeyUp}, true
	case tea.KeyDown:
		return editor.Key{Type: editor.KeyDown}, true
	case tea.KeyCtrlC:
		return editor.Key{Type: editor.KeyRune, Rune: 'c', Ctrl: true}, true
	case tea.KeySpace:
		return editor.Key{Type: editor.KeyRune, Rune: ' '}, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return editor.Key{}, false
		}
		return editor.Key{Type: editor.KeyRune, Rune: msg.Runes[0]}, true
	default:
		return editor.Key{}, false
	}
}

// stdoutWriter is the process-scoped clipboard sink (§5: "the clipboard is
// treated as a process-scoped side-effecting sink accessed only from the
// main task").
type stdoutWriter struct{}

func (stdoutWriter) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

package editor

// KeyType enumerates the key shapes the editor cares about. Translating a
// concrete tea.KeyMsg into a Key is the ui package's job, keeping this
// package free of the bubbletea import.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEsc
	KeyEnter
	KeyBackspace
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Key is one key press.
type Key struct {
	Type KeyType
	Rune rune
	Ctrl bool
}

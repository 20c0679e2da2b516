// Package clipboard writes to the system clipboard via OSC52 terminal
// escape sequences, so it works over SSH without X11/Wayland access —
// ted's go.mod already pulls in go-osc52 transitively through bubbletea;
// this package promotes it to a direct dependency instead of shelling out
// to pbcopy/xclip/wl-copy.
package clipboard

import (
	"io"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Write emits an OSC52 copy sequence for text to w (typically os.Stdout).
func Write(w io.Writer, text string) error {
	_, err := osc52.New(text).WriteTo(w)
	return err
}

package clipboard

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteEmitsOSC52Sequence(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;") {
		t.Fatalf("output %q does not start with an OSC52 escape sequence", out)
	}
	if !strings.Contains(out, "aGVsbG8=") { // base64("hello")
		t.Fatalf("output %q does not contain the base64-encoded payload", out)
	}
}

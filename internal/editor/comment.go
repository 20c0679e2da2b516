package editor

import "strings"

// toggleLineComments implements "gc"/"gcc": each line in the selection (or
// the current line alone, when there is none) gets "-- " inserted after its
// leading whitespace if absent, or its existing marker stripped if every
// line is commented. Toggling an uncommented line twice restores it.
func (e *Editor) toggleLineComments() {
	lo, hi := e.cursor.Row, e.cursor.Row
	if e.hasSel {
		a, c := e.anchor.Row, e.cursor.Row
		if a > c {
			a, c = c, a
		}
		lo, hi = a, c
	}

	allCommented := true
	for row := lo; row <= hi && row < len(e.lines); row++ {
		if !isCommented(e.lines[row]) {
			allCommented = false
			break
		}
	}

	for row := lo; row <= hi && row < len(e.lines); row++ {
		if allCommented {
			e.lines[row] = uncomment(e.lines[row])
		} else if !isCommented(e.lines[row]) {
			line := e.lines[row]
			lead := 0
			for lead < len(line) && isSpace(line[lead]) {
				lead++
			}
			commented := append([]rune(nil), line[:lead]...)
			commented = append(commented, []rune("-- ")...)
			e.lines[row] = append(commented, line[lead:]...)
		}
	}
	e.hasSel = false
}

// commentPrefixes are the prefixes toggling inspects for, in order; "--"
// stays first since SQL is the default language.
var commentPrefixes = []string{"--", "//", "#"}

func isCommented(line []rune) bool {
	trimmed := strings.TrimLeft(string(line), " \t")
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// commentPrefix returns the comment prefix line currently uses, or "" if
// it isn't commented.
func commentPrefix(line []rune) string {
	trimmed := strings.TrimLeft(string(line), " \t")
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return p
		}
	}
	return ""
}

func uncomment(line []rune) []rune {
	s := string(line)
	trimmedLeft := strings.TrimLeft(s, " \t")
	lead := s[:len(s)-len(trimmedLeft)]
	rest := strings.TrimPrefix(trimmedLeft, commentPrefix(line))
	rest = strings.TrimPrefix(rest, " ")
	return []rune(lead + rest)
}

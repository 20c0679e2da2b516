package query

import (
	"regexp"
	"strings"
)

var explainPrefix = regexp.MustCompile(`(?is)^\s*EXPLAIN\s*(\(([^)]*)\))?\s*`)

// AddExplain rewrites text to add a plain EXPLAIN prefix, or to insert
// ANALYZE into an existing EXPLAIN(...) option list if absent, preserving
// the other options (§4.5).
func AddExplain(text string, analyze bool) string {
	m := explainPrefix.FindStringSubmatch(text)
	if m == nil {
		if analyze {
			return "EXPLAIN (ANALYZE) " + text
		}
		return "EXPLAIN " + text
	}

	rest := text[len(m[0]):]
	options := splitOptions(m[2])
	if analyze && !containsOption(options, "ANALYZE") {
		options = append([]string{"ANALYZE"}, options...)
	}
	return rebuildExplain(options, rest)
}

// StripExplain removes a leading EXPLAIN (with any options) from text.
func StripExplain(text string) string {
	m := explainPrefix.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	return text[len(m[0]):]
}

// ToggleExplainView cycles plain <-> EXPLAIN (§4.5 ToggleExplainView).
func ToggleExplainView(text string) string {
	if explainPrefix.MatchString(text) {
		return StripExplain(text)
	}
	return AddExplain(text, false)
}

// ToggleExplainAnalyze cycles plain -> EXPLAIN (ANALYZE) -> plain,
// preserving any other existing options along the way.
func ToggleExplainAnalyze(text string) string {
	m := explainPrefix.FindStringSubmatch(text)
	if m == nil {
		return AddExplain(text, true)
	}
	options := splitOptions(m[2])
	if containsOption(options, "ANALYZE") {
		return StripExplain(text)
	}
	return AddExplain(text, true)
}

func splitOptions(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsOption(options []string, name string) bool {
	for _, o := range options {
		if strings.EqualFold(strings.Fields(o)[0], name) {
			return true
		}
	}
	return false
}

func rebuildExplain(options []string, rest string) string {
	rest = strings.TrimSpace(rest)
	if len(options) == 0 {
		return "EXPLAIN " + rest
	}
	return "EXPLAIN (" + strings.Join(options, ", ") + ") " + rest
}

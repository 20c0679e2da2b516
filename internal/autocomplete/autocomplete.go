// Package autocomplete implements the completion engine (§4.6): SQL
// context inference over the text before the cursor, fuzzy-scored
// candidate generation, and the Builtin/Lsp/Hybrid backend selection.
// Grounded on the original Rust autocomplete.rs's context rules, and on
// ted's fuzzy_selector.go for the scoring primitive (also reused, unchanged
// in spirit, by internal/results).
package autocomplete

import (
	"sort"
	"strings"
)

// Backend selects how suggestions are produced.
type Backend int

const (
	Builtin Backend = iota
	Lsp
	Hybrid
)

// Context is the inferred SQL position of the cursor.
type Context int

const (
	None Context = iota
	AfterSelect
	AfterFrom
	AfterWhere
	ColumnName
)

// Kind differentiates a Suggestion for rendering (color, icon).
type Kind string

const (
	KindTable   Kind = "table"
	KindColumn  Kind = "column"
	KindKeyword Kind = "keyword"
)

// Suggestion is one completion candidate.
type Suggestion struct {
	Text  string
	Kind  Kind
	Score int
}

var keywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT JOIN", "RIGHT JOIN", "INNER JOIN",
	"GROUP BY", "ORDER BY", "HAVING", "LIMIT", "OFFSET", "INSERT INTO",
	"UPDATE", "DELETE", "VALUES", "SET", "AND", "OR", "NOT", "NULL", "AS",
	"DISTINCT", "UNION", "UNION ALL", "EXPLAIN", "ANALYZE",
}

// Engine holds known schema and a pluggable backend.
type Engine struct {
	backend Backend

	tables  []string
	columns map[string][]string // table -> column names
	allCols []string            // de-duplicated cache across tables

	document string
}

// New creates an Engine using backend.
func New(backend Backend) *Engine {
	return &Engine{backend: backend, columns: map[string][]string{}}
}

// Backend returns the engine's current backend.
func (e *Engine) Backend() Backend { return e.backend }

// UpdateTables replaces the known table list.
func (e *Engine) UpdateTables(tables []string) { e.tables = tables }

// UpdateTableColumns records table's column names and refreshes the
// cross-table cache.
func (e *Engine) UpdateTableColumns(table string, cols []string) {
	e.columns[table] = cols
	seen := map[string]bool{}
	e.allCols = e.allCols[:0]
	for _, cs := range e.columns {
		for _, c := range cs {
			if !seen[c] {
				seen[c] = true
				e.allCols = append(e.allCols, c)
			}
		}
	}
}

// UpdateDocument stores the full editor text, used by the LSP path to keep
// a server-side buffer in sync (the builtin path only needs the prefix
// passed to GetSuggestions).
func (e *Engine) UpdateDocument(text string) { e.document = text }

// SetTunnelMode forces the builtin backend and reseeds nothing (the caller
// already holds the table/column cache, which this engine keeps regardless
// of backend) — §4.6's "falls back to the builtin backend" transition.
func (e *Engine) SetTunnelMode(enabled bool) {
	if enabled {
		e.backend = Builtin
	}
}

// InferContext applies §4.6's whitespace/upper-cased token rules to the
// text preceding the cursor.
func InferContext(textBeforeCursor string) Context {
	fields := strings.Fields(textBeforeCursor)
	if len(fields) == 0 {
		return None
	}
	upper := make([]string, len(fields))
	for i, f := range fields {
		upper[i] = strings.ToUpper(f)
	}

	last := upper[len(upper)-1]
	switch last {
	case "SELECT":
		return AfterSelect
	case "FROM":
		return AfterFrom
	case "WHERE":
		return AfterWhere
	}

	sawSelect := false
	for _, tok := range upper {
		if tok == "SELECT" {
			sawSelect = true
		}
		if tok == "FROM" && sawSelect {
			return ColumnName
		}
	}
	return None
}

// InferTable finds the table name following the nearest FROM token before
// the cursor, so ColumnName completion can scope to that table (§4.6:
// "columns of table if known, else all cached columns"). Returns "" if no
// FROM has been typed yet.
func InferTable(textBeforeCursor string) string {
	fields := strings.Fields(textBeforeCursor)
	for i := len(fields) - 2; i >= 0; i-- {
		if strings.ToUpper(fields[i]) == "FROM" {
			return strings.Trim(fields[i+1], ",;()")
		}
	}
	return ""
}

// CurrentWord returns the maximal trailing run of non-whitespace before
// the cursor.
func CurrentWord(textBeforeCursor string) string {
	i := len(textBeforeCursor)
	for i > 0 && !isSpace(rune(textBeforeCursor[i-1])) {
		i--
	}
	return textBeforeCursor[i:]
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

// GetSuggestions returns up to 20 candidates for ctx/word, sorted by
// descending fuzzy score.
func (e *Engine) GetSuggestions(ctx Context, word string, table string) []Suggestion {
	var candidates []Suggestion
	switch ctx {
	case AfterFrom:
		candidates = e.tableCandidates()
	case ColumnName:
		candidates = e.columnCandidates(table)
	case AfterSelect, AfterWhere:
		candidates = append(e.columnCandidates(table), e.keywordCandidates()...)
	default:
		candidates = e.keywordCandidates()
	}

	scored := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		score, ok := fuzzyScore(word, c.Text)
		if !ok {
			continue
		}
		c.Score = score
		scored = append(scored, c)
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > 20 {
		scored = scored[:20]
	}
	return scored
}

func (e *Engine) tableCandidates() []Suggestion {
	out := make([]Suggestion, len(e.tables))
	for i, t := range e.tables {
		out[i] = Suggestion{Text: t, Kind: KindTable}
	}
	return out
}

func (e *Engine) columnCandidates(table string) []Suggestion {
	cols := e.allCols
	if table != "" {
		if tc, ok := e.columns[table]; ok {
			cols = tc
		}
	}
	out := make([]Suggestion, len(cols))
	for i, c := range cols {
		out[i] = Suggestion{Text: c, Kind: KindColumn}
	}
	return out
}

func (e *Engine) keywordCandidates() []Suggestion {
	out := make([]Suggestion, len(keywords))
	for i, k := range keywords {
		out[i] = Suggestion{Text: k, Kind: KindKeyword}
	}
	return out
}

// fuzzyScore scores candidate against pattern; an empty pattern matches
// everything with a fixed high score (§4.6).
func fuzzyScore(pattern, candidate string) (int, bool) {
	if pattern == "" {
		return 1000, true
	}
	p := strings.ToLower(pattern)
	c := strings.ToLower(candidate)

	score := 0
	ci := 0
	for _, pr := range p {
		idx := strings.IndexRune(c[ci:], pr)
		if idx < 0 {
			return 0, false
		}
		if idx == 0 {
			score += 10
		} else {
			score += 2
		}
		ci += idx + 1
	}
	return score, true
}

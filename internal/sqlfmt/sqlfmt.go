// Package sqlfmt implements the pure string→string SQL formatter the
// modal editor delegates to (§4.3). It is a small hand-rolled tokenizer
// rather than a wrapped third-party formatter: no SQL-formatting library
// appears anywhere in the retrieval pack (see DESIGN.md for what was
// searched), and the formatter's contract is deliberately tiny — uppercase
// keywords, one major clause per line, indented column lists.
package sqlfmt

import (
	"fmt"
	"strings"
)

// clauseKeywords start a new line wherever they appear, inside parens too
// (indented by the paren depth). Multi-word entries such as "GROUP BY" match
// only as a whole, so a lone "GROUP" or "BY" does not break the line.
var clauseKeywords = []string{
	"SELECT", "FROM", "WHERE", "LEFT JOIN", "RIGHT JOIN", "INNER JOIN",
	"FULL JOIN", "JOIN", "GROUP BY", "ORDER BY", "HAVING", "LIMIT", "OFFSET",
	"UNION ALL", "UNION", "ON", "VALUES", "SET", "RETURNING",
}

var reservedWords = map[string]string{
	"select": "SELECT", "from": "FROM", "where": "WHERE", "and": "AND",
	"or": "OR", "not": "NOT", "in": "IN", "is": "IS", "null": "NULL",
	"join": "JOIN", "left": "LEFT", "right": "RIGHT", "inner": "INNER",
	"full": "FULL", "outer": "OUTER", "on": "ON", "group": "GROUP",
	"by": "BY", "order": "ORDER", "having": "HAVING", "limit": "LIMIT",
	"offset": "OFFSET", "as": "AS", "distinct": "DISTINCT", "count": "COUNT",
	"sum": "SUM", "avg": "AVG", "min": "MIN", "max": "MAX", "case": "CASE",
	"when": "WHEN", "then": "THEN", "else": "ELSE", "end": "END",
	"insert": "INSERT", "into": "INTO", "values": "VALUES", "update": "UPDATE",
	"set": "SET", "delete": "DELETE", "explain": "EXPLAIN", "analyze": "ANALYZE",
	"asc": "ASC", "desc": "DESC", "union": "UNION", "all": "ALL",
	"returning": "RETURNING", "exists": "EXISTS", "between": "BETWEEN",
	"like": "LIKE", "ilike": "ILIKE",
}

// Format rewrites query into an upper-cased-keyword, clause-per-line form.
// It never returns an error for well-formed-ish SQL; a non-nil error means
// the query contained unbalanced quotes or parens and could not be
// tokenized, in which case the editor leaves the buffer untouched and its
// callers discard the error (§4.3).
func Format(query string) (string, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return "", err
	}
	return render(tokens), nil
}

type token struct {
	text    string
	isIdent bool // word-like token eligible for keyword casing
}

func tokenize(query string) ([]token, error) {
	var tokens []token
	runes := []rune(query)
	depth := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == ' ' || r == '\n' || r == '\t' || r == '\r':
			i++
		case r == '\'' || r == '"':
			quote := r
			start := i
			i++
			for i < len(runes) && runes[i] != quote {
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("unterminated string literal starting at %d", start)
			}
			i++ // consume closing quote
			tokens = append(tokens, token{text: string(runes[start:i])})
		case r == '(':
			depth++
			tokens = append(tokens, token{text: "("})
			i++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parenthesis at %d", i)
			}
			tokens = append(tokens, token{text: ")"})
			i++
		case r == ',':
			tokens = append(tokens, token{text: ","})
			i++
		case isIdentRune(r):
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				i++
			}
			tokens = append(tokens, token{text: string(runes[start:i]), isIdent: true})
		default:
			tokens = append(tokens, token{text: string(r)})
			i++
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	return tokens, nil
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '.' || r == '*' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func render(tokens []token) string {
	var b strings.Builder
	depth := 0
	atLineStart := true

	writeIndent := func() {
		if depth > 0 {
			b.WriteString(strings.Repeat("  ", depth))
		}
	}

	for idx := 0; idx < len(tokens); idx++ {
		tk := tokens[idx]
		text := tk.text
		if tk.isIdent {
			if up, ok := reservedWords[strings.ToLower(text)]; ok {
				text = up
			}
		}

		switch text {
		case "(":
			b.WriteString(text)
			depth++
			continue
		case ")":
			depth--
			b.WriteString(text)
			continue
		case ",":
			b.WriteString(text)
			b.WriteString("\n")
			writeIndent()
			b.WriteString("  ")
			atLineStart = false
			continue
		}

		if tk.isIdent {
			if clause, width := matchClause(tokens, idx); clause != "" {
				if !atLineStart {
					b.WriteString("\n")
				}
				writeIndent()
				b.WriteString(clause)
				b.WriteString(" ")
				idx += width - 1
				atLineStart = false
				continue
			}
		}

		if !atLineStart && needsSpace(b.String()) {
			b.WriteString(" ")
		}
		b.WriteString(text)
		atLineStart = false
	}
	return strings.TrimRight(b.String(), " \n")
}

// matchClause checks whether tokens[idx:] begins a clause keyword (possibly
// multi-word like "GROUP BY"), returning the rendered clause text and how
// many tokens it consumed.
func matchClause(tokens []token, idx int) (string, int) {
	upper := func(i int) string {
		if i >= len(tokens) || !tokens[i].isIdent {
			return ""
		}
		return strings.ToUpper(tokens[i].text)
	}

	for _, kw := range clauseKeywords {
		parts := strings.Fields(kw)
		match := true
		for j, p := range parts {
			if upper(idx+j) != p {
				match = false
				break
			}
		}
		if match {
			return kw, len(parts)
		}
	}
	return "", 0
}

func needsSpace(soFar string) bool {
	if soFar == "" {
		return false
	}
	last := soFar[len(soFar)-1]
	return last != '\n' && last != ' ' && last != '('
}

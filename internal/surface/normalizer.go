package surface

import (
	"github.com/usmlang/usm/internal/lexer"
)

// Normalize rewrites the token stream with the rules registered for lang
// and returns the result. Rules apply at statement starts only; within a
// statement the first matching rule wins and the rewritten region is not
// rescanned. A language with no rules returns the input unchanged.
func (n *Normalizer) Normalize(tokens []lexer.Token, lang string) []lexer.Token {
	rules := n.byLang[lang]
	if len(rules) == 0 {
		return tokens
	}

	out := make([]lexer.Token, 0, len(tokens))
	atStart := true
	i := 0
scan:
	for i < len(tokens) {
		tok := tokens[i]
		if atStart && isMatchable(tok) {
			for _, r := range rules {
				if captures, consumed, ok := n.match(r, tokens[i:]); ok {
					out = append(out, n.render(r, captures, tok)...)
					i += consumed
					atStart = false
					continue scan
				}
			}
		}
		out = append(out, tok)
		switch tok.Kind {
		case lexer.KindNewline, lexer.KindIndent, lexer.KindDedent:
			atStart = true
		case lexer.KindComment:
			// comments carry no statement structure
		default:
			atStart = false
		}
		i++
	}
	return out
}

// isMatchable reports whether a statement can begin at this token.
func isMatchable(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.KindNewline, lexer.KindIndent, lexer.KindDedent, lexer.KindComment, lexer.KindEOF:
		return false
	}
	return true
}

// match walks the rule's matchers over the token window. An expr matcher
// captures a balanced run up to the first position where the following
// matcher applies at bracket depth zero, or up to the statement boundary
// when it is the last matcher. Captures must be non-empty.
func (n *Normalizer) match(r rule, window []lexer.Token) (map[string][]lexer.Token, int, bool) {
	captures := make(map[string][]lexer.Token)
	pos := 0
	for mi, m := range r.pattern {
		if pos >= len(window) {
			return nil, 0, false
		}
		tok := window[pos]
		switch m.kind {
		case matchLiteral:
			if !isMatchable(tok) || tok.Value != m.value {
				return nil, 0, false
			}
			pos++
		case matchDelimiter:
			if !tok.IsDelimiter(m.value) {
				return nil, 0, false
			}
			pos++
		case matchKeyword:
			if !tok.Is(m.concept) {
				return nil, 0, false
			}
			pos++
		case matchIdentifier:
			if tok.Kind != lexer.KindIdentifier {
				return nil, 0, false
			}
			captures[m.slot] = window[pos : pos+1]
			pos++
		case matchExpr:
			var next *matcher
			if mi+1 < len(r.pattern) {
				next = &r.pattern[mi+1]
			}
			from := pos
			depth := 0
			for pos < len(window) {
				tok = window[pos]
				if isBoundary(tok) {
					break
				}
				if depth == 0 && next != nil && pos > from && matchesOne(*next, tok) {
					break
				}
				if tok.Kind == lexer.KindDelimiter {
					switch tok.Value {
					case "(", "[", "{":
						depth++
					case ")", "]", "}":
						depth--
					}
				}
				pos++
			}
			if pos == from {
				return nil, 0, false
			}
			captures[m.slot] = window[from:pos]
		}
	}
	return captures, pos, true
}

// isBoundary reports the end of the statement region an expr capture may
// span.
func isBoundary(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.KindNewline, lexer.KindIndent, lexer.KindDedent, lexer.KindEOF, lexer.KindComment:
		return true
	}
	return false
}

// matchesOne reports whether a single token satisfies a non-capturing
// matcher; capture matchers follow an expr capture only after the expr
// stops, so they terminate on any token they could consume.
func matchesOne(m matcher, tok lexer.Token) bool {
	switch m.kind {
	case matchLiteral:
		return isMatchable(tok) && tok.Value == m.value
	case matchDelimiter:
		return tok.IsDelimiter(m.value)
	case matchKeyword:
		return tok.Is(m.concept)
	case matchIdentifier:
		return tok.Kind == lexer.KindIdentifier
	default:
		return false
	}
}

// render produces the canonical token run. Synthesized keyword and
// delimiter tokens anchor at the first matched token's position; captured
// tokens keep their own positions so diagnostics still point into the
// source.
func (n *Normalizer) render(r rule, captures map[string][]lexer.Token, anchor lexer.Token) []lexer.Token {
	var out []lexer.Token
	for _, o := range r.out {
		switch o.kind {
		case emitKeyword:
			spelling, err := n.registry.KeywordFor(o.concept, r.lang)
			if err != nil {
				spelling = string(o.concept)
			}
			out = append(out, lexer.Token{
				Kind:     lexer.KindKeyword,
				Value:    spelling,
				Line:     anchor.Line,
				Column:   anchor.Column,
				Concept:  o.concept,
				Language: r.lang,
			})
		case emitDelimiter:
			out = append(out, lexer.Token{
				Kind:   lexer.KindDelimiter,
				Value:  o.value,
				Line:   anchor.Line,
				Column: anchor.Column,
			})
		case emitIdentifierSlot, emitExprSlot:
			out = append(out, captures[o.slot]...)
		}
	}
	return out
}

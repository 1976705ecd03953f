package parser

import (
	"strings"

	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/message"
	"github.com/usmlang/usm/internal/parser/ast"
)

// parseFString splits a formatted string into literal runs and
// interpolation expressions. The lexer hands the interior over raw; the
// brace scan happens here so interpolations can be re-lexed and parsed in
// the same source language as the enclosing program. {{ and }} are literal
// braces.
func (p *Parser) parseFString(tok lexer.Token) (ast.Expr, error) {
	node := &ast.FStringLiteral{Position: at(tok)}
	src := tok.Value
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			node.Parts = append(node.Parts, &ast.StringLiteral{Position: at(tok), Value: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(src); {
		switch src[i] {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				text.WriteByte('{')
				i += 2
				continue
			}
			end, ok := matchingBrace(src, i+1)
			if !ok {
				return nil, errorAt(tok, "MISMATCHED_DELIMITER", message.Args{"delimiter": "}"})
			}
			flush()
			expr, err := p.parseInterpolation(tok, src[i+1:end])
			if err != nil {
				return nil, err
			}
			node.Parts = append(node.Parts, expr)
			i = end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				text.WriteByte('}')
				i += 2
				continue
			}
			return nil, errorAt(tok, "MISMATCHED_DELIMITER", message.Args{"delimiter": "}"})
		default:
			text.WriteByte(src[i])
			i++
		}
	}
	flush()
	return node, nil
}

// matchingBrace finds the '}' closing the brace that opened just before
// from, skipping nested brace pairs.
func matchingBrace(src string, from int) (int, bool) {
	depth := 0
	for i := from; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// parseInterpolation lexes and parses one {...} interior as a full
// expression. The whole interior must be consumed.
func (p *Parser) parseInterpolation(tok lexer.Token, src string) (ast.Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errorAt(tok, "EXPECTED_EXPRESSION", message.Args{"token": "}"})
	}
	tokens, _, err := lexer.Tokenize(src, p.lang)
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			return nil, &Error{Key: lexErr.Key, Line: tok.Line, Column: tok.Column, Args: lexErr.Args}
		}
		return nil, err
	}
	sub := New(tokens, p.lang)
	expr, err := sub.parseExpressionList()
	if err != nil {
		if parseErr, ok := err.(*Error); ok {
			parseErr.Line, parseErr.Column = tok.Line, tok.Column
		}
		return nil, err
	}
	if rest := sub.current(); rest.Kind != lexer.KindNewline && rest.Kind != lexer.KindEOF {
		return nil, errorAt(tok, "UNEXPECTED_TOKEN", message.Args{"token": describe(rest)})
	}
	return expr, nil
}

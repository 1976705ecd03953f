package parser

import (
	"fmt"

	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/message"
)

// Error is a fatal syntax error. Like the lexer's, it carries a message
// key and arguments instead of rendered text; the CLI picks the language.
type Error struct {
	Key    string
	Line   int
	Column int
	Args   message.Args
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Localize(message.FallbackLanguage))
}

// Localize renders the diagnostic text in the given language.
func (e *Error) Localize(lang string) string {
	return message.Default().Format(e.Key, lang, e.Args)
}

// errorAt builds an Error anchored at a token.
func errorAt(tok lexer.Token, key string, args message.Args) *Error {
	return &Error{Key: key, Line: tok.Line, Column: tok.Column, Args: args}
}

// describe renders a token for diagnostics: structural tokens by their
// kind name, everything else by its spelling.
func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.KindNewline, lexer.KindIndent, lexer.KindDedent, lexer.KindEOF:
		return tok.Kind.String()
	}
	return tok.Value
}

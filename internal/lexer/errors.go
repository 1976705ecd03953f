package lexer

import (
	"fmt"

	"github.com/usmlang/usm/internal/message"
)

// Error is a fatal lexical error. It carries a message key and arguments
// rather than rendered text, so callers can show it in any supported
// language.
type Error struct {
	Key    string
	Line   int
	Column int
	Args   message.Args
}

// Error renders the diagnostic in English with its position.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Localize(message.FallbackLanguage))
}

// Localize renders the diagnostic text in the given language.
func (e *Error) Localize(lang string) string {
	return message.Default().Format(e.Key, lang, e.Args)
}

package semantic

import (
	"fmt"

	"github.com/usmlang/usm/internal/message"
)

// Diagnostic is one semantic finding. Analysis collects every diagnostic
// instead of stopping at the first, so a program's problems surface in one
// run. Like the lexer and parser errors it carries a message key; the
// caller chooses the rendering language.
type Diagnostic struct {
	Key    string
	Line   int
	Column int
	Args   message.Args
}

// Localize renders the diagnostic text in the given language.
func (d Diagnostic) Localize(lang string) string {
	return message.Default().Format(d.Key, lang, d.Args)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Localize(message.FallbackLanguage))
}

package lexer

import (
	"fmt"

	"github.com/usmlang/usm/internal/concept"
)

// Kind classifies a token. The parser dispatches on Kind plus, for keyword
// tokens, the language-neutral concept ID; it never inspects spellings.
type Kind int

const (
	// KindKeyword is a reserved word (or multi-word phrase) of the source
	// language. The token carries the concept it resolves to.
	KindKeyword Kind = iota

	// KindIdentifier is a user-chosen name in any script.
	KindIdentifier

	// KindNumeral is a numeric literal, possibly written with non-Western
	// digits (Devanagari, Arabic-Indic, Bengali, ...).
	KindNumeral

	// KindString is a string literal; Value holds the interior text with
	// the quotes stripped.
	KindString

	// KindFString is a formatted string literal; Value holds the interior
	// text verbatim, braces included. The parser splits it later.
	KindFString

	// KindDateLiteral is a 〔...〕 literal captured raw.
	KindDateLiteral

	// KindOperator is an arithmetic, comparison, or assignment operator in
	// canonical ASCII spelling (Unicode alternates are folded).
	KindOperator

	// KindDelimiter is punctuation: brackets, colon, comma, dot, at-sign.
	KindDelimiter

	// KindNewline terminates a logical line.
	KindNewline

	// KindIndent opens an indented block; KindDedent closes one.
	KindIndent
	KindDedent

	// KindComment is a # comment, retained for tooling.
	KindComment

	// KindEOF marks the end of input, after all pending dedents.
	KindEOF
)

var kindNames = map[Kind]string{
	KindKeyword:     "Keyword",
	KindIdentifier:  "Identifier",
	KindNumeral:     "Numeral",
	KindString:      "String",
	KindFString:     "FString",
	KindDateLiteral: "DateLiteral",
	KindOperator:    "Operator",
	KindDelimiter:   "Delimiter",
	KindNewline:     "Newline",
	KindIndent:      "Indent",
	KindDedent:      "Dedent",
	KindComment:     "Comment",
	KindEOF:         "EndOfInput",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexical unit. Tokens are values; the slices returned by
// Tokenize can be copied and rewritten freely (the surface normalizer does).
type Token struct {
	Kind  Kind
	Value string

	// Line and Column are 1-based; Column counts runes, not bytes.
	Line   int
	Column int

	// Concept and Language are set on keyword tokens only.
	Concept  concept.ID
	Language string
}

// Is reports whether the token is a keyword resolving to the given concept.
func (t Token) Is(id concept.ID) bool {
	return t.Kind == KindKeyword && t.Concept == id
}

// IsDelimiter reports whether the token is the given delimiter.
func (t Token) IsDelimiter(value string) bool {
	return t.Kind == KindDelimiter && t.Value == value
}

// IsOperator reports whether the token is the given operator.
func (t Token) IsOperator(value string) bool {
	return t.Kind == KindOperator && t.Value == value
}

func (t Token) String() string {
	switch t.Kind {
	case KindNewline, KindIndent, KindDedent, KindEOF:
		return t.Kind.String()
	case KindKeyword:
		return fmt.Sprintf("%s(%s=%s)", t.Kind, t.Value, t.Concept)
	default:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
	}
}

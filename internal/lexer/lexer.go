// Package lexer converts multilingual source text into a flat token stream.
//
// The lexer is the first phase of the front end. Its responsibilities:
//  1. Classify runes by Unicode general category, so identifiers and
//     numerals work in any script.
//  2. Resolve reserved words to language-neutral concept IDs through the
//     concept registry, including multi-word phrases ("sinon si").
//  3. Track indentation and emit Indent/Dedent tokens around blocks.
//  4. Fold Unicode operator and delimiter alternates (×, ≤, （) to their
//     canonical ASCII forms.
//  5. Detect the source language from the recognized keywords when no
//     hint is given; each word is tried against every supported language.
//
// The lexer does not parse syntax, build AST nodes, or validate bindings;
// those are the parser's and the semantic analyzer's jobs.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/usmlang/usm/internal/concept"
	"github.com/usmlang/usm/internal/message"
)

// tabWidth is how many columns a tab advances the indentation width.
const tabWidth = 4

// Lexer scans one source text. Create one per input with New; a Lexer is
// single-use.
type Lexer struct {
	source   string
	registry *concept.Registry
	hint     string
	lang     string
	ops      *opTable

	// cur is the scan position; start is the position where the token
	// being scanned began. Both are plain values, so backtracking is a
	// snapshot and an assignment.
	cur   cursor
	start cursor

	tokens      []Token
	indents     []int
	depth       int // open ( [ { nesting; suppresses line structure
	atLineStart bool
}

// New creates a Lexer for the given source. languageHint may be a language
// code to pin keyword recognition, or "" to detect the language from the
// source's own keywords.
func New(source, languageHint string) *Lexer {
	return &Lexer{
		source:      source,
		registry:    concept.Default(),
		hint:        languageHint,
		ops:         operatorTable(),
		cur:         startOfFile,
		start:       startOfFile,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Tokenize scans source into tokens and reports which language keyword
// recognition used.
func Tokenize(source, languageHint string) ([]Token, string, error) {
	return New(source, languageHint).Tokenize()
}

// Tokenize scans the whole source. The returned stream always ends with
// any pending Dedent tokens followed by one EndOfInput token. The first
// lexical error is fatal; there is no recovery.
func (l *Lexer) Tokenize() ([]Token, string, error) {
	if l.hint != "" && !l.registry.IsSupported(l.hint) {
		return nil, "", &concept.UnsupportedLanguageError{Language: l.hint}
	}
	l.lang = l.hint

	for {
		if l.atLineStart && l.depth == 0 {
			if err := l.scanLineStart(); err != nil {
				return nil, l.lang, err
			}
		}
		l.skipSpaces()
		if l.isAtEnd() {
			break
		}
		l.start = l.cur
		ch := l.peek()

		var err error
		switch {
		case ch == '\n':
			l.advance()
			if l.depth == 0 {
				l.emit(KindNewline, "")
				l.atLineStart = true
			}
		case ch == '#':
			l.scanComment()
		case (ch == 'f' || ch == 'F') && isQuote(l.peekNext()):
			l.advance() // prefix
			err = l.scanString(KindFString)
		case isWordStart(ch):
			l.scanWord()
		case unicode.IsDigit(ch):
			l.scanNumeral()
		case isQuote(ch):
			err = l.scanString(KindString)
		case ch == dateOpen:
			err = l.scanDate()
		default:
			err = l.scanOperator(ch)
		}
		if err != nil {
			return nil, l.lang, err
		}
	}

	if n := len(l.tokens); n > 0 && l.tokens[n-1].Kind != KindNewline {
		l.start = l.cur
		l.emit(KindNewline, "")
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.start = l.cur
		l.emit(KindDedent, "")
	}
	l.start = l.cur
	l.emit(KindEOF, "")
	return l.tokens, l.resolveLanguage(), nil
}

// resolveLanguage names the language of the whole stream: the hint when one
// was given, otherwise the language that scored best over the keyword
// spellings the scan recognized. A stream with no keywords at all falls back
// to the default language.
func (l *Lexer) resolveLanguage() string {
	if l.hint != "" {
		return l.hint
	}
	var words []string
	for _, tok := range l.tokens {
		if tok.Kind == KindKeyword {
			words = append(words, tok.Value)
		}
	}
	if detected, ok := l.registry.DetectLanguage(words); ok {
		return detected
	}
	return message.FallbackLanguage
}

// scanLineStart measures the indentation of the next non-blank line and
// emits Indent/Dedent tokens against the indentation stack. Blank lines
// and comment-only lines carry no block structure and are consumed here.
func (l *Lexer) scanLineStart() error {
	for {
		width := 0
		for {
			switch l.peek() {
			case ' ':
				width++
				l.advance()
				continue
			case '\t':
				width += tabWidth
				l.advance()
				continue
			case '\r':
				l.advance()
				continue
			}
			break
		}
		if l.isAtEnd() {
			l.atLineStart = false
			return nil
		}
		ch := l.peek()
		if ch == '\n' {
			l.advance()
			continue
		}
		if ch == '#' {
			l.start = l.cur
			l.scanComment()
			if l.peek() == '\n' {
				l.advance()
			}
			continue
		}

		l.start = l.cur
		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			l.emit(KindIndent, "")
		case width < top:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.emit(KindDedent, "")
			}
			if l.indents[len(l.indents)-1] != width {
				return &Error{Key: "BAD_INDENTATION", Line: l.cur.line, Column: l.cur.col}
			}
		}
		l.atLineStart = false
		return nil
	}
}

// scanWord scans an identifier or keyword. With a hinted language the word
// is matched against that language only; without one it is tried against
// every supported language in registry declaration order, and the first
// language that recognizes it keywords the token. The stream language is
// settled afterward, from all the keywords the scan found.
func (l *Lexer) scanWord() {
	first := l.readWord()

	langs := []string{l.lang}
	if l.lang == "" {
		langs = l.registry.SupportedLanguages()
	}
	for _, lang := range langs {
		best, ok := l.matchKeyword(first, lang)
		if !ok {
			continue
		}
		id, _ := l.registry.ConceptFor(best, lang)
		l.tokens = append(l.tokens, Token{
			Kind:     KindKeyword,
			Value:    best,
			Line:     l.start.line,
			Column:   l.start.col,
			Concept:  id,
			Language: lang,
		})
		return
	}
	l.emit(KindIdentifier, first)
}

// matchKeyword extends first greedily, one space-separated word at a time up
// to the longest spelling of lang, and keeps the longest extension that is a
// reserved phrase. On a match the cursor rests after the accepted spelling;
// otherwise it is restored to where it was on entry, so the next language
// can be tried from the same spot. The cursor snapshot taken before each
// extension makes the retreat free when an extension fails.
func (l *Lexer) matchKeyword(first, lang string) (string, bool) {
	best := first
	bestCur := l.cur
	isKeyword := l.registry.IsKeyword(first, lang)

	phrase := first
	for n := 1; n < l.registry.MaxPhraseWords(lang); n++ {
		save := l.cur
		next := l.nextPhraseWord()
		if next == "" {
			l.cur = save
			break
		}
		phrase += " " + next
		if l.registry.IsKeyword(phrase, lang) {
			best = phrase
			bestCur = l.cur
			isKeyword = true
		}
	}
	l.cur = bestCur
	return best, isKeyword
}

// readWord consumes one identifier word at the cursor.
func (l *Lexer) readWord() string {
	from := l.cur.off
	for !l.isAtEnd() && isWordPart(l.peek()) {
		l.advance()
	}
	return l.source[from:l.cur.off]
}

// nextPhraseWord consumes the spaces and the following word of a candidate
// phrase extension, or returns "" without a defined cursor when the line
// does not continue with a word (the caller restores its snapshot).
func (l *Lexer) nextPhraseWord() string {
	spaces := 0
	for l.peek() == ' ' {
		l.advance()
		spaces++
	}
	if spaces == 0 || !isWordStart(l.peek()) {
		return ""
	}
	return l.readWord()
}

// scanNumeral scans a numeric literal.
//
// FORMS:
//   - decimal digit runs in any script (unicode.Nd): 123, १२३, ٤٢
//   - base prefixes with ASCII digits: 0x1F, 0o755, 0b1010
//   - one fractional separator: 3.14, ३.१४
//   - scientific suffix: 1e9, 2.5E-3 (a bare trailing 'e' is not consumed)
func (l *Lexer) scanNumeral() {
	first := l.advance()
	if first == '0' {
		save := l.cur
		var valid func(rune) bool
		switch l.peek() {
		case 'x', 'X':
			valid = isHexDigit
		case 'o', 'O':
			valid = isOctalDigit
		case 'b', 'B':
			valid = isBinaryDigit
		}
		if valid != nil {
			l.advance()
			digits := 0
			for !l.isAtEnd() && valid(l.peek()) {
				l.advance()
				digits++
			}
			if digits == 0 {
				// Not a prefixed literal after all; the letter belongs
				// to whatever follows.
				l.cur = save
			} else {
				l.emit(KindNumeral, l.source[l.start.off:l.cur.off])
				return
			}
		}
	}

	for !l.isAtEnd() && unicode.IsDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && unicode.IsDigit(l.peekNext()) {
		l.advance()
		for !l.isAtEnd() && unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		save := l.cur
		l.advance()
		if s := l.peek(); s == '+' || s == '-' {
			l.advance()
		}
		if unicode.IsDigit(l.peek()) {
			for !l.isAtEnd() && unicode.IsDigit(l.peek()) {
				l.advance()
			}
		} else {
			l.cur = save
		}
	}
	l.emit(KindNumeral, l.source[l.start.off:l.cur.off])
}

// scanString scans a quoted literal of any pair family. ASCII quotes also
// open triple-quoted strings, which may span lines. The token value is the
// interior text with quotes stripped; escape pairs are carried verbatim.
func (l *Lexer) scanString(kind Kind) error {
	opener := l.advance()
	closer := stringPairs[opener]

	triple := false
	if (opener == '"' || opener == '\'') && l.peek() == opener && l.peekNext() == opener {
		l.advance()
		l.advance()
		triple = true
	}
	terminator := string(closer)
	if triple {
		terminator = strings.Repeat(string(closer), 3)
	}

	from := l.cur.off
	for {
		if l.isAtEnd() {
			return &Error{Key: "UNTERMINATED_STRING", Line: l.start.line, Column: l.start.col}
		}
		ch := l.peek()
		if ch == '\n' && !triple {
			return &Error{Key: "UNTERMINATED_STRING", Line: l.start.line, Column: l.start.col}
		}
		if ch == '\\' {
			l.advance()
			if !l.isAtEnd() {
				l.advance()
			}
			continue
		}
		if ch == closer && strings.HasPrefix(l.source[l.cur.off:], terminator) {
			value := l.source[from:l.cur.off]
			for range terminator {
				l.advance()
			}
			l.emit(kind, value)
			return nil
		}
		l.advance()
	}
}

// scanDate scans a 〔...〕 literal. The interior is captured raw; the front
// end does not interpret calendar contents.
func (l *Lexer) scanDate() error {
	l.advance() // opener
	from := l.cur.off
	for !l.isAtEnd() && l.peek() != dateClose && l.peek() != '\n' {
		l.advance()
	}
	if l.peek() != dateClose {
		return &Error{Key: "UNTERMINATED_DATE", Line: l.start.line, Column: l.start.col}
	}
	value := l.source[from:l.cur.off]
	l.advance()
	l.emit(KindDateLiteral, value)
	return nil
}

// scanComment consumes a # comment through the end of the line. Comments
// are kept in the stream for tooling; the parser filters them out.
func (l *Lexer) scanComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
	l.emit(KindComment, l.source[l.start.off:l.cur.off])
}

// scanOperator scans an operator or delimiter. Unicode alternates fold to
// their canonical ASCII spelling; multi-rune operators are tried longest
// first, so "**=" beats "**" beats "*".
func (l *Lexer) scanOperator(ch rune) error {
	if canonical, ok := l.ops.opAlternates[ch]; ok {
		l.advance()
		l.emit(KindOperator, canonical)
		return nil
	}
	if canonical, ok := l.ops.dlmAlternates[ch]; ok {
		l.advance()
		l.emitDelimiter(canonical)
		return nil
	}
	for _, op := range l.ops.multi {
		if strings.HasPrefix(l.source[l.cur.off:], op) {
			for range op {
				l.advance()
			}
			l.emit(KindOperator, op)
			return nil
		}
	}
	if l.ops.singleOps[ch] {
		l.advance()
		l.emit(KindOperator, string(ch))
		return nil
	}
	if l.ops.delims[ch] {
		l.advance()
		l.emitDelimiter(string(ch))
		return nil
	}
	return &Error{
		Key:    "UNEXPECTED_CHARACTER",
		Line:   l.cur.line,
		Column: l.cur.col,
		Args:   message.Args{"char": string(ch)},
	}
}

func (l *Lexer) emit(kind Kind, value string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: value, Line: l.start.line, Column: l.start.col})
}

// emitDelimiter tracks bracket nesting: inside brackets, newlines and
// indentation carry no structure, so lists and calls can span lines.
func (l *Lexer) emitDelimiter(value string) {
	switch value {
	case "(", "[", "{":
		l.depth++
	case ")", "]", "}":
		if l.depth > 0 {
			l.depth--
		}
	}
	l.emit(KindDelimiter, value)
}

// skipSpaces consumes horizontal whitespace between tokens.
func (l *Lexer) skipSpaces() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) isAtEnd() bool {
	return l.cur.off >= len(l.source)
}

// advance consumes and returns the rune at the cursor, updating line and
// column tracking.
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.cur.off:])
	l.cur.off += size
	if ch == '\n' {
		l.cur.line++
		l.cur.col = 1
	} else {
		l.cur.col++
	}
	return ch
}

// peek returns the rune at the cursor without consuming it, or 0 at end.
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.cur.off:])
	return ch
}

// peekNext returns the rune after the cursor, or 0 when fewer than two
// runes remain.
func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.cur.off:])
	if l.cur.off+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.cur.off+size:])
	return ch
}

// Character classification follows Unicode general categories, so every
// supported script gets identifiers and numerals for free.

// isWordStart reports whether ch can open an identifier word: any letter,
// a combining mark, or underscore.
func isWordStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.In(ch, unicode.Mn, unicode.Mc)
}

// isWordPart reports whether ch can continue an identifier word: word
// starters plus decimal digits of any script.
func isWordPart(ch rune) bool {
	return isWordStart(ch) || unicode.IsDigit(ch)
}

func isQuote(ch rune) bool {
	_, ok := stringPairs[ch]
	return ok
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctalDigit(ch rune) bool {
	return ch >= '0' && ch <= '7'
}

func isBinaryDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}

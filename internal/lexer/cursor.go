package lexer

// cursor is the lexer's position in the source: byte offset plus 1-based
// line and rune column. It is a plain value so scanning strategies that
// need backtracking (phrase extension, exponent suffixes) snapshot it with
// an assignment and restore it the same way.
type cursor struct {
	off  int
	line int
	col  int
}

// startOfFile is the cursor before the first rune.
var startOfFile = cursor{off: 0, line: 1, col: 1}

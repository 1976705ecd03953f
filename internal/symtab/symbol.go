// Package symtab implements the lexical scope tree used by name
// resolution. Scopes nest; inner scopes may shadow outer names. The
// semantic analyzer builds the tree in one pass over the AST.
package symtab

// Kind classifies a named binding.
type Kind int

const (
	// KindVariable is a mutable binding: let, assignment, loop target.
	KindVariable Kind = iota

	// KindConstant is a const binding; reassignment is an error.
	KindConstant

	// KindParameter is a function or lambda parameter.
	KindParameter

	// KindFunction is a function definition.
	KindFunction

	// KindClass is a class definition.
	KindClass

	// KindImport is a module or imported name binding.
	KindImport

	// KindBuiltin is a predefined name. Builtins live in the global scope
	// and may be shadowed or reassigned like ordinary variables.
	KindBuiltin
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	case KindParameter:
		return "parameter"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindImport:
		return "import"
	case KindBuiltin:
		return "builtin"
	}
	return "unknown"
}

// Symbol is one named binding. Line and Column locate the defining
// occurrence; they are zero for builtins.
type Symbol struct {
	Name   string
	Kind   Kind
	Line   int
	Column int
	Used   bool
}

// CanAssign reports whether the binding accepts reassignment.
func (s *Symbol) CanAssign() bool {
	return s.Kind != KindConstant
}

// MarkUsed records that the symbol was referenced.
func (s *Symbol) MarkUsed() {
	s.Used = true
}

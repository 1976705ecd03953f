package symtab

import "fmt"

// ScopeKind classifies a lexical scope. The analyzer uses the kind to
// decide where implicit bindings land and which names a nested scope may
// see.
type ScopeKind int

const (
	// ScopeGlobal is the top level of a source file.
	ScopeGlobal ScopeKind = iota

	// ScopeFunction covers a function or lambda body, parameters included.
	ScopeFunction

	// ScopeClass covers a class body.
	ScopeClass

	// ScopeComprehension covers one comprehension or generator expression;
	// its loop targets do not leak into the enclosing scope.
	ScopeComprehension

	// ScopeHandler covers an except clause or a with statement and their
	// "as" bindings.
	ScopeHandler
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeClass:
		return "class"
	case ScopeComprehension:
		return "comprehension"
	case ScopeHandler:
		return "handler"
	}
	return "unknown"
}

// Scope is one node of the scope tree.
type Scope struct {
	Kind    ScopeKind
	Parent  *Scope
	Symbols map[string]*Symbol
	Depth   int
}

// NewScope creates a scope nested inside parent; parent is nil for the
// global scope.
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	return &Scope{
		Kind:    kind,
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
		Depth:   depth,
	}
}

// Define adds a symbol to this scope. It returns the previously defined
// symbol of the same name, or nil when the name was free. Shadowing an
// outer scope is always allowed and never reported here.
func (s *Scope) Define(symbol *Symbol) *Symbol {
	if existing, ok := s.Symbols[symbol.Name]; ok {
		return existing
	}
	s.Symbols[symbol.Name] = symbol
	return nil
}

// Lookup resolves name through this scope and its ancestors, marking the
// symbol used. It returns nil when the name is unbound.
func (s *Scope) Lookup(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if symbol, ok := scope.Symbols[name]; ok {
			symbol.MarkUsed()
			return symbol
		}
	}
	return nil
}

// LookupLocal resolves name in this scope only.
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.Symbols[name]
}

// Global walks up to the root scope.
func (s *Scope) Global() *Scope {
	scope := s
	for scope.Parent != nil {
		scope = scope.Parent
	}
	return scope
}

// UnusedSymbols returns the locally defined symbols that were never
// referenced, builtins excluded.
func (s *Scope) UnusedSymbols() []*Symbol {
	var unused []*Symbol
	for _, symbol := range s.Symbols {
		if !symbol.Used && symbol.Kind != KindBuiltin {
			unused = append(unused, symbol)
		}
	}
	return unused
}

func (s *Scope) String() string {
	return fmt.Sprintf("%s scope (depth %d, %d symbols)", s.Kind, s.Depth, len(s.Symbols))
}

package symtab

import "testing"

func TestDefineAndLookup(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	x := &Symbol{Name: "x", Kind: KindVariable, Line: 1, Column: 1}
	if prev := global.Define(x); prev != nil {
		t.Fatalf("Define(x) returned existing symbol %v", prev)
	}

	fn := NewScope(ScopeFunction, global)
	if got := fn.Lookup("x"); got != x {
		t.Errorf("Lookup(x) from nested scope = %v, want outer binding", got)
	}
	if !x.Used {
		t.Error("Lookup should mark the symbol used")
	}
	if got := fn.Lookup("missing"); got != nil {
		t.Errorf("Lookup(missing) = %v, want nil", got)
	}
}

func TestShadowingAndDuplicates(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	outer := &Symbol{Name: "n", Kind: KindVariable}
	global.Define(outer)

	fn := NewScope(ScopeFunction, global)
	inner := &Symbol{Name: "n", Kind: KindParameter}
	if prev := fn.Define(inner); prev != nil {
		t.Fatalf("shadowing definition rejected: %v", prev)
	}
	if got := fn.Lookup("n"); got != inner {
		t.Errorf("Lookup(n) = %v, want the shadowing binding", got)
	}

	dup := &Symbol{Name: "n", Kind: KindVariable}
	if prev := fn.Define(dup); prev != inner {
		t.Errorf("duplicate Define returned %v, want the first binding", prev)
	}
	if fn.LookupLocal("n") != inner {
		t.Error("duplicate Define must not replace the first binding")
	}
}

func TestConstantsRejectAssignment(t *testing.T) {
	c := &Symbol{Name: "limit", Kind: KindConstant}
	if c.CanAssign() {
		t.Error("constants must not be assignable")
	}
	v := &Symbol{Name: "total", Kind: KindVariable}
	if !v.CanAssign() {
		t.Error("variables must be assignable")
	}
	b := &Symbol{Name: "print", Kind: KindBuiltin}
	if !b.CanAssign() {
		t.Error("builtins may be rebound")
	}
}

func TestGlobalReachesRoot(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	fn := NewScope(ScopeFunction, global)
	comp := NewScope(ScopeComprehension, fn)

	if comp.Global() != global {
		t.Error("Global should reach the root scope")
	}
	if global.Global() != global {
		t.Error("Global at the root should return itself")
	}
}

func TestUnusedSymbols(t *testing.T) {
	scope := NewScope(ScopeFunction, nil)
	scope.Define(&Symbol{Name: "a", Kind: KindVariable})
	scope.Define(&Symbol{Name: "b", Kind: KindVariable})
	scope.Define(&Symbol{Name: "len", Kind: KindBuiltin})
	scope.Lookup("a")

	unused := scope.UnusedSymbols()
	if len(unused) != 1 || unused[0].Name != "b" {
		t.Errorf("UnusedSymbols = %v, want just b", unused)
	}
}
